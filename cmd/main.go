package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"nutricoach/database"
	"nutricoach/docs"
	"nutricoach/internal/cache"
	"nutricoach/internal/controllers"
	"nutricoach/internal/repository"
	"nutricoach/internal/services"
	"nutricoach/routes"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	defaultPlanCacheTTL  = 30 * time.Minute
	defaultSweepInterval = 10 * time.Minute
	defaultExchange      = "nutricoach.events"
)

// @title NutriCoach API
// @version 1.0
// @description Health metrics, diet plans and coaching tasks.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Printf("Warning: No .env file found, using process environment")
		}
	}

	docs.SwaggerInfo.Title = "NutriCoach API"
	docs.SwaggerInfo.Description = "Health metrics, diet plans and coaching tasks."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections(ctx, 10*time.Second)

	userRepo := repository.NewUserRepository(database.DB)
	profileRepo := repository.NewHealthProfileRepository(database.DB)
	bmiRepo := repository.NewBMIRecordRepository(database.DB)
	planRepo := repository.NewDietPlanRepository(database.DB)
	taskRepo := repository.NewTaskRepository(database.DB)

	planCache, redisClient := connectPlanCache(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := connectPublisher()
	defer publisher.Close()

	sweeper := services.NewTaskSweeper(taskRepo, publisher, envDuration("TASK_SWEEP_INTERVAL", defaultSweepInterval))
	sweeper.Start()
	defer sweeper.Stop()

	cacheTTL := envDuration("PLAN_CACHE_TTL", defaultPlanCacheTTL)

	authController := controllers.NewAuthController(userRepo)
	userController := controllers.NewUserController(userRepo, taskRepo)
	bmiController := controllers.NewBMIController()
	profileController := controllers.NewHealthProfileController(profileRepo, bmiRepo, planCache)
	dietPlanController := controllers.NewDietPlanController(profileRepo, planRepo, planCache, publisher, cacheTTL)
	taskController := controllers.NewTaskController(taskRepo, publisher)

	router := gin.Default()
	router.Use(cors.New(corsConfig(os.Getenv("CORS_ORIGINS"))))

	routes.RegisterSwaggerRoutes(router)
	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterBMIRoutes(router, bmiController)
	routes.RegisterUserRoutes(router, userController)
	routes.RegisterHealthProfileRoutes(router, profileController)
	routes.RegisterDietPlanRoutes(router, dietPlanController)
	routes.RegisterTaskRoutes(router, taskController)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "NutriCoach API is running",
			"data": gin.H{
				"version": docs.SwaggerInfo.Version,
				"docs":    "/swagger/index.html",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "up"}
		if err := database.Ping(pingCtx); err != nil {
			checks["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"message": "Service unhealthy",
				"error":   err.Error(),
				"data":    checks,
			})
			return
		}
		if redisClient != nil {
			if status, err := redisClient.Status(pingCtx); err == nil {
				checks["redis"] = status
			} else {
				checks["redis"] = "down"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Service healthy",
			"data":    checks,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		log.Printf("API Documentation: http://localhost:%s/swagger/index.html", port)
		log.Printf("Health Check: http://localhost:%s/health", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

// connectPlanCache falls back to a no-op cache when REDIS_URL is unset or
// unreachable.
func connectPlanCache(ctx context.Context) (cache.PlanCache, *cache.RedisClient) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, diet plan cache disabled")
		return cache.NoopPlanCache{}, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(dialCtx, redisURL)
	if err != nil {
		log.Printf("Warning: %v; diet plan cache disabled", err)
		return cache.NoopPlanCache{}, nil
	}
	log.Println("Connected to Redis")
	return client, client
}

func connectPublisher() services.EventPublisher {
	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		log.Println("RABBITMQ_URL not set, domain events disabled")
		return services.NoopPublisher{}
	}

	exchange := os.Getenv("RABBITMQ_EXCHANGE")
	if exchange == "" {
		exchange = defaultExchange
	}

	publisher, err := services.NewRabbitPublisher(rabbitURL, exchange)
	if err != nil {
		log.Printf("Warning: %v; domain events disabled", err)
		return services.NoopPublisher{}
	}
	log.Printf("Publishing domain events to exchange %s", exchange)
	return publisher
}

func corsConfig(origins string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 || (len(allowed) == 1 && allowed[0] == "*") {
		config.AllowAllOrigins = true
		return config
	}

	config.AllowOrigins = allowed
	config.AllowCredentials = true
	return config
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
