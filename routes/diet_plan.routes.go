package routes

import (
	"nutricoach/internal/controllers"
	"nutricoach/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterDietPlanRoutes(router *gin.Engine, dietPlanController *controllers.DietPlanController) {
	planRoutes := router.Group("/diet-plans")
	planRoutes.Use(middleware.AuthMiddleware())
	{
		planRoutes.POST("", dietPlanController.GenerateDietPlan)
		planRoutes.GET("", dietPlanController.GetDietPlans)
		planRoutes.GET("/latest", dietPlanController.GetLatestDietPlan)
		planRoutes.GET("/:id", dietPlanController.GetDietPlanByID)
		planRoutes.DELETE("/:id", dietPlanController.DeleteDietPlan)
	}
}
