package controllers

import (
	"errors"
	"log"
	"net/http"
	"nutricoach/internal/cache"
	"nutricoach/internal/models"
	"nutricoach/internal/repository"
	"nutricoach/internal/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DietPlanController struct {
	profileRepo repository.HealthProfileRepository
	planRepo    repository.DietPlanRepository
	planCache   cache.PlanCache
	publisher   services.EventPublisher
	cacheTTL    time.Duration
}

func NewDietPlanController(
	profileRepo repository.HealthProfileRepository,
	planRepo repository.DietPlanRepository,
	planCache cache.PlanCache,
	publisher services.EventPublisher,
	cacheTTL time.Duration,
) *DietPlanController {
	if planCache == nil {
		planCache = cache.NoopPlanCache{}
	}
	if publisher == nil {
		publisher = services.NoopPublisher{}
	}
	return &DietPlanController{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		planCache:   planCache,
		publisher:   publisher,
		cacheTTL:    cacheTTL,
	}
}

// GenerateDietPlan godoc
// @Summary Generate diet plan
// @Description Derive and save a diet plan from the authenticated user's health profile
// @Tags diet-plans
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Diet plan generated successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 500 {object} map[string]interface{} "Failed to load profile or save diet plan"
// @Router /diet-plans [post]
func (dc *DietPlanController) GenerateDietPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := dc.profileRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Profile not found",
			"error":   "Create a health profile before generating a diet plan",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load profile",
			"error":   err.Error(),
		})
		return
	}

	plan := services.BuildDietPlan(profile)
	if err := dc.planRepo.Create(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save diet plan",
			"error":   err.Error(),
		})
		return
	}

	if err := dc.planCache.Set(c.Request.Context(), userID, plan, dc.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache diet plan for user %d: %v", userID, err)
	}
	services.PublishAsync(dc.publisher, services.EventDietPlanGenerated, gin.H{
		"plan_id":        plan.ID,
		"user_id":        plan.UserID,
		"category":       plan.Category,
		"daily_calories": plan.DailyCalories,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Diet plan generated successfully",
		"data":    plan,
	})
}

// GetLatestDietPlan godoc
// @Summary Latest diet plan
// @Description Get the most recently generated diet plan
// @Tags diet-plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Diet plan retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Diet plan not found"
// @Router /diet-plans/latest [get]
func (dc *DietPlanController) GetLatestDietPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	plan, hit, err := dc.planCache.Get(ctx, userID)
	if err != nil {
		log.Printf("Warning: plan cache read failed for user %d: %v", userID, err)
	}

	if !hit {
		plan, err = dc.planRepo.FindLatestByUserID(userID)
		if err != nil {
			dietPlanNotFound(c)
			return
		}
		if err := dc.planCache.Set(ctx, userID, plan, dc.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache diet plan for user %d: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Diet plan retrieved successfully",
		"data":    plan,
	})
}

// GetDietPlans godoc
// @Summary List diet plans
// @Description List every diet plan of the authenticated user, newest first
// @Tags diet-plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Diet plans retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve diet plans"
// @Router /diet-plans [get]
func (dc *DietPlanController) GetDietPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plans, err := dc.planRepo.FindAllByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve diet plans",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Diet plans retrieved successfully",
		"data":    plans,
	})
}

// GetDietPlanByID godoc
// @Summary Get diet plan
// @Description Get one diet plan owned by the authenticated user
// @Tags diet-plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diet plan ID"
// @Success 200 {object} map[string]interface{} "Diet plan retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Diet plan not found"
// @Router /diet-plans/{id} [get]
func (dc *DietPlanController) GetDietPlanByID(c *gin.Context) {
	plan, ok := dc.ownedPlan(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Diet plan retrieved successfully",
		"data":    plan,
	})
}

// DeleteDietPlan godoc
// @Summary Delete diet plan
// @Description Delete one diet plan owned by the authenticated user
// @Tags diet-plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diet plan ID"
// @Success 200 {object} map[string]interface{} "Diet plan deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Diet plan not found"
// @Failure 500 {object} map[string]interface{} "Failed to delete diet plan"
// @Router /diet-plans/{id} [delete]
func (dc *DietPlanController) DeleteDietPlan(c *gin.Context) {
	plan, ok := dc.ownedPlan(c)
	if !ok {
		return
	}

	if err := dc.planRepo.Delete(plan.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete diet plan",
			"error":   err.Error(),
		})
		return
	}
	if err := dc.planCache.Invalidate(c.Request.Context(), plan.UserID); err != nil {
		log.Printf("Warning: failed to invalidate plan cache for user %d: %v", plan.UserID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Diet plan deleted successfully",
		"data":    nil,
	})
}

// ownedPlan loads the plan named by the :id param. Plans of other users are
// reported as not found.
func (dc *DietPlanController) ownedPlan(c *gin.Context) (*models.DietPlan, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	id, ok := parseIDParam(c)
	if !ok {
		return nil, false
	}

	plan, err := dc.planRepo.FindByID(id)
	if err != nil || plan.UserID != userID {
		dietPlanNotFound(c)
		return nil, false
	}
	return plan, true
}

func dietPlanNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "error",
		"message": "Diet plan not found",
		"error":   "No diet plan with this ID for the current user",
	})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid ID format",
			"error":   "ID must be a valid positive integer",
		})
		return 0, false
	}
	return uint(id), true
}
