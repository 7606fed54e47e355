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

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 30

type HealthProfileController struct {
	repo      repository.HealthProfileRepository
	bmiRepo   repository.BMIRecordRepository
	planCache cache.PlanCache
}

func NewHealthProfileController(repo repository.HealthProfileRepository, bmiRepo repository.BMIRecordRepository, planCache cache.PlanCache) *HealthProfileController {
	if planCache == nil {
		planCache = cache.NoopPlanCache{}
	}
	return &HealthProfileController{repo: repo, bmiRepo: bmiRepo, planCache: planCache}
}

// GetProfile godoc
// @Summary Get health profile
// @Description Retrieve the authenticated user's health profile and computed metrics
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Health profile retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /profile [get]
func (pc *HealthProfileController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := pc.repo.FindByUserID(userID)
	if err != nil {
		profileNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Health profile retrieved successfully",
		"data":    profile,
	})
}

// GetProfileByUserID godoc
// @Summary Get a user's health profile
// @Description Doctors and admins can read any user's health profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]interface{} "Health profile retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /admin/users/{user_id}/profile [get]
func (pc *HealthProfileController) GetProfileByUserID(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid user ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	profile, err := pc.repo.FindByUserID(uint(userID))
	if err != nil {
		profileNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Health profile retrieved successfully",
		"data":    profile,
	})
}

// CreateProfile godoc
// @Summary Create health profile
// @Description Create the authenticated user's health profile; metrics are computed from the measurements
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body controllers.MeasurementRequest true "Body measurements"
// @Success 201 {object} map[string]interface{} "Profile created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Profile already exists"
// @Failure 500 {object} map[string]interface{} "Failed to create profile"
// @Router /profile [post]
func (pc *HealthProfileController) CreateProfile(c *gin.Context) {
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	_, err := pc.repo.FindByUserID(userID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Profile already exists",
			"error":   "Use PUT or PATCH to update the existing profile",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create profile",
			"error":   err.Error(),
		})
		return
	}

	profile := models.HealthProfile{UserID: userID}
	setMeasurement(&profile, req)
	services.RefreshProfile(&profile)

	if err := pc.repo.Create(&profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create profile",
			"error":   err.Error(),
		})
		return
	}
	pc.afterWrite(c, &profile)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Profile created successfully",
		"data":    profile,
	})
}

// UpdateProfile godoc
// @Summary Update health profile
// @Description Replace the authenticated user's measurements and recompute metrics
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body controllers.MeasurementRequest true "Body measurements"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 500 {object} map[string]interface{} "Failed to update profile"
// @Router /profile [put]
func (pc *HealthProfileController) UpdateProfile(c *gin.Context) {
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := pc.repo.FindByUserID(userID)
	if err != nil {
		profileNotFound(c)
		return
	}

	setMeasurement(profile, req)
	services.RefreshProfile(profile)

	if err := pc.repo.Update(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
			"error":   err.Error(),
		})
		return
	}
	pc.afterWrite(c, profile)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// PatchProfile godoc
// @Summary Patch health profile
// @Description Update specific measurements and recompute metrics
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body controllers.ProfilePatchRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Profile patched successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 500 {object} map[string]interface{} "Failed to update profile"
// @Router /profile [patch]
func (pc *HealthProfileController) PatchProfile(c *gin.Context) {
	var req ProfilePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := pc.repo.FindByUserID(userID)
	if err != nil {
		profileNotFound(c)
		return
	}

	req.apply(profile)
	services.RefreshProfile(profile)

	if err := pc.repo.Update(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
			"error":   err.Error(),
		})
		return
	}
	pc.afterWrite(c, profile)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile patched successfully",
		"data":    profile,
	})
}

// DeleteProfile godoc
// @Summary Delete health profile
// @Description Delete the authenticated user's health profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile deleted successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to delete profile"
// @Router /profile [delete]
func (pc *HealthProfileController) DeleteProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := pc.repo.DeleteByUserID(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete profile",
			"error":   err.Error(),
		})
		return
	}
	if err := pc.planCache.Invalidate(c.Request.Context(), userID); err != nil {
		log.Printf("Warning: failed to invalidate plan cache for user %d: %v", userID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile deleted successfully",
		"data":    nil,
	})
}

// GetBMIHistory godoc
// @Summary BMI history
// @Description List the authenticated user's BMI records, newest first
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of records (default 30)"
// @Success 200 {object} map[string]interface{} "BMI history retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid limit"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve BMI history"
// @Router /profile/bmi-history [get]
func (pc *HealthProfileController) GetBMIHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid limit",
				"error":   "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	records, err := pc.bmiRepo.FindAllByUserID(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve BMI history",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "BMI history retrieved successfully",
		"data":    records,
	})
}

// afterWrite records the new BMI and drops the cached plan. Failures are
// logged; the profile itself is already saved.
func (pc *HealthProfileController) afterWrite(c *gin.Context, profile *models.HealthProfile) {
	if err := pc.bmiRepo.Create(models.NewBMIRecord(profile)); err != nil {
		log.Printf("Warning: failed to record BMI history for user %d: %v", profile.UserID, err)
	}
	if err := pc.planCache.Invalidate(c.Request.Context(), profile.UserID); err != nil {
		log.Printf("Warning: failed to invalidate plan cache for user %d: %v", profile.UserID, err)
	}
}

func setMeasurement(p *models.HealthProfile, req MeasurementRequest) {
	m := req.Measurement()
	p.HeightCm = m.HeightCm
	p.WeightKg = m.WeightKg
	p.Age = m.AgeYears
	p.Sex = m.Sex
	p.ActivityLevel = m.ActivityLevel
	p.MedicalConditions = models.StringList(req.MedicalConditions)
}

func profileNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "error",
		"message": "Profile not found",
		"error":   "No profile exists for this user",
	})
}
