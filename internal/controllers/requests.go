package controllers

import (
	"net/http"
	"nutricoach/internal/health"
	"nutricoach/internal/models"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MeasurementRequest carries body measurements. Ranges mirror what the
// health engine assumes about its input.
type MeasurementRequest struct {
	HeightCm          float64  `json:"height_cm" binding:"required,gte=100,lte=250" example:"170"`
	WeightKg          float64  `json:"weight_kg" binding:"required,gte=20,lte=500" example:"70"`
	Age               int      `json:"age" binding:"required,gte=13,lte=120" example:"30"`
	Sex               string   `json:"sex" binding:"required,oneof=male female other" example:"male"`
	ActivityLevel     string   `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active" example:"moderate"`
	MedicalConditions []string `json:"medical_conditions" example:"Type 2 Diabetes"`
}

func (r MeasurementRequest) Measurement() health.BodyMeasurement {
	return health.BodyMeasurement{
		HeightCm:      r.HeightCm,
		WeightKg:      r.WeightKg,
		AgeYears:      r.Age,
		Sex:           health.Sex(r.Sex),
		ActivityLevel: health.ActivityLevel(r.ActivityLevel),
	}
}

// ProfilePatchRequest updates only the fields that are present.
type ProfilePatchRequest struct {
	HeightCm          *float64  `json:"height_cm" binding:"omitempty,gte=100,lte=250"`
	WeightKg          *float64  `json:"weight_kg" binding:"omitempty,gte=20,lte=500"`
	Age               *int      `json:"age" binding:"omitempty,gte=13,lte=120"`
	Sex               *string   `json:"sex" binding:"omitempty,oneof=male female other"`
	ActivityLevel     *string   `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	MedicalConditions *[]string `json:"medical_conditions"`
}

func (r ProfilePatchRequest) apply(p *models.HealthProfile) {
	if r.HeightCm != nil {
		p.HeightCm = *r.HeightCm
	}
	if r.WeightKg != nil {
		p.WeightKg = *r.WeightKg
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	if r.Sex != nil {
		p.Sex = health.Sex(*r.Sex)
	}
	if r.ActivityLevel != nil {
		p.ActivityLevel = health.ActivityLevel(*r.ActivityLevel)
	}
	if r.MedicalConditions != nil {
		p.MedicalConditions = models.StringList(*r.MedicalConditions)
	}
}

type RegisterRequest struct {
	Name         string `json:"name" binding:"required" example:"Jane Doe"`
	Email        string `json:"email" binding:"required" example:"jane@example.com"`
	Password     string `json:"password" binding:"required,min=8,max=72" example:"Password@123"`
	ReferralCode string `json:"referral_code" example:"5F3A9C21"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required,max=72" example:"Password@123"`
}

type TaskRequest struct {
	Title        string `json:"title" binding:"required,max=200" example:"Drink 2L of water daily"`
	Description  string `json:"description" example:"Track water intake for a week"`
	DurationDays int    `json:"duration_days" binding:"required,gte=1,lte=365" example:"7"`
}

// currentUserID reads the id set by AuthMiddleware and answers 401 when it
// is missing.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return 0, false
	}
	return userID.(uint), true
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request data",
		"error":   err.Error(),
	})
}

// normalizeEmail trims and lowercases the address before checking its format,
// so "Jane@Example.com " and "jane@example.com" name the same account.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.Var(email, "required,email"); err != nil {
			return "", err
		}
	}
	return email, nil
}
