package controllers

import (
	"net/http"
	"nutricoach/internal/health"
	"nutricoach/internal/services"

	"github.com/gin-gonic/gin"
)

// BMIController serves the public calculator. Nothing it computes is stored.
type BMIController struct{}

func NewBMIController() *BMIController {
	return &BMIController{}
}

// Calculate godoc
// @Summary Calculate health metrics
// @Description Compute BMI, BMR, daily calories, ideal weight, category and diet targets without an account
// @Tags bmi
// @Accept json
// @Produce json
// @Param measurement body controllers.MeasurementRequest true "Body measurements"
// @Success 200 {object} map[string]interface{} "Metrics calculated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /bmi/calculate [post]
func (bc *BMIController) Calculate(c *gin.Context) {
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Metrics calculated successfully",
		"data":    services.Assess(req.Measurement(), req.MedicalConditions),
	})
}

// GetCategories godoc
// @Summary List BMI categories
// @Description Return the BMI bands with their descriptions and recommendations
// @Tags bmi
// @Produce json
// @Success 200 {object} map[string]interface{} "Categories retrieved successfully"
// @Router /bmi/categories [get]
func (bc *BMIController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Categories retrieved successfully",
		"data":    health.Categories(),
	})
}
