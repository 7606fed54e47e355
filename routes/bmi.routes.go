package routes

import (
	"nutricoach/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterBMIRoutes exposes the calculator without authentication.
func RegisterBMIRoutes(router *gin.Engine, bmiController *controllers.BMIController) {
	bmiRoutes := router.Group("/bmi")
	{
		bmiRoutes.POST("/calculate", bmiController.Calculate)
		bmiRoutes.GET("/categories", bmiController.GetCategories)
	}
}
