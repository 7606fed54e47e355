package routes

import (
	"nutricoach/internal/controllers"
	"nutricoach/internal/middleware"
	"nutricoach/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterHealthProfileRoutes(router *gin.Engine, profileController *controllers.HealthProfileController) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware())
	{
		profileRoutes.GET("", profileController.GetProfile)
		profileRoutes.POST("", profileController.CreateProfile)
		profileRoutes.PUT("", profileController.UpdateProfile)
		profileRoutes.PATCH("", profileController.PatchProfile)
		profileRoutes.DELETE("", profileController.DeleteProfile)
		profileRoutes.GET("/bmi-history", profileController.GetBMIHistory)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin, models.RoleDoctor))
	{
		adminRoutes.GET("/users/:user_id/profile", profileController.GetProfileByUserID)
	}
}
