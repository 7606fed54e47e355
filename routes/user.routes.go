package routes

import (
	"nutricoach/internal/controllers"
	"nutricoach/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController) {
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.GET("/me", userController.GetCurrentUser)
		userRoutes.GET("/me/referrals", userController.GetReferrals)
	}
}
