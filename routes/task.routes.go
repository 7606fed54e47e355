package routes

import (
	"nutricoach/internal/controllers"
	"nutricoach/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(router *gin.Engine, taskController *controllers.TaskController) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.Use(middleware.AuthMiddleware())
	{
		taskRoutes.GET("", taskController.GetTasks)
		taskRoutes.POST("", taskController.CreateTask)
		taskRoutes.GET("/:id", taskController.GetTaskByID)
		taskRoutes.PUT("/:id", taskController.UpdateTask)
		taskRoutes.DELETE("/:id", taskController.DeleteTask)
		taskRoutes.POST("/:id/start", taskController.StartTask)
		taskRoutes.GET("/:id/progress", taskController.GetTaskProgress)
	}
}
