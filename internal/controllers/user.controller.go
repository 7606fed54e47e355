package controllers

import (
	"log"
	"net/http"
	"nutricoach/internal/models"
	"nutricoach/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

func NewUserController(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *UserController {
	return &UserController{userRepo: userRepo, taskRepo: taskRepo}
}

// GetCurrentUser godoc
// @Summary Get current user
// @Description Retrieve the authenticated user with a task summary
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "User retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/me [get]
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := uc.userRepo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	completed, err := uc.taskRepo.CountByUserIDAndStatus(userID, models.TaskCompleted)
	if err != nil {
		log.Printf("Warning: failed to count completed tasks for user %d: %v", userID, err)
		completed = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User retrieved successfully",
		"data": gin.H{
			"user":            user,
			"completed_tasks": completed,
		},
	})
}

// GetReferrals godoc
// @Summary List referrals
// @Description Return the user's referral code and the users who registered with it
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Referrals retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve referrals"
// @Router /users/me/referrals [get]
func (uc *UserController) GetReferrals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := uc.userRepo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	referred, err := uc.userRepo.ListReferredUsers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve referrals",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Referrals retrieved successfully",
		"data": gin.H{
			"referral_code": user.ReferralCode,
			"count":         len(referred),
			"users":         referred,
		},
	})
}
