package controllers

import (
	"errors"
	"log"
	"net/http"
	"nutricoach/internal/models"
	"nutricoach/internal/repository"
	"nutricoach/internal/services"
	"time"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	repo      repository.TaskRepository
	publisher services.EventPublisher
	now       func() time.Time
}

func NewTaskController(repo repository.TaskRepository, publisher services.EventPublisher) *TaskController {
	if publisher == nil {
		publisher = services.NoopPublisher{}
	}
	return &TaskController{repo: repo, publisher: publisher, now: time.Now}
}

// SetClock replaces the time source. Used by tests.
func (tc *TaskController) SetClock(now func() time.Time) {
	tc.now = now
}

// GetTasks godoc
// @Summary List tasks
// @Description List the authenticated user's tasks; expired tasks are completed on read
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Tasks retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve tasks"
// @Router /tasks [get]
func (tc *TaskController) GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := tc.repo.FindAllByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve tasks",
			"error":   err.Error(),
		})
		return
	}

	now := tc.now()
	for i := range tasks {
		tc.autoComplete(&tasks[i], now)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Tasks retrieved successfully",
		"data":    tasks,
	})
}

// GetTaskByID godoc
// @Summary Get task
// @Description Get one task owned by the authenticated user
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{} "Task retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Router /tasks/{id} [get]
func (tc *TaskController) GetTaskByID(c *gin.Context) {
	task, ok := tc.ownedTask(c)
	if !ok {
		return
	}
	tc.autoComplete(task, tc.now())

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task retrieved successfully",
		"data":    task,
	})
}

// CreateTask godoc
// @Summary Create task
// @Description Create a pending task for the authenticated user
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body controllers.TaskRequest true "Task"
// @Success 201 {object} map[string]interface{} "Task created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to create task"
// @Router /tasks [post]
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task := models.Task{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Status:       models.TaskPending,
	}
	if err := tc.repo.Create(&task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create task",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Task created successfully",
		"data":    task,
	})
}

// UpdateTask godoc
// @Summary Update task
// @Description Update a task's title and description. The duration can only change while the task is pending
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param task body controllers.TaskRequest true "Task"
// @Success 200 {object} map[string]interface{} "Task updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 409 {object} map[string]interface{} "Task duration cannot change after it has started"
// @Failure 500 {object} map[string]interface{} "Failed to update task"
// @Router /tasks/{id} [put]
func (tc *TaskController) UpdateTask(c *gin.Context) {
	task, ok := tc.ownedTask(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := services.ChangeDuration(task, req.DurationDays); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Task duration cannot change after it has started",
			"error":   err.Error(),
		})
		return
	}
	task.Title = req.Title
	task.Description = req.Description

	if err := tc.repo.Update(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update task",
			"error":   err.Error(),
		})
		return
	}
	tc.autoComplete(task, tc.now())

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task updated successfully",
		"data":    task,
	})
}

// DeleteTask godoc
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{} "Task deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Failed to delete task"
// @Router /tasks/{id} [delete]
func (tc *TaskController) DeleteTask(c *gin.Context) {
	task, ok := tc.ownedTask(c)
	if !ok {
		return
	}

	if err := tc.repo.Delete(task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete task",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task deleted successfully",
		"data":    nil,
	})
}

// StartTask godoc
// @Summary Start task
// @Description Start the countdown of a pending task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{} "Task started successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 409 {object} map[string]interface{} "Task already started"
// @Failure 500 {object} map[string]interface{} "Failed to start task"
// @Router /tasks/{id}/start [post]
func (tc *TaskController) StartTask(c *gin.Context) {
	task, ok := tc.ownedTask(c)
	if !ok {
		return
	}

	if err := services.StartTask(task, tc.now()); err != nil {
		if errors.Is(err, services.ErrTaskAlreadyStarted) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Task already started",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to start task",
			"error":   err.Error(),
		})
		return
	}

	if err := tc.repo.Update(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to start task",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task started successfully",
		"data":    task,
	})
}

// GetTaskProgress godoc
// @Summary Task progress
// @Description Countdown and completion percentage of a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{} "Task progress retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Router /tasks/{id}/progress [get]
func (tc *TaskController) GetTaskProgress(c *gin.Context) {
	task, ok := tc.ownedTask(c)
	if !ok {
		return
	}

	now := tc.now()
	tc.autoComplete(task, now)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task progress retrieved successfully",
		"data":    services.Progress(task, now),
	})
}

// autoComplete persists the completion of an expired task and announces it.
// A failed write is logged; the caller still sees the completed state.
func (tc *TaskController) autoComplete(task *models.Task, now time.Time) {
	if !services.AutoComplete(task, now) {
		return
	}
	if err := tc.repo.Update(task); err != nil {
		log.Printf("Failed to auto-complete task %d: %v", task.ID, err)
		return
	}
	services.PublishAsync(tc.publisher, services.EventTaskCompleted, services.TaskCompletedEvent(task))
}

func (tc *TaskController) ownedTask(c *gin.Context) (*models.Task, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	id, ok := parseIDParam(c)
	if !ok {
		return nil, false
	}

	task, err := tc.repo.FindByID(id)
	if err != nil || task.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Task not found",
			"error":   "No task with this ID for the current user",
		})
		return nil, false
	}
	return task, true
}
