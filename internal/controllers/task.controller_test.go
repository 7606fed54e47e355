package controllers_test

import (
	"errors"
	"net/http"
	"nutricoach/internal/controllers"
	"nutricoach/internal/models"
	"nutricoach/internal/repository/mocks"
	"nutricoach/internal/services"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var clock = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type taskFixture struct {
	repo      *mocks.MockTaskRepository
	publisher *channelPublisher
	router    *gin.Engine
}

func setupTaskFixture(userID uint) *taskFixture {
	f := &taskFixture{
		repo:      new(mocks.MockTaskRepository),
		publisher: newChannelPublisher(),
	}
	controller := controllers.NewTaskController(f.repo, f.publisher)
	controller.SetClock(func() time.Time { return clock })

	f.router = setupTestRouter(userID)
	f.router.GET("/tasks", controller.GetTasks)
	f.router.POST("/tasks", controller.CreateTask)
	f.router.GET("/tasks/:id", controller.GetTaskByID)
	f.router.PUT("/tasks/:id", controller.UpdateTask)
	f.router.DELETE("/tasks/:id", controller.DeleteTask)
	f.router.POST("/tasks/:id/start", controller.StartTask)
	f.router.GET("/tasks/:id/progress", controller.GetTaskProgress)
	return f
}

func startedAt(daysAgo float64) *time.Time {
	t := clock.Add(-time.Duration(daysAgo * float64(24*time.Hour)))
	return &t
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*mocks.MockTaskRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "successful creation",
			requestBody: map[string]interface{}{"title": "Walk 10k steps", "duration_days": 7},
			setupMock: func(m *mocks.MockTaskRepository) {
				m.On("Create", mock.MatchedBy(func(task *models.Task) bool {
					return task.UserID == 1 && task.Status == models.TaskPending && task.DurationDays == 7 && task.StartedAt == nil
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Task created successfully",
		},
		{
			name:           "zero duration",
			requestBody:    map[string]interface{}{"title": "Walk", "duration_days": 0},
			setupMock:      func(m *mocks.MockTaskRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:        "database error",
			requestBody: map[string]interface{}{"title": "Walk", "duration_days": 3},
			setupMock: func(m *mocks.MockTaskRepository) {
				m.On("Create", mock.Anything).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to create task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTaskFixture(1)
			tt.setupMock(f.repo)

			w := performRequest(f.router, "POST", "/tasks", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedMsg, decodeResponse(t, w)["message"])
			f.repo.AssertExpectations(t)
		})
	}
}

func TestGetTasksAutoCompletesExpired(t *testing.T) {
	f := setupTaskFixture(1)
	f.repo.On("FindAllByUserID", uint(1)).Return([]models.Task{
		{ID: 1, UserID: 1, DurationDays: 3, Status: models.TaskInProgress, StartedAt: startedAt(5)},
		{ID: 2, UserID: 1, DurationDays: 3, Status: models.TaskInProgress, StartedAt: startedAt(1)},
		{ID: 3, UserID: 1, DurationDays: 3, Status: models.TaskPending},
	}, nil)
	f.repo.On("Update", mock.MatchedBy(func(task *models.Task) bool {
		return task.ID == 1 && task.Status == models.TaskCompleted && task.CompletedAt != nil
	})).Return(nil).Once()

	w := performRequest(f.router, "GET", "/tasks", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeDataList(t, w)
	require.Len(t, data, 3)
	assert.Equal(t, models.TaskCompleted, data[0].(map[string]interface{})["status"])
	assert.Equal(t, models.TaskInProgress, data[1].(map[string]interface{})["status"])
	assert.Equal(t, models.TaskPending, data[2].(map[string]interface{})["status"])

	ev := f.publisher.next(t)
	assert.Equal(t, services.EventTaskCompleted, ev.key)
	f.publisher.assertEmpty(t)
	f.repo.AssertExpectations(t)
}

func TestGetTaskByID(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockTaskRepository)
		expectedStatus int
	}{
		{
			name: "own task",
			path: "/tasks/4",
			setupMock: func(m *mocks.MockTaskRepository) {
				m.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1, Status: models.TaskPending}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "another user's task",
			path: "/tasks/4",
			setupMock: func(m *mocks.MockTaskRepository) {
				m.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 2}, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "missing task",
			path: "/tasks/4",
			setupMock: func(m *mocks.MockTaskRepository) {
				m.On("FindByID", uint(4)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			path:           "/tasks/0",
			setupMock:      func(m *mocks.MockTaskRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTaskFixture(1)
			tt.setupMock(f.repo)

			w := performRequest(f.router, "GET", tt.path, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			f.repo.AssertExpectations(t)
		})
	}
}

func TestStartTask(t *testing.T) {
	t.Run("pending task starts now", func(t *testing.T) {
		f := setupTaskFixture(1)
		f.repo.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1, DurationDays: 2, Status: models.TaskPending}, nil)
		f.repo.On("Update", mock.MatchedBy(func(task *models.Task) bool {
			return task.Status == models.TaskInProgress && task.StartedAt != nil && task.StartedAt.Equal(clock)
		})).Return(nil)

		w := performRequest(f.router, "POST", "/tasks/4/start", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Task started successfully", decodeResponse(t, w)["message"])
		f.repo.AssertExpectations(t)
	})

	t.Run("already started", func(t *testing.T) {
		f := setupTaskFixture(1)
		f.repo.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1, DurationDays: 2, Status: models.TaskInProgress, StartedAt: startedAt(1)}, nil)

		w := performRequest(f.router, "POST", "/tasks/4/start", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Task already started", decodeResponse(t, w)["message"])
		f.repo.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestGetTaskProgress(t *testing.T) {
	f := setupTaskFixture(1)
	f.repo.On("FindByID", uint(4)).Return(&models.Task{
		ID: 4, UserID: 1, DurationDays: 4, Status: models.TaskInProgress, StartedAt: startedAt(1),
	}, nil)

	w := performRequest(f.router, "GET", "/tasks/4/progress", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, 25.0, data["percent"])
	assert.Equal(t, float64(1), data["elapsed_days"])
	assert.Equal(t, float64(3), data["remaining_days"])
	assert.Equal(t, models.TaskInProgress, data["status"])
}

func TestUpdateTask(t *testing.T) {
	t.Run("pending task takes a new duration", func(t *testing.T) {
		f := setupTaskFixture(1)
		f.repo.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1, Title: "Old", DurationDays: 2, Status: models.TaskPending}, nil)
		f.repo.On("Update", mock.MatchedBy(func(task *models.Task) bool {
			return task.Title == "New" && task.DurationDays == 10
		})).Return(nil)

		w := performRequest(f.router, "PUT", "/tasks/4", map[string]interface{}{"title": "New", "duration_days": 10})

		assert.Equal(t, http.StatusOK, w.Code)
		f.repo.AssertExpectations(t)
	})

	t.Run("started task keeps its duration", func(t *testing.T) {
		f := setupTaskFixture(1)
		f.repo.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1, Title: "Old", DurationDays: 5, Status: models.TaskInProgress, StartedAt: startedAt(1)}, nil)

		w := performRequest(f.router, "PUT", "/tasks/4", map[string]interface{}{"title": "New", "duration_days": 30})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Task duration cannot change after it has started", decodeResponse(t, w)["message"])
		f.repo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("completed task keeps its deadline", func(t *testing.T) {
		f := setupTaskFixture(1)
		completedAt := startedAt(7).AddDate(0, 0, 3)
		f.repo.On("FindByID", uint(4)).Return(&models.Task{
			ID: 4, UserID: 1, Title: "Old", DurationDays: 3,
			Status: models.TaskCompleted, StartedAt: startedAt(7), CompletedAt: &completedAt,
		}, nil)

		w := performRequest(f.router, "PUT", "/tasks/4", map[string]interface{}{"title": "New", "duration_days": 30})

		assert.Equal(t, http.StatusConflict, w.Code)
		f.repo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("started task can be renamed", func(t *testing.T) {
		f := setupTaskFixture(1)
		f.repo.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1, Title: "Old", DurationDays: 5, Status: models.TaskInProgress, StartedAt: startedAt(1)}, nil)
		f.repo.On("Update", mock.MatchedBy(func(task *models.Task) bool {
			return task.Title == "New" && task.DurationDays == 5
		})).Return(nil)

		w := performRequest(f.router, "PUT", "/tasks/4", map[string]interface{}{"title": "New", "duration_days": 5})

		assert.Equal(t, http.StatusOK, w.Code)
		f.repo.AssertExpectations(t)
	})
}

func TestDeleteTask(t *testing.T) {
	f := setupTaskFixture(1)
	f.repo.On("FindByID", uint(4)).Return(&models.Task{ID: 4, UserID: 1}, nil)
	f.repo.On("Delete", uint(4)).Return(nil)

	w := performRequest(f.router, "DELETE", "/tasks/4", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	f.repo.AssertExpectations(t)
}
