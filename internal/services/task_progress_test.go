package services

import (
	"nutricoach/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var taskStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func startedTask(days int) *models.Task {
	start := taskStart
	return &models.Task{ID: 1, DurationDays: days, Status: models.TaskInProgress, StartedAt: &start}
}

func TestProgressPending(t *testing.T) {
	task := &models.Task{ID: 3, DurationDays: 2, Status: models.TaskPending}
	p := Progress(task, taskStart)

	assert.Equal(t, models.TaskPending, p.Status)
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, 2, p.RemainingDays)
	assert.Equal(t, int64(2*24*3600), p.RemainingSeconds)
	assert.True(t, p.Deadline.IsZero())
}

func TestProgressInProgress(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		elapsedDays   int
		remainingDays int
		percent       float64
	}{
		{"at start", taskStart, 0, 4, 0},
		{"half way", taskStart.Add(48 * time.Hour), 2, 2, 50},
		{"part of a day", taskStart.Add(30 * time.Hour), 1, 3, 31.3},
		{"before start clamps", taskStart.Add(-time.Hour), 0, 4, 0},
		{"after deadline clamps", taskStart.Add(10 * 24 * time.Hour), 4, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress(startedTask(4), tt.now)

			assert.Equal(t, tt.elapsedDays, p.ElapsedDays)
			assert.Equal(t, tt.remainingDays, p.RemainingDays)
			assert.Equal(t, tt.percent, p.Percent)
			assert.GreaterOrEqual(t, p.RemainingSeconds, int64(0))
			assert.Equal(t, taskStart.AddDate(0, 0, 4), p.Deadline)
		})
	}
}

func TestProgressCompleted(t *testing.T) {
	task := startedTask(4)
	task.Status = models.TaskCompleted

	p := Progress(task, taskStart)
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, 0, p.RemainingDays)
}

func TestAutoComplete(t *testing.T) {
	t.Run("before deadline", func(t *testing.T) {
		task := startedTask(3)
		assert.False(t, AutoComplete(task, taskStart.Add(71*time.Hour)))
		assert.Equal(t, models.TaskInProgress, task.Status)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("at deadline", func(t *testing.T) {
		task := startedTask(3)
		assert.True(t, AutoComplete(task, taskStart.Add(72*time.Hour)))
		assert.Equal(t, models.TaskCompleted, task.Status)
		assert.Equal(t, taskStart.AddDate(0, 0, 3), *task.CompletedAt)
	})

	t.Run("completed at deadline not now", func(t *testing.T) {
		task := startedTask(1)
		assert.True(t, AutoComplete(task, taskStart.Add(30*24*time.Hour)))
		assert.Equal(t, taskStart.AddDate(0, 0, 1), *task.CompletedAt)
	})

	t.Run("pending is untouched", func(t *testing.T) {
		task := &models.Task{DurationDays: 1, Status: models.TaskPending}
		assert.False(t, AutoComplete(task, taskStart.Add(48*time.Hour)))
	})

	t.Run("already completed is untouched", func(t *testing.T) {
		task := startedTask(1)
		task.Status = models.TaskCompleted
		assert.False(t, AutoComplete(task, taskStart.Add(48*time.Hour)))
	})
}

func TestStartTask(t *testing.T) {
	task := &models.Task{ID: 4, DurationDays: 3, Status: models.TaskPending}

	err := StartTask(task, taskStart)
	assert.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, task.Status)
	if assert.NotNil(t, task.StartedAt) {
		assert.Equal(t, taskStart, *task.StartedAt)
	}
	assert.Equal(t, taskStart.AddDate(0, 0, 3), task.Deadline())

	err = StartTask(task, taskStart.Add(time.Hour))
	assert.ErrorIs(t, err, ErrTaskAlreadyStarted)
	assert.Equal(t, taskStart, *task.StartedAt)

	done := &models.Task{Status: models.TaskCompleted}
	assert.ErrorIs(t, StartTask(done, taskStart), ErrTaskAlreadyStarted)
}

func TestChangeDuration(t *testing.T) {
	pending := &models.Task{DurationDays: 3, Status: models.TaskPending}
	assert.NoError(t, ChangeDuration(pending, 10))
	assert.Equal(t, 10, pending.DurationDays)

	running := startedTask(3)
	assert.ErrorIs(t, ChangeDuration(running, 30), ErrDurationLocked)
	assert.Equal(t, 3, running.DurationDays)
	assert.NoError(t, ChangeDuration(running, 3))

	end := taskStart.AddDate(0, 0, 3)
	done := &models.Task{DurationDays: 3, Status: models.TaskCompleted, StartedAt: &taskStart, CompletedAt: &end}
	assert.ErrorIs(t, ChangeDuration(done, 30), ErrDurationLocked)
	assert.Equal(t, done.Deadline(), *done.CompletedAt)
}
