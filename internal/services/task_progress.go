package services

import (
	"errors"
	"math"
	"nutricoach/internal/models"
	"time"
)

var (
	ErrTaskAlreadyStarted = errors.New("task already started")
	ErrDurationLocked     = errors.New("duration can only change while a task is pending")
)

type TaskProgress struct {
	TaskID           uint      `json:"task_id"`
	Status           string    `json:"status"`
	DurationDays     int       `json:"duration_days"`
	ElapsedDays      int       `json:"elapsed_days"`
	RemainingDays    int       `json:"remaining_days"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	Percent          float64   `json:"percent"`
	Deadline         time.Time `json:"deadline,omitempty"`
}

// Progress reports how far task has advanced at now. Remaining time never
// goes negative and Percent stays within [0, 100].
func Progress(task *models.Task, now time.Time) TaskProgress {
	p := TaskProgress{
		TaskID:        task.ID,
		Status:        task.Status,
		DurationDays:  task.DurationDays,
		RemainingDays: task.DurationDays,
	}

	switch {
	case task.Status == models.TaskCompleted:
		p.ElapsedDays = task.DurationDays
		p.RemainingDays = 0
		p.Percent = 100
		p.Deadline = task.Deadline()
		return p
	case task.StartedAt == nil:
		p.RemainingSeconds = int64((time.Duration(task.DurationDays) * 24 * time.Hour).Seconds())
		return p
	}

	deadline := task.Deadline()
	total := deadline.Sub(*task.StartedAt)
	elapsed := now.Sub(*task.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}
	remaining := total - elapsed

	p.Deadline = deadline
	p.ElapsedDays = int(elapsed / (24 * time.Hour))
	p.RemainingDays = int(math.Ceil(remaining.Hours() / 24))
	p.RemainingSeconds = int64(remaining.Seconds())
	if total > 0 {
		p.Percent = math.Round(float64(elapsed)/float64(total)*1000) / 10
	} else {
		p.Percent = 100
	}
	return p
}

// AutoComplete marks an in-progress task completed once its deadline has
// passed. CompletedAt is set to the deadline, not to now.
func AutoComplete(task *models.Task, now time.Time) bool {
	if task.Status != models.TaskInProgress || task.StartedAt == nil {
		return false
	}
	deadline := task.Deadline()
	if now.Before(deadline) {
		return false
	}
	task.Status = models.TaskCompleted
	task.CompletedAt = &deadline
	return true
}

// StartTask moves a pending task to in_progress at now.
func StartTask(task *models.Task, now time.Time) error {
	if task.Status != models.TaskPending || task.StartedAt != nil {
		return ErrTaskAlreadyStarted
	}
	task.Status = models.TaskInProgress
	task.StartedAt = &now
	task.CompletedAt = nil
	return nil
}

// ChangeDuration sets a new duration. Once a task has started its deadline
// is fixed, so only the same value is accepted.
func ChangeDuration(task *models.Task, days int) error {
	if days == task.DurationDays {
		return nil
	}
	if task.Status != models.TaskPending || task.StartedAt != nil {
		return ErrDurationLocked
	}
	task.DurationDays = days
	return nil
}
