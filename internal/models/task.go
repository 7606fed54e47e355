package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

type Task struct {
	ID           uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt    time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt    time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID       uint           `gorm:"index" json:"user_id" example:"1"`
	User         User           `gorm:"foreignKey:UserID" json:"-"`
	Title        string         `gorm:"size:200" json:"title" example:"Drink 2L of water daily"`
	Description  string         `gorm:"type:text" json:"description" example:"Track water intake for a week"`
	DurationDays int            `json:"duration_days" example:"7"`
	Status       string         `gorm:"size:20;default:pending" json:"status" example:"pending"`
	StartedAt    *time.Time     `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
}

// Deadline is StartedAt plus DurationDays; zero when the task has not started.
func (t *Task) Deadline() time.Time {
	if t.StartedAt == nil {
		return time.Time{}
	}
	return t.StartedAt.AddDate(0, 0, t.DurationDays)
}
