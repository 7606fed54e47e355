package repository

import (
	"time"

	"nutricoach/internal/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *models.Task) error
	FindAllByUserID(userID uint) ([]models.Task, error)
	FindByID(id uint) (*models.Task, error)
	Update(task *models.Task) error
	Delete(id uint) error
	CountByUserIDAndStatus(userID uint, status string) (int64, error)
	FindInProgressStartedBefore(cutoff time.Time) ([]models.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db}
}

func (r *taskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) FindAllByUserID(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}

func (r *taskRepository) CountByUserIDAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("user_id = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}

func (r *taskRepository) FindInProgressStartedBefore(cutoff time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("status = ? AND started_at <= ?", models.TaskInProgress, cutoff).Find(&tasks).Error
	return tasks, err
}
