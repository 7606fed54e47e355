package repository

import (
	"nutricoach/internal/models"

	"gorm.io/gorm"
)

type DietPlanRepository interface {
	Create(plan *models.DietPlan) error
	FindAllByUserID(userID uint) ([]models.DietPlan, error)
	FindLatestByUserID(userID uint) (*models.DietPlan, error)
	FindByID(id uint) (*models.DietPlan, error)
	Delete(id uint) error
}

type dietPlanRepository struct {
	db *gorm.DB
}

func NewDietPlanRepository(db *gorm.DB) DietPlanRepository {
	return &dietPlanRepository{db}
}

func (r *dietPlanRepository) Create(plan *models.DietPlan) error {
	return r.db.Create(plan).Error
}

func (r *dietPlanRepository) FindAllByUserID(userID uint) ([]models.DietPlan, error) {
	var plans []models.DietPlan
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&plans).Error
	return plans, err
}

func (r *dietPlanRepository) FindLatestByUserID(userID uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *dietPlanRepository) FindByID(id uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := r.db.First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *dietPlanRepository) Delete(id uint) error {
	return r.db.Delete(&models.DietPlan{}, id).Error
}
