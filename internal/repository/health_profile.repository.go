package repository

import (
	"nutricoach/internal/models"

	"gorm.io/gorm"
)

type HealthProfileRepository interface {
	Create(profile *models.HealthProfile) error
	FindByUserID(userID uint) (*models.HealthProfile, error)
	Update(profile *models.HealthProfile) error
	DeleteByUserID(userID uint) error
}

type healthProfileRepository struct {
	db *gorm.DB
}

func NewHealthProfileRepository(db *gorm.DB) HealthProfileRepository {
	return &healthProfileRepository{db: db}
}

func (r *healthProfileRepository) Create(profile *models.HealthProfile) error {
	return r.db.Create(profile).Error
}

func (r *healthProfileRepository) FindByUserID(userID uint) (*models.HealthProfile, error) {
	var profile models.HealthProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *healthProfileRepository) Update(profile *models.HealthProfile) error {
	return r.db.Save(profile).Error
}

func (r *healthProfileRepository) DeleteByUserID(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.HealthProfile{}).Error
}
