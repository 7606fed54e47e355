package repository

import (
	"nutricoach/internal/models"

	"gorm.io/gorm"
)

type BMIRecordRepository interface {
	Create(record *models.BMIRecord) error
	FindAllByUserID(userID uint, limit int) ([]models.BMIRecord, error)
	DeleteByUserID(userID uint) error
}

type bmiRecordRepository struct {
	db *gorm.DB
}

func NewBMIRecordRepository(db *gorm.DB) BMIRecordRepository {
	return &bmiRecordRepository{db}
}

func (r *bmiRecordRepository) Create(record *models.BMIRecord) error {
	return r.db.Create(record).Error
}

// FindAllByUserID returns newest first. A limit <= 0 returns every record.
func (r *bmiRecordRepository) FindAllByUserID(userID uint, limit int) ([]models.BMIRecord, error) {
	var records []models.BMIRecord
	query := r.db.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

func (r *bmiRecordRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.BMIRecord{}).Error
}
