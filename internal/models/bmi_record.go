package models

import (
	"time"

	"nutricoach/internal/health"
)

// BMIRecord is one entry of a user's BMI history.
type BMIRecord struct {
	ID        uint            `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time       `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UserID    uint            `gorm:"index" json:"user_id" example:"1"`
	User      User            `gorm:"foreignKey:UserID" json:"-"`
	HeightCm  float64         `json:"height_cm" example:"170"`
	WeightKg  float64         `json:"weight_kg" example:"70"`
	BMI       float64         `json:"bmi" example:"24.2"`
	Category  health.Category `gorm:"size:20" json:"category" example:"Normal"`
}

func NewBMIRecord(p *HealthProfile) *BMIRecord {
	return &BMIRecord{
		UserID:   p.UserID,
		HeightCm: p.HeightCm,
		WeightKg: p.WeightKg,
		BMI:      p.BMI,
		Category: p.Category,
	}
}
