package models

import (
	"time"

	"nutricoach/internal/health"

	"gorm.io/gorm"
)

type HealthProfile struct {
	ID                uint                 `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt         time.Time            `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt         time.Time            `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-" swaggerignore:"true"`
	UserID            uint                 `gorm:"unique" json:"user_id" example:"1"`
	HeightCm          float64              `json:"height_cm" example:"170"`
	WeightKg          float64              `json:"weight_kg" example:"70"`
	Age               int                  `json:"age" example:"30"`
	Sex               health.Sex           `gorm:"size:10" json:"sex" example:"male"`
	ActivityLevel     health.ActivityLevel `gorm:"size:20" json:"activity_level" example:"moderate"`
	MedicalConditions StringList           `gorm:"type:text" json:"medical_conditions"`
	BMI               float64              `json:"bmi" example:"24.2"`
	BMR               int                  `json:"bmr" example:"1618"`
	DailyCalories     int                  `json:"daily_calories" example:"2508"`
	IdealWeightMin    int                  `json:"ideal_weight_min" example:"53"`
	IdealWeightMax    int                  `json:"ideal_weight_max" example:"72"`
	Category          health.Category      `gorm:"size:20" json:"category" example:"Normal"`
	ColorTag          string               `gorm:"size:20" json:"color_tag" example:"green"`
}

// Measurement returns the engine input stored on the profile.
func (p *HealthProfile) Measurement() health.BodyMeasurement {
	return health.BodyMeasurement{
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		AgeYears:      p.Age,
		Sex:           p.Sex,
		ActivityLevel: p.ActivityLevel,
	}
}

// ApplyMetrics copies computed metrics onto the profile.
func (p *HealthProfile) ApplyMetrics(m health.HealthMetrics) {
	p.BMI = m.BMI
	p.BMR = m.BMR
	p.DailyCalories = m.DailyCalories
	p.IdealWeightMin = m.IdealWeightRange.Min
	p.IdealWeightMax = m.IdealWeightRange.Max
	p.Category = m.Category
	p.ColorTag = m.ColorTag
}
