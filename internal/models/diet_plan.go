package models

import (
	"time"

	"nutricoach/internal/health"

	"gorm.io/gorm"
)

type DietPlan struct {
	ID                       uint            `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt                time.Time       `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt                time.Time       `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt                gorm.DeletedAt  `gorm:"index" json:"-" swaggerignore:"true"`
	UserID                   uint            `gorm:"index" json:"user_id" example:"1"`
	User                     User            `gorm:"foreignKey:UserID" json:"-"`
	Category                 health.Category `gorm:"size:20" json:"category" example:"Obese"`
	BMI                      float64         `json:"bmi" example:"31.2"`
	BaselineCalories         int             `json:"baseline_calories" example:"2000"`
	DailyCalories            int             `json:"daily_calories" example:"1250"`
	ProteinGrams             int             `json:"protein_grams" example:"78"`
	CarbGrams                int             `json:"carb_grams" example:"141"`
	FatGrams                 int             `json:"fat_grams" example:"42"`
	Recommendations          StringList      `gorm:"type:text" json:"recommendations"`
	ConditionRecommendations StringList      `gorm:"type:text" json:"condition_recommendations"`
}
