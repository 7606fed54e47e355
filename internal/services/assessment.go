package services

import (
	"nutricoach/internal/health"
	"nutricoach/internal/models"
)

// Storage floors for persisted diet targets.
const (
	MinStoredCalories = 1000
	minStoredGrams    = 0
)

// Assessment is the merged engine output returned to clients.
type Assessment struct {
	Metrics                  health.HealthMetrics      `json:"metrics"`
	Category                 health.CategoryDefinition `json:"category"`
	Target                   health.DietTarget         `json:"target"`
	ConditionRecommendations []string                  `json:"condition_recommendations"`
}

// Assess runs metrics, classification and target derivation on m and adds
// the guidance triggered by conditions.
func Assess(m health.BodyMeasurement, conditions []string) Assessment {
	metrics := health.ComputeMetrics(m)
	return Assessment{
		Metrics:                  metrics,
		Category:                 health.Classify(metrics.BMI),
		Target:                   health.DeriveTargets(metrics.DailyCalories, metrics.Category),
		ConditionRecommendations: health.RecommendForConditions(conditions),
	}
}

// ClampForStorage floors calories at MinStoredCalories and every macro at 0.
func ClampForStorage(t health.DietTarget) health.DietTarget {
	if t.DailyCalories < MinStoredCalories {
		t.DailyCalories = MinStoredCalories
	}
	t.ProteinGrams = max(t.ProteinGrams, minStoredGrams)
	t.CarbGrams = max(t.CarbGrams, minStoredGrams)
	t.FatGrams = max(t.FatGrams, minStoredGrams)
	return t
}

// RefreshProfile recomputes the derived metrics stored on profile.
func RefreshProfile(profile *models.HealthProfile) {
	profile.ApplyMetrics(health.ComputeMetrics(profile.Measurement()))
}

// BuildDietPlan derives an unsaved diet plan from a stored profile.
func BuildDietPlan(profile *models.HealthProfile) *models.DietPlan {
	a := Assess(profile.Measurement(), profile.MedicalConditions)
	target := ClampForStorage(a.Target)

	return &models.DietPlan{
		UserID:                   profile.UserID,
		Category:                 a.Metrics.Category,
		BMI:                      a.Metrics.BMI,
		BaselineCalories:         a.Metrics.DailyCalories,
		DailyCalories:            target.DailyCalories,
		ProteinGrams:             target.ProteinGrams,
		CarbGrams:                target.CarbGrams,
		FatGrams:                 target.FatGrams,
		Recommendations:          models.StringList(a.Category.Recommendations),
		ConditionRecommendations: models.StringList(a.ConditionRecommendations),
	}
}
