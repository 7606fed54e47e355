// Package health computes body metrics, weight categories and daily diet
// targets from plain measurements. Every function is pure and safe for
// concurrent use; input validation belongs to the caller.
package health

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ActivityLevel scales BMR into total daily energy expenditure.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// Multiplier returns the TDEE factor for the level. Unknown or empty levels
// fall back to the sedentary factor.
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[Sedentary]
}

// Valid reports whether a is one of the known activity levels.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// Valid reports whether s is one of the known sexes.
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// Category is a weight-status bucket derived from BMI.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// BodyMeasurement is the raw input of ComputeMetrics.
type BodyMeasurement struct {
	HeightCm      float64       `json:"height_cm"`
	WeightKg      float64       `json:"weight_kg"`
	AgeYears      int           `json:"age"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activity_level"`
}

// IdealWeightRange is the healthy weight band in kilograms for a height.
type IdealWeightRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// HealthMetrics is the output of ComputeMetrics.
type HealthMetrics struct {
	BMI              float64          `json:"bmi"`
	BMR              int              `json:"bmr"`
	DailyCalories    int              `json:"daily_calories"`
	IdealWeightRange IdealWeightRange `json:"ideal_weight_range"`
	Category         Category         `json:"category"`
	ColorTag         string           `json:"color_tag"`
}

// DietTarget is a calorie budget split into macro gram targets.
type DietTarget struct {
	DailyCalories int `json:"daily_calories"`
	ProteinGrams  int `json:"protein_grams"`
	CarbGrams     int `json:"carb_grams"`
	FatGrams      int `json:"fat_grams"`
}
