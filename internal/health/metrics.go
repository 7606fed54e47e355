package health

import "math"

const (
	idealBMILow  = 18.5
	idealBMIHigh = 24.9
)

// ComputeMetrics derives BMI, BMR (Mifflin-St Jeor), TDEE and the ideal
// weight range from m, and classifies the BMI.
func ComputeMetrics(m BodyMeasurement) HealthMetrics {
	bmi := BMI(m.HeightCm, m.WeightKg)
	bmr := BMR(m.HeightCm, m.WeightKg, m.AgeYears, m.Sex)
	def := Classify(bmi)

	return HealthMetrics{
		BMI:              bmi,
		BMR:              bmr,
		DailyCalories:    TDEE(bmr, m.ActivityLevel),
		IdealWeightRange: IdealWeight(m.HeightCm),
		Category:         def.Name,
		ColorTag:         def.ColorTag,
	}
}

// BMI returns weight / height(m)^2 rounded to one decimal place.
func BMI(heightCm, weightKg float64) float64 {
	h := heightCm / 100
	return math.Round(weightKg/(h*h)*10) / 10
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
// Any sex other than male uses the female constant.
func BMR(heightCm, weightKg float64, ageYears int, sex Sex) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// TDEE scales an already rounded BMR by the activity multiplier.
func TDEE(bmr int, level ActivityLevel) int {
	return int(math.Round(float64(bmr) * level.Multiplier()))
}

// IdealWeight returns the weight band matching BMI 18.5 to 24.9 at heightCm.
func IdealWeight(heightCm float64) IdealWeightRange {
	h := heightCm / 100
	return IdealWeightRange{
		Min: int(math.Round(idealBMILow * h * h)),
		Max: int(math.Round(idealBMIHigh * h * h)),
	}
}
