package health

import "math"

// Atwater energy densities in kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// Share of the adjusted calorie budget given to each macro.
const (
	proteinShare = 0.25
	carbShare    = 0.45
	fatShare     = 0.30
)

var calorieAdjustments = map[Category]int{
	Underweight: 500,
	Overweight:  -500,
	Obese:       -750,
}

// CalorieAdjustment is the surplus or deficit applied to TDEE for category.
// Normal and unknown categories get none.
func CalorieAdjustment(category Category) int {
	return calorieAdjustments[category]
}

// DeriveTargets adjusts dailyCalories for category and splits the result
// 25/45/30 into protein, carb and fat grams. No clamping is applied.
func DeriveTargets(dailyCalories int, category Category) DietTarget {
	adjusted := dailyCalories + CalorieAdjustment(category)
	kcal := float64(adjusted)

	return DietTarget{
		DailyCalories: adjusted,
		ProteinGrams:  int(math.Round(kcal * proteinShare / kcalPerGramProtein)),
		CarbGrams:     int(math.Round(kcal * carbShare / kcalPerGramCarb)),
		FatGrams:      int(math.Round(kcal * fatShare / kcalPerGramFat)),
	}
}
