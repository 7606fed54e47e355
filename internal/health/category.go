package health

import (
	"encoding/json"
	"math"
)

// CategoryDefinition describes one BMI band. Lower is inclusive, Upper
// exclusive.
type CategoryDefinition struct {
	Name            Category `json:"name"`
	Lower           float64  `json:"lower"`
	Upper           float64  `json:"upper"`
	ColorTag        string   `json:"color_tag"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// Bands are scanned in order. The table leaves [24.9, 25) and [29.9, 30)
// uncovered; values there take the Normal fallback in Classify.
var categoryTable = []CategoryDefinition{
	{
		Name:        Underweight,
		Lower:       0,
		Upper:       18.5,
		ColorTag:    "blue",
		Description: "Your weight is below the healthy range for your height.",
		Recommendations: []string{
			"Eat five to six smaller meals spread through the day",
			"Choose nutrient-dense foods such as nuts, dairy and whole grains",
			"Add healthy fats like avocado and olive oil to meals",
			"Include strength training to build muscle mass",
		},
	},
	{
		Name:        Normal,
		Lower:       18.5,
		Upper:       24.9,
		ColorTag:    "green",
		Description: "Your weight is within the healthy range for your height.",
		Recommendations: []string{
			"Keep a balanced diet with plenty of vegetables and fruit",
			"Stay active with at least 150 minutes of exercise per week",
			"Drink enough water throughout the day",
			"Monitor your weight regularly to stay in range",
		},
	},
	{
		Name:        Overweight,
		Lower:       25,
		Upper:       29.9,
		ColorTag:    "orange",
		Description: "Your weight is above the healthy range for your height.",
		Recommendations: []string{
			"Aim for a moderate calorie deficit of about 500 kcal per day",
			"Replace refined carbohydrates with whole grains and vegetables",
			"Limit sugary drinks and processed snacks",
			"Increase daily activity with brisk walks or cycling",
		},
	},
	{
		Name:        Obese,
		Lower:       30,
		Upper:       math.Inf(1),
		ColorTag:    "red",
		Description: "Your weight is well above the healthy range and raises health risks.",
		Recommendations: []string{
			"Consult a doctor or dietitian before starting a weight loss plan",
			"Follow a structured calorie deficit with regular check-ins",
			"Prioritize lean protein and high-fiber foods to stay full",
			"Start with low-impact exercise such as swimming or walking",
		},
	},
}

// Classify returns the first band with Lower <= bmi < Upper, or the Normal
// band when none matches (negative or NaN input, and the gaps noted on
// categoryTable).
func Classify(bmi float64) CategoryDefinition {
	for _, def := range categoryTable {
		if bmi >= def.Lower && bmi < def.Upper {
			return def.clone()
		}
	}
	return categoryTable[1].clone()
}

// Categories returns a copy of the full band table in scan order.
func Categories() []CategoryDefinition {
	out := make([]CategoryDefinition, len(categoryTable))
	for i, def := range categoryTable {
		out[i] = def.clone()
	}
	return out
}

// MarshalJSON encodes an unbounded Upper as null, since JSON has no infinity.
func (d CategoryDefinition) MarshalJSON() ([]byte, error) {
	type plain CategoryDefinition
	out := struct {
		plain
		Upper *float64 `json:"upper"`
	}{plain: plain(d)}
	if !math.IsInf(d.Upper, 1) {
		out.Upper = &d.Upper
	}
	return json.Marshal(out)
}

func (d CategoryDefinition) clone() CategoryDefinition {
	d.Recommendations = append([]string(nil), d.Recommendations...)
	return d
}
