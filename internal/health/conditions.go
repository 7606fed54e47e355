package health

import "strings"

type conditionGroup struct {
	triggers        []string
	recommendations []string
}

// Groups are emitted in this order.
var conditionGroups = []conditionGroup{
	{
		triggers: []string{"diabetes"},
		recommendations: []string{
			"Monitor carbohydrate intake and prefer low glycemic index foods",
			"Avoid sugary drinks and desserts",
			"Eat meals at regular times to keep blood sugar stable",
		},
	},
	{
		triggers: []string{"hypertension", "high blood pressure"},
		recommendations: []string{
			"Limit sodium intake to less than 2,300 mg per day",
			"Eat more potassium-rich foods such as bananas and leafy greens",
			"Reduce processed and canned foods",
		},
	},
	{
		triggers: []string{"cholesterol"},
		recommendations: []string{
			"Reduce saturated and trans fats from fried and fatty foods",
			"Increase soluble fiber with oats, beans and lentils",
			"Include omega-3 sources such as fish and flaxseed",
		},
	},
}

// RecommendForConditions returns the dietary guidance triggered by
// free-text condition names. Matching is a case-insensitive substring test;
// each group contributes once no matter how many conditions trigger it.
func RecommendForConditions(conditions []string) []string {
	out := []string{}
	if len(conditions) == 0 {
		return out
	}

	lowered := make([]string, len(conditions))
	for i, c := range conditions {
		lowered[i] = strings.ToLower(c)
	}

	for _, group := range conditionGroups {
		if group.matches(lowered) {
			out = append(out, group.recommendations...)
		}
	}
	return out
}

func (g conditionGroup) matches(lowered []string) bool {
	for _, c := range lowered {
		for _, t := range g.triggers {
			if strings.Contains(c, t) {
				return true
			}
		}
	}
	return false
}
