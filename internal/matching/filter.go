package matching

import "github.com/fridgely/fridgely/internal/models"

// ApplyPreferences keeps the results whose calories fall inside
// [CalorieMin, CalorieMax] and whose protein is at least ProteinMin. Input
// order is preserved. Inverted calorie bounds simply match nothing.
func ApplyPreferences(results []models.FeasibilityResult, prefs models.Preferences) []models.FeasibilityResult {
	out := make([]models.FeasibilityResult, 0, len(results))
	for _, r := range results {
		if prefs.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}
