package models

import (
	"errors"
	"fmt"
	"math"
)

// DefaultCalorieMax is the open upper calorie bound used when a caller does
// not set one.
const DefaultCalorieMax = 9999

// Preferences are resolved nutrition bounds. All fields are always set.
type Preferences struct {
	CalorieMin float64
	CalorieMax float64
	ProteinMin float64
}

// DefaultPreferences returns bounds that keep every recipe with
// non-negative protein and at most DefaultCalorieMax calories.
func DefaultPreferences() Preferences {
	return Preferences{
		CalorieMin: 0,
		CalorieMax: DefaultCalorieMax,
		ProteinMin: 0,
	}
}

// Allows reports whether a result satisfies the bounds. Both calorie bounds
// are inclusive.
func (p Preferences) Allows(r FeasibilityResult) bool {
	return p.CalorieMin <= r.Calories && r.Calories <= p.CalorieMax && r.ProteinG >= p.ProteinMin
}

// PreferenceRequest is the caller-facing form of Preferences. Absent fields
// fall back to defaults.
type PreferenceRequest struct {
	CalorieMin *float64 `json:"calorieMin,omitempty"`
	CalorieMax *float64 `json:"calorieMax,omitempty"`
	Protein    *float64 `json:"protein,omitempty"`
}

// Validate rejects values that cannot be compared.
func (r PreferenceRequest) Validate() error {
	var errs []error

	check := func(field string, v *float64) {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Errorf("%s must be a finite number", field))
		}
	}
	check("calorieMin", r.CalorieMin)
	check("calorieMax", r.CalorieMax)
	check("protein", r.Protein)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Resolve fills absent fields from defaults.
func (r PreferenceRequest) Resolve(defaults Preferences) Preferences {
	p := defaults
	if r.CalorieMin != nil {
		p.CalorieMin = *r.CalorieMin
	}
	if r.CalorieMax != nil {
		p.CalorieMax = *r.CalorieMax
	}
	if r.Protein != nil {
		p.ProteinMin = *r.Protein
	}
	return p
}
