package models

import (
	"time"
)

// Ingredient is a catalog ingredient. Names are unique.
type Ingredient struct {
	ID   string
	Name string
}

// IngredientRequirement is one line of a recipe's ingredient list.
// A nil Quantity marks the ingredient as optional; it never blocks a recipe.
// Quantity and Unit are compared against inventory quantities without any
// unit conversion, so the catalog must record units compatible with how
// the fridge is counted.
type IngredientRequirement struct {
	Name     string
	Quantity *float64
	Unit     string
}

// IsOptional reports whether the requirement can be skipped.
func (r IngredientRequirement) IsOptional() bool {
	return r.Quantity == nil
}

// Recipe is a catalog recipe with its ordered requirements attached.
type Recipe struct {
	ID           string
	Name         string
	SourceURL    string
	TotalTimeMin *int
	Calories     float64
	ProteinG     float64
	CreatedAt    time.Time

	Requirements []IngredientRequirement
}

// MandatoryCount returns how many requirements must be satisfied.
func (r *Recipe) MandatoryCount() int {
	n := 0
	for _, req := range r.Requirements {
		if !req.IsOptional() {
			n++
		}
	}
	return n
}

// FeasibilityResult is a makeable recipe with its nutrition facts.
type FeasibilityResult struct {
	RecipeID  string  `json:"-"`
	Name      string  `json:"name"`
	SourceURL string  `json:"source_url"`
	Calories  float64 `json:"calories"`
	ProteinG  float64 `json:"protein_g"`
}

// ResultFor builds the feasibility result for a recipe.
func ResultFor(r *Recipe) FeasibilityResult {
	return FeasibilityResult{
		RecipeID:  r.ID,
		Name:      r.Name,
		SourceURL: r.SourceURL,
		Calories:  r.Calories,
		ProteinG:  r.ProteinG,
	}
}

// Required returns a pointer to q, for building mandatory requirements.
func Required(q float64) *float64 {
	return &q
}
