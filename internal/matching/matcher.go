// Package matching decides which catalog recipes can be made from a fridge
// inventory and narrows them by nutrition preferences.
package matching

import (
	"errors"
	"fmt"

	"github.com/fridgely/fridgely/internal/models"
)

// ErrNilCatalog is returned when the matcher is handed no catalog at all.
// An empty, non-nil catalog is valid and yields no results.
var ErrNilCatalog = errors.New("matching: catalog is nil")

// IsFeasible reports whether every mandatory requirement of recipe is
// covered by items. Optional requirements are skipped, missing items count
// as zero and the comparison is inclusive. Evaluation stops at the first
// unsatisfied requirement.
func IsFeasible(items models.Items, recipe *models.Recipe) bool {
	for _, req := range recipe.Requirements {
		if req.IsOptional() {
			continue
		}
		if items.Get(req.Name).Float64() < *req.Quantity {
			return false
		}
	}
	return true
}

// ComputeFeasible returns the recipes of catalog that items can make, in
// catalog order. It has no side effects.
func ComputeFeasible(items models.Items, catalog []*models.Recipe) ([]models.FeasibilityResult, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	results := make([]models.FeasibilityResult, 0, len(catalog))
	for i, recipe := range catalog {
		if recipe == nil {
			return nil, fmt.Errorf("%w: recipe at index %d is nil", ErrNilCatalog, i)
		}
		if IsFeasible(items, recipe) {
			results = append(results, models.ResultFor(recipe))
		}
	}
	return results, nil
}
