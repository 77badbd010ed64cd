package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fridgely/fridgely/internal/inventory"
	"github.com/fridgely/fridgely/internal/models"
)

// Catalog is the read side of the recipe catalog.
type Catalog interface {
	// ListRecipes returns every recipe without requirements attached.
	ListRecipes(ctx context.Context) ([]*models.Recipe, error)
	// GetIngredientRequirements returns a recipe's ordered requirements.
	GetIngredientRequirements(ctx context.Context, recipeID string) ([]models.IngredientRequirement, error)
}

// MatchRequest asks which recipes an inventory can make.
type MatchRequest struct {
	Fridge      models.Items
	Preferences models.PreferenceRequest
}

// Service is the matching entry point used by the CLI and the TUI.
type Service struct {
	catalog  Catalog
	store    inventory.Store
	defaults models.Preferences
}

// NewService creates a matching service. store may be nil when only Match
// is used.
func NewService(catalog Catalog, store inventory.Store, defaults models.Preferences) *Service {
	return &Service{
		catalog:  catalog,
		store:    store,
		defaults: defaults,
	}
}

// Defaults returns the preferences applied when a request leaves a bound
// unset.
func (s *Service) Defaults() models.Preferences {
	return s.defaults
}

// LoadCatalog reads every recipe and attaches its requirements.
func (s *Service) LoadCatalog(ctx context.Context) ([]*models.Recipe, error) {
	const op = "load catalog"

	if s.catalog == nil {
		return nil, unavailable(op, errors.New("no catalog configured"))
	}

	list, err := s.catalog.ListRecipes(ctx)
	if err != nil {
		return nil, unavailable(op, err)
	}

	recipes := make([]*models.Recipe, 0, len(list))
	for _, recipe := range list {
		if recipe == nil {
			continue
		}
		reqs, err := s.catalog.GetIngredientRequirements(ctx, recipe.ID)
		if err != nil {
			return nil, unavailable(op, fmt.Errorf("requirements of %q: %w", recipe.Name, err))
		}
		recipe.Requirements = reqs
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// Match returns the catalog recipes the request's inventory can make,
// narrowed by its preferences.
func (s *Service) Match(ctx context.Context, req MatchRequest) ([]models.FeasibilityResult, error) {
	const op = "match"

	if err := req.Preferences.Validate(); err != nil {
		return nil, badInput(op, err)
	}
	prefs := req.Preferences.Resolve(s.defaults)

	recipes, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	fridge := req.Fridge.Normalized()
	feasible, err := ComputeFeasible(fridge, recipes)
	if err != nil {
		return nil, badInput(op, err)
	}
	results := ApplyPreferences(feasible, prefs)

	slog.Debug("matched recipes",
		"items", len(fridge),
		"catalog", len(recipes),
		"feasible", len(feasible),
		"kept", len(results),
	)

	return results, nil
}

// MatchFridges merges the named fridges additively and matches the result.
func (s *Service) MatchFridges(ctx context.Context, fridgeIDs []string, prefs models.PreferenceRequest) ([]models.FeasibilityResult, error) {
	const op = "match fridges"

	if len(fridgeIDs) == 0 {
		return nil, badInput(op, errors.New("no fridge ids given"))
	}
	if s.store == nil {
		return nil, unavailable(op, errors.New("no inventory store configured"))
	}

	items, err := inventory.LoadMerged(ctx, s.store, fridgeIDs)
	if err != nil {
		return nil, unavailable(op, err)
	}

	return s.Match(ctx, MatchRequest{Fridge: items, Preferences: prefs})
}
