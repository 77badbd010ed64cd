// Package seed populates the recipe catalog, either from the built-in
// starter recipes or from a TOML catalog file.
package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fridgely/fridgely/internal/models"
)

// CatalogFile is the on-disk layout of a recipe catalog:
//
//	[[recipe]]
//	name = "Strawberry Bagel"
//	source_url = "https://example.com/bagel"
//	calories = 450
//	protein_g = 12
//
//	[[recipe.ingredient]]
//	name = "bagel"
//	quantity = 1
//
// An ingredient without a quantity is optional.
type CatalogFile struct {
	Recipes []RecipeEntry `toml:"recipe"`
}

// RecipeEntry is one [[recipe]] table.
type RecipeEntry struct {
	Name         string            `toml:"name"`
	SourceURL    string            `toml:"source_url"`
	TotalTimeMin *int              `toml:"total_time_min"`
	Calories     float64           `toml:"calories"`
	ProteinG     float64           `toml:"protein_g"`
	Ingredients  []IngredientEntry `toml:"ingredient"`
}

// IngredientEntry is one [[recipe.ingredient]] table.
type IngredientEntry struct {
	Name     string   `toml:"name"`
	Quantity *float64 `toml:"quantity"`
	Unit     string   `toml:"unit"`
}

// Recipe converts the entry into a catalog recipe without an id.
func (e RecipeEntry) Recipe() *models.Recipe {
	r := &models.Recipe{
		Name:         strings.TrimSpace(e.Name),
		SourceURL:    strings.TrimSpace(e.SourceURL),
		TotalTimeMin: copyPtr(e.TotalTimeMin),
		Calories:     e.Calories,
		ProteinG:     e.ProteinG,
		Requirements: make([]models.IngredientRequirement, 0, len(e.Ingredients)),
	}
	for _, ing := range e.Ingredients {
		r.Requirements = append(r.Requirements, models.IngredientRequirement{
			Name:     ing.Name,
			Quantity: copyPtr(ing.Quantity),
			Unit:     ing.Unit,
		})
	}
	return r
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ParseCatalog decodes a TOML catalog document. Unknown keys are logged and
// ignored; a document without recipes is an error.
func ParseCatalog(data string) ([]*models.Recipe, error) {
	var file CatalogFile
	md, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("ignoring unknown catalog keys", "keys", keys)
	}

	if len(file.Recipes) == 0 {
		return nil, errors.New("catalog contains no recipes")
	}

	recipes := make([]*models.Recipe, len(file.Recipes))
	for i, entry := range file.Recipes {
		recipes[i] = entry.Recipe()
	}
	return recipes, nil
}

// LoadCatalogFile reads and decodes a TOML catalog file.
func LoadCatalogFile(path string) ([]*models.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	recipes, err := ParseCatalog(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recipes, nil
}
