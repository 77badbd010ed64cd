package testutil

import (
	"time"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/util"
)

// FixtureRecipe creates a test recipe with sensible defaults: a 400 kcal,
// 20 g protein recipe needing 2 eggs and optionally some salt.
func FixtureRecipe(overrides ...func(*models.Recipe)) *models.Recipe {
	totalTime := 15

	recipe := &models.Recipe{
		ID:           util.NewID(),
		Name:         "Scrambled Eggs",
		SourceURL:    "https://example.com/scrambled-eggs",
		TotalTimeMin: &totalTime,
		Calories:     400,
		ProteinG:     20,
		CreatedAt:    time.Now().UTC(),
		Requirements: []models.IngredientRequirement{
			{Name: "eggs", Quantity: models.Required(2), Unit: "count"},
			{Name: "salt"},
		},
	}

	for _, override := range overrides {
		override(recipe)
	}

	return recipe
}

// FixtureStrawberryBagel needs one bagel and one portion of cream cheese,
// with optional flaky salt. 450 kcal, 12 g protein.
func FixtureStrawberryBagel(overrides ...func(*models.Recipe)) *models.Recipe {
	return FixtureRecipe(append([]func(*models.Recipe){
		func(r *models.Recipe) {
			r.Name = "Strawberry Bagel"
			r.SourceURL = "https://example.com/strawberry-bagel"
			r.Calories = 450
			r.ProteinG = 12
			r.Requirements = []models.IngredientRequirement{
				{Name: "bagel", Quantity: models.Required(1)},
				{Name: "cream cheese", Quantity: models.Required(1)},
				{Name: "flaky salt"},
			}
		},
	}, overrides...)...)
}

// FixtureProteinShake needs 2000 ml of milk.
func FixtureProteinShake(overrides ...func(*models.Recipe)) *models.Recipe {
	return FixtureRecipe(append([]func(*models.Recipe){
		func(r *models.Recipe) {
			r.Name = "Protein Shake"
			r.SourceURL = "https://example.com/protein-shake"
			r.Calories = 300
			r.ProteinG = 30
			r.Requirements = []models.IngredientRequirement{
				{Name: "milk", Quantity: models.Required(2000), Unit: "ml"},
			}
		},
	}, overrides...)...)
}

// FixtureItems builds an inventory from alternating name, quantity pairs.
func FixtureItems(pairs ...any) models.Items {
	items := make(models.Items, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		items[models.NormalizeName(name)] = models.ParseQuantity(pairs[i+1])
	}
	return items
}
