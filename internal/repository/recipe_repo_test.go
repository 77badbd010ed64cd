package repository

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/testutil"
)

func setupTestDB(t *testing.T) *testutil.TestDB {
	t.Helper()

	db := testutil.NewTestDB(t)

	migrationsDir := filepath.Join("..", "database", "migrations")
	db.RunMigrations(t, migrationsDir)

	return db
}

func TestRecipeRepository_CreateRecipe(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	t.Run("Create valid recipe", func(t *testing.T) {
		recipe := testutil.FixtureRecipe()

		if err := repo.CreateRecipe(ctx, nil, recipe); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		found, err := repo.GetRecipe(ctx, recipe.ID)
		if err != nil {
			t.Fatalf("failed to get recipe: %v", err)
		}

		if found.Name != recipe.Name {
			t.Errorf("expected name %s, got %s", recipe.Name, found.Name)
		}
		if found.SourceURL != recipe.SourceURL {
			t.Errorf("expected source url %s, got %s", recipe.SourceURL, found.SourceURL)
		}
		if found.Calories != 400 || found.ProteinG != 20 {
			t.Errorf("expected 400 kcal / 20 g, got %v / %v", found.Calories, found.ProteinG)
		}
		if found.TotalTimeMin == nil || *found.TotalTimeMin != 15 {
			t.Errorf("expected total time 15, got %v", found.TotalTimeMin)
		}
		if found.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
		if len(found.Requirements) != 2 {
			t.Fatalf("expected 2 requirements, got %d", len(found.Requirements))
		}
	})

	t.Run("Create with transaction", func(t *testing.T) {
		recipe := testutil.FixtureRecipe(func(r *models.Recipe) {
			r.Name = "Omelette"
		})

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		if err := repo.CreateRecipe(ctx, tx, recipe); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("failed to commit transaction: %v", err)
		}

		if _, err := repo.GetRecipe(ctx, recipe.ID); err != nil {
			t.Fatalf("failed to get recipe: %v", err)
		}
	})

	t.Run("Generates ID when empty", func(t *testing.T) {
		recipe := testutil.FixtureRecipe(func(r *models.Recipe) {
			r.ID = ""
		})

		if err := repo.CreateRecipe(ctx, nil, recipe); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}
		if recipe.ID == "" {
			t.Error("expected ID to be generated")
		}
	})

	t.Run("Invalid recipe returns error", func(t *testing.T) {
		tests := []struct {
			name   string
			modify func(*models.Recipe)
		}{
			{"missing name", func(r *models.Recipe) { r.Name = "" }},
			{"missing source url", func(r *models.Recipe) { r.SourceURL = "" }},
			{"negative calories", func(r *models.Recipe) { r.Calories = -1 }},
			{"negative requirement", func(r *models.Recipe) {
				r.Requirements = []models.IngredientRequirement{{Name: "eggs", Quantity: models.Required(-2)}}
			}},
			{"NaN requirement", func(r *models.Recipe) {
				r.Requirements = []models.IngredientRequirement{{Name: "eggs", Quantity: models.Required(math.NaN())}}
			}},
			{"infinite requirement", func(r *models.Recipe) {
				r.Requirements = []models.IngredientRequirement{{Name: "eggs", Quantity: models.Required(math.Inf(1))}}
			}},
			{"NaN protein", func(r *models.Recipe) { r.ProteinG = math.NaN() }},
			{"duplicate requirement", func(r *models.Recipe) {
				r.Requirements = []models.IngredientRequirement{
					{Name: "Eggs", Quantity: models.Required(1)},
					{Name: "eggs ", Quantity: models.Required(2)},
				}
			}},
			{"blank requirement name", func(r *models.Recipe) {
				r.Requirements = []models.IngredientRequirement{{Name: "  "}}
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				recipe := testutil.FixtureRecipe(tt.modify)
				if err := repo.CreateRecipe(ctx, nil, recipe); err == nil {
					t.Error("expected error for invalid recipe, got nil")
				}
			})
		}
	})

	t.Run("Failed insert leaves nothing behind", func(t *testing.T) {
		first := testutil.FixtureRecipe()
		if err := repo.CreateRecipe(ctx, nil, first); err != nil {
			t.Fatalf("failed to create recipe: %v", err)
		}

		before, err := repo.CountRecipes(ctx)
		if err != nil {
			t.Fatalf("failed to count recipes: %v", err)
		}

		// Same ID violates the primary key.
		dup := testutil.FixtureRecipe(func(r *models.Recipe) {
			r.ID = first.ID
			r.Requirements = []models.IngredientRequirement{{Name: "saffron", Quantity: models.Required(1)}}
		})
		if err := repo.CreateRecipe(ctx, nil, dup); err == nil {
			t.Fatal("expected error for duplicate id, got nil")
		}

		after, err := repo.CountRecipes(ctx)
		if err != nil {
			t.Fatalf("failed to count recipes: %v", err)
		}
		if after != before {
			t.Errorf("expected %d recipes after failed insert, got %d", before, after)
		}
	})
}

func TestRecipeRepository_GetIngredientRequirements(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	recipe := testutil.FixtureRecipe(func(r *models.Recipe) {
		r.Requirements = []models.IngredientRequirement{
			{Name: "Tortilla", Quantity: models.Required(2), Unit: "count"},
			{Name: "cheddar", Quantity: models.Required(0.5), Unit: "cup"},
			{Name: "hot sauce"},
			{Name: "black beans", Quantity: models.Required(1), Unit: "can"},
		}
	})
	if err := repo.CreateRecipe(ctx, nil, recipe); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	reqs, err := repo.GetIngredientRequirements(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("failed to get requirements: %v", err)
	}

	want := []struct {
		name string
		qty  *float64
		unit string
	}{
		{"tortilla", models.Required(2), "count"},
		{"cheddar", models.Required(0.5), "cup"},
		{"hot sauce", nil, ""},
		{"black beans", models.Required(1), "can"},
	}

	if len(reqs) != len(want) {
		t.Fatalf("expected %d requirements, got %d", len(want), len(reqs))
	}
	for i, w := range want {
		got := reqs[i]
		if got.Name != w.name {
			t.Errorf("requirement %d: expected name %q, got %q", i, w.name, got.Name)
		}
		if got.Unit != w.unit {
			t.Errorf("requirement %d: expected unit %q, got %q", i, w.unit, got.Unit)
		}
		switch {
		case w.qty == nil && got.Quantity != nil:
			t.Errorf("requirement %d: expected optional, got %v", i, *got.Quantity)
		case w.qty != nil && got.Quantity == nil:
			t.Errorf("requirement %d: expected %v, got optional", i, *w.qty)
		case w.qty != nil && *got.Quantity != *w.qty:
			t.Errorf("requirement %d: expected %v, got %v", i, *w.qty, *got.Quantity)
		}
	}

	t.Run("Unknown recipe has no requirements", func(t *testing.T) {
		reqs, err := repo.GetIngredientRequirements(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reqs) != 0 {
			t.Errorf("expected no requirements, got %d", len(reqs))
		}
	})
}

func TestRecipeRepository_SharedIngredients(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	if err := repo.CreateRecipe(ctx, nil, testutil.FixtureRecipe()); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	if err := repo.CreateRecipe(ctx, nil, testutil.FixtureRecipe(func(r *models.Recipe) {
		r.Name = "Fried Eggs"
	})); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	ingredients, err := repo.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("failed to list ingredients: %v", err)
	}
	if len(ingredients) != 2 {
		t.Errorf("expected 2 distinct ingredients, got %d", len(ingredients))
	}

	first, err := repo.UpsertIngredient(ctx, nil, " EGGS ")
	if err != nil {
		t.Fatalf("failed to upsert ingredient: %v", err)
	}
	if first.Name != "eggs" {
		t.Errorf("expected normalized name eggs, got %q", first.Name)
	}
	again, err := repo.UpsertIngredient(ctx, nil, "eggs")
	if err != nil {
		t.Fatalf("failed to upsert ingredient: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("expected stable ingredient id %s, got %s", first.ID, again.ID)
	}

	if _, err := repo.UpsertIngredient(ctx, nil, "   "); err == nil {
		t.Error("expected error for blank ingredient name")
	}
}

func TestRecipeRepository_ListRecipes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	t.Run("Empty catalog", func(t *testing.T) {
		recipes, err := repo.ListRecipes(ctx)
		if err != nil {
			t.Fatalf("failed to list recipes: %v", err)
		}
		if recipes == nil || len(recipes) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", recipes)
		}
	})

	for _, name := range []string{"Waffles", "Avocado Toast", "Miso Soup"} {
		recipe := testutil.FixtureRecipe(func(r *models.Recipe) {
			r.Name = name
			r.TotalTimeMin = nil
		})
		if err := repo.CreateRecipe(ctx, nil, recipe); err != nil {
			t.Fatalf("failed to create recipe %s: %v", name, err)
		}
	}

	recipes, err := repo.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("failed to list recipes: %v", err)
	}

	want := []string{"Avocado Toast", "Miso Soup", "Waffles"}
	if len(recipes) != len(want) {
		t.Fatalf("expected %d recipes, got %d", len(want), len(recipes))
	}
	for i, name := range want {
		if recipes[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, recipes[i].Name)
		}
		if recipes[i].TotalTimeMin != nil {
			t.Errorf("%s: expected no total time, got %d", name, *recipes[i].TotalTimeMin)
		}
		if len(recipes[i].Requirements) != 0 {
			t.Errorf("%s: ListRecipes should not attach requirements", name)
		}
	}

	count, err := repo.CountRecipes(ctx)
	if err != nil {
		t.Fatalf("failed to count recipes: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 recipes, got %d", count)
	}
}

func TestRecipeRepository_GetRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)

	_, err := repo.GetRecipe(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeRepository_DeleteRecipe(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	recipe := testutil.FixtureRecipe()
	if err := repo.CreateRecipe(ctx, nil, recipe); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	if err := repo.DeleteRecipe(ctx, nil, recipe.ID); err != nil {
		t.Fatalf("failed to delete recipe: %v", err)
	}

	if _, err := repo.GetRecipe(ctx, recipe.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	db.AssertRowCount(t, "recipe_ingredients", 0)

	// Ingredients outlive the recipes that used them.
	db.AssertRowCount(t, "ingredients", 2)

	if err := repo.DeleteRecipe(ctx, nil, recipe.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestRecipeRepository_RecipeNameExists(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewRecipeRepository(db.DB)
	ctx := context.Background()

	if err := repo.CreateRecipe(ctx, nil, testutil.FixtureRecipe()); err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	exists, err := repo.RecipeNameExists(ctx, nil, "Scrambled Eggs")
	if err != nil {
		t.Fatalf("failed to check name: %v", err)
	}
	if !exists {
		t.Error("expected Scrambled Eggs to exist")
	}

	exists, err = repo.RecipeNameExists(ctx, nil, "Omelette")
	if err != nil {
		t.Fatalf("failed to check name: %v", err)
	}
	if exists {
		t.Error("expected Omelette not to exist")
	}
}
