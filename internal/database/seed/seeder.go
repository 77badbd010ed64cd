package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/repository"
)

// Result summarizes a seeding run.
type Result struct {
	Inserted int
	Skipped  int
}

// Seeder inserts recipes into the catalog.
type Seeder struct {
	db      *sql.DB
	recipes *repository.RecipeRepository
}

// NewSeeder creates a seeder on an open, migrated database.
func NewSeeder(db *sql.DB) *Seeder {
	return &Seeder{
		db:      db,
		recipes: repository.NewRecipeRepository(db),
	}
}

// Seed inserts every recipe whose name is not already in the catalog. All
// inserts happen in one transaction: an invalid recipe aborts the whole run.
func (s *Seeder) Seed(ctx context.Context, recipes []*models.Recipe) (Result, error) {
	slog.Info("starting catalog seed", "recipes", len(recipes))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var res Result
	for _, recipe := range recipes {
		if recipe == nil {
			continue
		}

		exists, err := s.recipes.RecipeNameExists(ctx, tx, recipe.Name)
		if err != nil {
			return Result{}, err
		}
		if exists {
			slog.Debug("recipe already in catalog", "name", recipe.Name)
			res.Skipped++
			continue
		}

		if err := s.recipes.CreateRecipe(ctx, tx, recipe); err != nil {
			return Result{}, fmt.Errorf("seeding %q: %w", recipe.Name, err)
		}
		res.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("committing transaction: %w", err)
	}

	slog.Info("catalog seed complete", "inserted", res.Inserted, "skipped", res.Skipped)
	return res, nil
}

// SeedStarter installs the built-in catalog.
func (s *Seeder) SeedStarter(ctx context.Context) (Result, error) {
	return s.Seed(ctx, StarterCatalog())
}

// SeedFile installs the recipes of a TOML catalog file.
func (s *Seeder) SeedFile(ctx context.Context, path string) (Result, error) {
	recipes, err := LoadCatalogFile(path)
	if err != nil {
		return Result{}, err
	}
	return s.Seed(ctx, recipes)
}
