// Package repository provides SQLite data access for the recipe catalog and
// fridge inventories.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/util"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RecipeRepository handles recipe catalog data access.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) getExecer(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

// ============================================================================
// INGREDIENTS
// ============================================================================

// UpsertIngredient returns the ingredient with the given name, inserting it
// first if needed. Names are normalized before storage.
func (r *RecipeRepository) UpsertIngredient(ctx context.Context, tx *sql.Tx, name string) (*models.Ingredient, error) {
	name = models.NormalizeName(name)
	if name == "" {
		return nil, errors.New("ingredient name is required")
	}

	ex := r.getExecer(tx)

	_, err := ex.ExecContext(ctx,
		`INSERT INTO ingredients (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		util.NewID(), name,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting ingredient: %w", err)
	}

	var ing models.Ingredient
	err = ex.QueryRowContext(ctx, `SELECT id, name FROM ingredients WHERE name = ?`, name).
		Scan(&ing.ID, &ing.Name)
	if err != nil {
		return nil, fmt.Errorf("loading ingredient %q: %w", name, err)
	}
	return &ing, nil
}

// ListIngredients retrieves all ingredients ordered by name.
func (r *RecipeRepository) ListIngredients(ctx context.Context) ([]*models.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var out []*models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name); err != nil {
			return nil, fmt.Errorf("scanning ingredient row: %w", err)
		}
		out = append(out, &ing)
	}
	return out, rows.Err()
}

// ============================================================================
// RECIPES
// ============================================================================

// CreateRecipe inserts a recipe and its requirements. When tx is nil the
// insert runs in its own transaction. The recipe's ID is generated if empty.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, tx *sql.Tx, recipe *models.Recipe) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}

	if tx == nil {
		own, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer own.Rollback()

		if err := r.insertRecipe(ctx, own, recipe); err != nil {
			return err
		}
		if err := own.Commit(); err != nil {
			return fmt.Errorf("committing recipe: %w", err)
		}
		return nil
	}

	return r.insertRecipe(ctx, tx, recipe)
}

func (r *RecipeRepository) insertRecipe(ctx context.Context, tx *sql.Tx, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = util.NewID()
	}
	recipe.CreatedAt = time.Now().UTC()

	_, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (
			id, name, total_time_min, source_url, calories, protein_g, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.Name,
		recipe.TotalTimeMin,
		recipe.SourceURL,
		recipe.Calories,
		recipe.ProteinG,
		recipe.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}

	for i, req := range recipe.Requirements {
		ing, err := r.UpsertIngredient(ctx, tx, req.Name)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (
				recipe_id, ingredient_id, quantity_needed, unit, position
			) VALUES (?, ?, ?, ?, ?)`,
			recipe.ID,
			ing.ID,
			req.Quantity,
			nullableString(req.Unit),
			i,
		)
		if err != nil {
			return fmt.Errorf("inserting requirement %q: %w", req.Name, err)
		}
	}

	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func validateRecipe(recipe *models.Recipe) error {
	var errs []error

	if recipe == nil {
		return errors.New("recipe is nil")
	}
	if recipe.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if recipe.SourceURL == "" {
		errs = append(errs, errors.New("source_url is required"))
	}
	if !nonNegative(recipe.Calories) {
		errs = append(errs, errors.New("calories must be a non-negative number"))
	}
	if !nonNegative(recipe.ProteinG) {
		errs = append(errs, errors.New("protein_g must be a non-negative number"))
	}

	seen := make(map[string]bool, len(recipe.Requirements))
	for _, req := range recipe.Requirements {
		name := models.NormalizeName(req.Name)
		if name == "" {
			errs = append(errs, errors.New("requirement name is required"))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate requirement %q", name))
		}
		seen[name] = true
		if req.Quantity != nil && !nonNegative(*req.Quantity) {
			errs = append(errs, fmt.Errorf("requirement %q needs a finite, non-negative quantity", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid recipe %q: %w", recipe.Name, errors.Join(errs...))
	}
	return nil
}

// GetRecipe retrieves a recipe by ID with its requirements attached.
func (r *RecipeRepository) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, total_time_min, source_url, calories, protein_g, created_at
		FROM recipes
		WHERE id = ?`, id)

	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}

	reqs, err := r.GetIngredientRequirements(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.Requirements = reqs

	return recipe, nil
}

// ListRecipes retrieves all recipes ordered by name. Requirements are not
// attached; see GetIngredientRequirements.
func (r *RecipeRepository) ListRecipes(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, total_time_min, source_url, calories, protein_g, created_at
		FROM recipes
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	recipes := []*models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe row: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// GetIngredientRequirements returns a recipe's requirements in the order
// they were recorded. A NULL quantity marks an optional ingredient.
func (r *RecipeRepository) GetIngredientRequirements(ctx context.Context, recipeID string) ([]models.IngredientRequirement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.name, ri.quantity_needed, ri.unit
		FROM recipe_ingredients ri
		JOIN ingredients i ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = ?
		ORDER BY ri.position`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying requirements: %w", err)
	}
	defer rows.Close()

	reqs := []models.IngredientRequirement{}
	for rows.Next() {
		var req models.IngredientRequirement
		var qty sql.NullFloat64
		var unit sql.NullString

		if err := rows.Scan(&req.Name, &qty, &unit); err != nil {
			return nil, fmt.Errorf("scanning requirement row: %w", err)
		}
		if qty.Valid {
			req.Quantity = &qty.Float64
		}
		if unit.Valid {
			req.Unit = unit.String
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// CountRecipes returns the number of recipes in the catalog.
func (r *RecipeRepository) CountRecipes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting recipes: %w", err)
	}
	return count, nil
}

// RecipeNameExists reports whether a recipe with exactly this name exists.
func (r *RecipeRepository) RecipeNameExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var n int
	err := r.getExecer(tx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes WHERE name = ?`, name,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking recipe %q: %w", name, err)
	}
	return n > 0, nil
}

// DeleteRecipe removes a recipe and its requirement rows.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, tx *sql.Tx, id string) error {
	ex := r.getExecer(tx)

	if _, err := ex.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("deleting requirements: %w", err)
	}

	result, err := ex.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	var recipe models.Recipe
	var totalTime sql.NullInt64
	var createdStr string

	err := s.Scan(
		&recipe.ID, &recipe.Name, &totalTime, &recipe.SourceURL,
		&recipe.Calories, &recipe.ProteinG, &createdStr,
	)
	if err != nil {
		return nil, err
	}

	if totalTime.Valid {
		v := int(totalTime.Int64)
		recipe.TotalTimeMin = &v
	}
	recipe.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)

	return &recipe, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
