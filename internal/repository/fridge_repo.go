package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fridgely/fridgely/internal/models"
)

// FridgeRepository handles fridge inventory data access.
type FridgeRepository struct {
	db *sql.DB
}

// NewFridgeRepository creates a new fridge repository.
func NewFridgeRepository(db *sql.DB) *FridgeRepository {
	return &FridgeRepository{db: db}
}

func (r *FridgeRepository) getExecer(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetItems returns the items of a fridge. Unknown fridges yield an empty
// mapping. Stored quantities pass through models.ParseQuantity so that rows
// written by other tools with bad values read as zero.
func (r *FridgeRepository) GetItems(ctx context.Context, fridgeID string) (models.Items, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, quantity
		FROM fridge_items
		WHERE fridge_id = ?
		ORDER BY name`, fridgeID)
	if err != nil {
		return nil, fmt.Errorf("querying fridge items: %w", err)
	}
	defer rows.Close()

	items := make(models.Items)
	for rows.Next() {
		var name string
		var qty any
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("scanning fridge item: %w", err)
		}
		items[name] = models.ParseQuantity(qty)
	}
	return items, rows.Err()
}

// ReplaceItems overwrites every item of a fridge, creating the fridge row if
// it does not exist yet. Keys are normalized before storage.
func (r *FridgeRepository) ReplaceItems(ctx context.Context, tx *sql.Tx, fridgeID string, items models.Items) error {
	ex := r.getExecer(tx)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := ex.ExecContext(ctx,
		`INSERT INTO fridges (id, created_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`,
		fridgeID, now,
	)
	if err != nil {
		return fmt.Errorf("inserting fridge %q: %w", fridgeID, err)
	}

	if _, err := ex.ExecContext(ctx, `DELETE FROM fridge_items WHERE fridge_id = ?`, fridgeID); err != nil {
		return fmt.Errorf("clearing fridge %q: %w", fridgeID, err)
	}

	for name, qty := range items.Normalized() {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO fridge_items (fridge_id, name, quantity, updated_at)
			VALUES (?, ?, ?, ?)`,
			fridgeID, name, qty.Float64(), now,
		)
		if err != nil {
			return fmt.Errorf("inserting item %q: %w", name, err)
		}
	}

	return nil
}

// ListFridgeIDs returns every known fridge id in sorted order, including
// fridges that currently hold no items.
func (r *FridgeRepository) ListFridgeIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM fridges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying fridges: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning fridge id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteFridge removes a fridge and its items.
func (r *FridgeRepository) DeleteFridge(ctx context.Context, tx *sql.Tx, fridgeID string) error {
	ex := r.getExecer(tx)

	if _, err := ex.ExecContext(ctx, `DELETE FROM fridge_items WHERE fridge_id = ?`, fridgeID); err != nil {
		return fmt.Errorf("deleting fridge items: %w", err)
	}

	result, err := ex.ExecContext(ctx, `DELETE FROM fridges WHERE id = ?`, fridgeID)
	if err != nil {
		return fmt.Errorf("deleting fridge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("fridge %s: %w", fridgeID, ErrNotFound)
	}
	return nil
}
