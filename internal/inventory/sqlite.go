package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/repository"
)

// Compile-time interface check.
var _ Store = (*SQLStore)(nil)

// SQLStore keeps inventories in the fridge_items table.
type SQLStore struct {
	db     *sql.DB
	fridge *repository.FridgeRepository
}

// NewSQLStore creates a store on an open, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:     db,
		fridge: repository.NewFridgeRepository(db),
	}
}

// Get returns the items of one fridge.
func (s *SQLStore) Get(ctx context.Context, fridgeID string) (models.Items, error) {
	items, err := s.fridge.GetItems(ctx, fridgeID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Put replaces the items of one fridge inside a single transaction.
func (s *SQLStore) Put(ctx context.Context, fridgeID string, items models.Items) error {
	if err := checkFridgeID(fridgeID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.fridge.ReplaceItems(ctx, tx, fridgeID, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing fridge %q: %w", fridgeID, err)
	}
	return nil
}

// List returns the fridge ids in sorted order.
func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	return s.fridge.ListFridgeIDs(ctx)
}
