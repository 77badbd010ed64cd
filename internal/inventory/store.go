// Package inventory stores per-fridge item quantities.
//
// Every backend reads and writes a fridge's item mapping as a whole; there
// is no partial update. Concurrent writers to the same fridge race and the
// last write wins.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/fridgely/fridgely/internal/models"
)

// Store reads and writes fridge inventories.
type Store interface {
	// Get returns the items of a fridge. Unknown fridges yield an empty,
	// non-nil mapping.
	Get(ctx context.Context, fridgeID string) (models.Items, error)
	// Put replaces the items of a fridge, creating it if needed.
	Put(ctx context.Context, fridgeID string, items models.Items) error
	// List returns the known fridge ids in sorted order.
	List(ctx context.Context) ([]string, error)
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ErrEmptyFridgeID is returned when a fridge id is blank.
var ErrEmptyFridgeID = errors.New("fridge id is empty")

func checkFridgeID(id string) error {
	if id == "" {
		return ErrEmptyFridgeID
	}
	return nil
}

// Load reads a fridge into an Inventory.
func Load(ctx context.Context, s Store, fridgeID string) (*models.Inventory, error) {
	items, err := s.Get(ctx, fridgeID)
	if err != nil {
		return nil, fmt.Errorf("loading fridge %q: %w", fridgeID, err)
	}
	return &models.Inventory{FridgeID: fridgeID, Items: items}, nil
}

// MergeFridges combines several fridges into one mapping by adding the
// quantities of items they share.
func MergeFridges(fridges ...models.Items) models.Items {
	merged := make(models.Items)
	for _, items := range fridges {
		for name, qty := range items {
			key := models.NormalizeName(name)
			if key == "" {
				continue
			}
			merged[key] += qty
		}
	}
	return merged
}

// LoadMerged reads the given fridges and merges them.
func LoadMerged(ctx context.Context, s Store, fridgeIDs []string) (models.Items, error) {
	fridges := make([]models.Items, 0, len(fridgeIDs))
	for _, id := range fridgeIDs {
		items, err := s.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading fridge %q: %w", id, err)
		}
		fridges = append(fridges, items)
	}
	return MergeFridges(fridges...), nil
}
