package inventory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/fridgely/fridgely/internal/models"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps inventories in memory. Safe for concurrent access.
type MemoryStore struct {
	mu      sync.RWMutex
	fridges map[string]models.Items
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fridges: make(map[string]models.Items)}
}

// Get returns a copy of a fridge's items.
func (s *MemoryStore) Get(ctx context.Context, fridgeID string) (models.Items, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fridges[fridgeID].Clone(), nil
}

// Put replaces a fridge's items. Overwrites if it already exists.
func (s *MemoryStore) Put(ctx context.Context, fridgeID string, items models.Items) error {
	if err := checkFridgeID(fridgeID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fridges[fridgeID] = items.Clone()
	slog.Debug("stored fridge in memory", "fridge", fridgeID, "items", len(items))
	return nil
}

// List returns the fridge ids in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.fridges))
	for id := range s.fridges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
