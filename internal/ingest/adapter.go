// Package ingest merges externally detected item names and manual edits
// into the inventory store.
//
// A raw scan sets every detected item to the presence quantity. A
// confirmation only fills in items that are absent or empty.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fridgely/fridgely/internal/inventory"
	"github.com/fridgely/fridgely/internal/models"
)

// DefaultFridgeID is used when neither the caller nor the adapter names a
// fridge.
const DefaultFridgeID = "default"

// Policy names a merge policy in logs.
type Policy string

const (
	PolicyOverwriteOnScan Policy = "overwrite_on_scan"
	PolicyConfirm         Policy = "confirm"
)

// ErrEmptyName is returned by manual edits without an item name.
var ErrEmptyName = errors.New("item name is empty")

// NormalizeDetections lowercases and trims names, drops empty ones and
// removes duplicates, keeping the first occurrence's position.
func NormalizeDetections(detected []string) []string {
	out := make([]string, 0, len(detected))
	seen := make(map[string]bool, len(detected))
	for _, raw := range detected {
		name := models.NormalizeName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// MergeOnScan returns a normalized copy of items in which every detected item is set to
// the presence quantity, replacing whatever was recorded before.
func MergeOnScan(items models.Items, detected []string) models.Items {
	out := items.Normalized()
	for _, name := range NormalizeDetections(detected) {
		out[name] = models.PresentQuantity
	}
	return out
}

// MergeConfirmed returns a normalized copy of items in which detected items that are
// absent or zero are set to the presence quantity. Positive quantities are
// left alone.
func MergeConfirmed(items models.Items, detected []string) models.Items {
	out := items.Normalized()
	for _, name := range NormalizeDetections(detected) {
		if out[name] <= 0 {
			out[name] = models.PresentQuantity
		}
	}
	return out
}

// Adapter applies detections and edits to fridges in a Store. Each
// operation reads the whole fridge, changes it and writes it back.
type Adapter struct {
	store         inventory.Store
	defaultFridge string
}

// NewAdapter creates an adapter. An empty defaultFridge means
// DefaultFridgeID.
func NewAdapter(store inventory.Store, defaultFridge string) *Adapter {
	if defaultFridge == "" {
		defaultFridge = DefaultFridgeID
	}
	return &Adapter{store: store, defaultFridge: defaultFridge}
}

// DefaultFridge returns the fridge used when a caller passes no id.
func (a *Adapter) DefaultFridge() string {
	return a.defaultFridge
}

func (a *Adapter) resolve(fridgeID string) string {
	if fridgeID == "" {
		return a.defaultFridge
	}
	return fridgeID
}

// SetPresenceOnScan treats a scan as ground truth for what is visible: every
// detected item is set to the presence quantity, overwriting higher counts.
// Empty input writes nothing and returns the current inventory.
func (a *Adapter) SetPresenceOnScan(ctx context.Context, fridgeID string, detected []string) (*models.Inventory, error) {
	return a.mergeDetections(ctx, fridgeID, detected, PolicyOverwriteOnScan, MergeOnScan)
}

// ConfirmWithoutClobbering records items a person confirmed: absent or empty
// items become present, existing positive quantities are kept.
// Empty input writes nothing and returns the current inventory.
func (a *Adapter) ConfirmWithoutClobbering(ctx context.Context, fridgeID string, items []string) (*models.Inventory, error) {
	return a.mergeDetections(ctx, fridgeID, items, PolicyConfirm, MergeConfirmed)
}

// Scan asks the detector for the labels visible in source and applies them
// with SetPresenceOnScan.
func (a *Adapter) Scan(ctx context.Context, d Detector, fridgeID, source string) (*models.Inventory, error) {
	labels, err := d.Detect(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("detecting items in %s: %w", source, err)
	}
	return a.SetPresenceOnScan(ctx, fridgeID, labels)
}

func (a *Adapter) mergeDetections(
	ctx context.Context,
	fridgeID string,
	detected []string,
	policy Policy,
	merge func(models.Items, []string) models.Items,
) (*models.Inventory, error) {
	fridgeID = a.resolve(fridgeID)

	current, err := a.store.Get(ctx, fridgeID)
	if err != nil {
		return nil, fmt.Errorf("reading fridge %q: %w", fridgeID, err)
	}

	names := NormalizeDetections(detected)
	if len(names) == 0 {
		slog.Debug("no detections to merge", "fridge", fridgeID, "policy", policy)
		return &models.Inventory{FridgeID: fridgeID, Items: current}, nil
	}

	updated := merge(current, names)
	if err := a.store.Put(ctx, fridgeID, updated); err != nil {
		return nil, fmt.Errorf("writing fridge %q: %w", fridgeID, err)
	}

	slog.Info("merged detections",
		"fridge", fridgeID,
		"policy", policy,
		"detected", len(names),
		"items", len(updated),
	)

	return &models.Inventory{FridgeID: fridgeID, Items: updated}, nil
}

// SetQuantity records an exact quantity for one item, creating it if
// needed.
func (a *Adapter) SetQuantity(ctx context.Context, fridgeID, name string, qty models.Quantity) (*models.Inventory, error) {
	return a.edit(ctx, fridgeID, name, func(items models.Items, key string) bool {
		items[key] = models.ParseQuantity(qty)
		return true
	})
}

// Adjust adds delta to an item's quantity. The result never drops below
// zero; a zero quantity keeps the item listed.
func (a *Adapter) Adjust(ctx context.Context, fridgeID, name string, delta float64) (*models.Inventory, error) {
	return a.edit(ctx, fridgeID, name, func(items models.Items, key string) bool {
		items[key] = models.ParseQuantity(max(items[key].Float64()+delta, 0))
		return true
	})
}

// Remove deletes an item from a fridge. Removing an untracked item writes
// nothing.
func (a *Adapter) Remove(ctx context.Context, fridgeID, name string) (*models.Inventory, error) {
	return a.edit(ctx, fridgeID, name, func(items models.Items, key string) bool {
		if _, ok := items[key]; !ok {
			return false
		}
		delete(items, key)
		return true
	})
}

// edit applies change to a copy of the fridge and writes it back when change
// reports a modification.
func (a *Adapter) edit(ctx context.Context, fridgeID, name string, change func(models.Items, string) bool) (*models.Inventory, error) {
	key := models.NormalizeName(name)
	if key == "" {
		return nil, ErrEmptyName
	}
	fridgeID = a.resolve(fridgeID)

	current, err := a.store.Get(ctx, fridgeID)
	if err != nil {
		return nil, fmt.Errorf("reading fridge %q: %w", fridgeID, err)
	}

	updated := current.Normalized()
	if !change(updated, key) {
		return &models.Inventory{FridgeID: fridgeID, Items: current}, nil
	}

	if err := a.store.Put(ctx, fridgeID, updated); err != nil {
		return nil, fmt.Errorf("writing fridge %q: %w", fridgeID, err)
	}

	slog.Debug("edited fridge item", "fridge", fridgeID, "item", key, "quantity", updated[key])
	return &models.Inventory{FridgeID: fridgeID, Items: updated}, nil
}
