package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/testutil"
)

func TestFridgeRepository_ReplaceAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewFridgeRepository(db.DB)
	ctx := context.Background()

	t.Run("Unknown fridge is empty", func(t *testing.T) {
		items, err := repo.GetItems(ctx, "nowhere")
		if err != nil {
			t.Fatalf("failed to get items: %v", err)
		}
		if items == nil || len(items) != 0 {
			t.Errorf("expected empty non-nil items, got %v", items)
		}
	})

	t.Run("Replace creates fridge", func(t *testing.T) {
		items := testutil.FixtureItems("milk", 1000, "Eggs ", 6)

		if err := repo.ReplaceItems(ctx, nil, "kitchen", items); err != nil {
			t.Fatalf("failed to replace items: %v", err)
		}

		got, err := repo.GetItems(ctx, "kitchen")
		if err != nil {
			t.Fatalf("failed to get items: %v", err)
		}
		want := models.Items{"milk": 1000, "eggs": 6}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Replace overwrites every item", func(t *testing.T) {
		if err := repo.ReplaceItems(ctx, nil, "kitchen", models.Items{"butter": 1}); err != nil {
			t.Fatalf("failed to replace items: %v", err)
		}

		got, err := repo.GetItems(ctx, "kitchen")
		if err != nil {
			t.Fatalf("failed to get items: %v", err)
		}
		want := models.Items{"butter": 1}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Replace within transaction", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}

		if err := repo.ReplaceItems(ctx, tx, "garage", models.Items{"soda": 12}); err != nil {
			t.Fatalf("failed to replace items: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("failed to roll back: %v", err)
		}

		got, err := repo.GetItems(ctx, "garage")
		if err != nil {
			t.Fatalf("failed to get items: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected rolled back fridge to be empty, got %v", got)
		}
	})
}

func TestFridgeRepository_ListFridgeIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewFridgeRepository(db.DB)
	ctx := context.Background()

	ids, err := repo.ListFridgeIDs(ctx)
	if err != nil {
		t.Fatalf("failed to list fridges: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no fridges, got %v", ids)
	}

	for _, id := range []string{"kitchen", "basement", "garage"} {
		if err := repo.ReplaceItems(ctx, nil, id, models.Items{"water": 1}); err != nil {
			t.Fatalf("failed to replace %s: %v", id, err)
		}
	}
	// A fridge emptied of items is still listed.
	if err := repo.ReplaceItems(ctx, nil, "garage", models.Items{}); err != nil {
		t.Fatalf("failed to empty garage: %v", err)
	}

	ids, err = repo.ListFridgeIDs(ctx)
	if err != nil {
		t.Fatalf("failed to list fridges: %v", err)
	}
	want := []string{"basement", "garage", "kitchen"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestFridgeRepository_DeleteFridge(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewFridgeRepository(db.DB)
	ctx := context.Background()

	if err := repo.ReplaceItems(ctx, nil, "kitchen", models.Items{"milk": 1, "eggs": 2}); err != nil {
		t.Fatalf("failed to replace items: %v", err)
	}

	if err := repo.DeleteFridge(ctx, nil, "kitchen"); err != nil {
		t.Fatalf("failed to delete fridge: %v", err)
	}
	db.AssertRowCount(t, "fridge_items", 0)
	db.AssertRowCount(t, "fridges", 0)

	if err := repo.DeleteFridge(ctx, nil, "kitchen"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
