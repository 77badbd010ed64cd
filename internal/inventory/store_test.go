package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/testutil"
)

// storeFactories builds a fresh store of each backend for shared behavior
// tests.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file": func() Store {
			return NewFileStore(filepath.Join(t.TempDir(), "fridges.json"))
		},
		"sqlite": func() Store {
			db := testutil.NewTestDB(t)
			t.Cleanup(func() { db.Close(t) })
			db.RunMigrations(t, filepath.Join("..", "database", "migrations"))
			return NewSQLStore(db.DB)
		},
	}
}

func TestStore_Backends(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()

			t.Run("Unknown fridge is empty", func(t *testing.T) {
				items, err := store.Get(ctx, "nowhere")
				if err != nil {
					t.Fatalf("failed to get fridge: %v", err)
				}
				if items == nil || len(items) != 0 {
					t.Errorf("expected empty non-nil items, got %v", items)
				}
			})

			t.Run("Put then Get", func(t *testing.T) {
				want := models.Items{"milk": 500, "eggs": 6, "salt": 0}
				if err := store.Put(ctx, "kitchen", want); err != nil {
					t.Fatalf("failed to put fridge: %v", err)
				}

				got, err := store.Get(ctx, "kitchen")
				if err != nil {
					t.Fatalf("failed to get fridge: %v", err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("got %v, want %v", got, want)
				}
			})

			t.Run("Put replaces whole fridge", func(t *testing.T) {
				if err := store.Put(ctx, "kitchen", models.Items{"butter": 1}); err != nil {
					t.Fatalf("failed to put fridge: %v", err)
				}

				got, err := store.Get(ctx, "kitchen")
				if err != nil {
					t.Fatalf("failed to get fridge: %v", err)
				}
				if !reflect.DeepEqual(got, models.Items{"butter": 1}) {
					t.Errorf("got %v, want only butter", got)
				}
			})

			t.Run("Returned items are a copy", func(t *testing.T) {
				got, err := store.Get(ctx, "kitchen")
				if err != nil {
					t.Fatalf("failed to get fridge: %v", err)
				}
				got["butter"] = 99

				again, err := store.Get(ctx, "kitchen")
				if err != nil {
					t.Fatalf("failed to get fridge: %v", err)
				}
				if again["butter"] != 1 {
					t.Errorf("store was modified through returned map: %v", again)
				}
			})

			t.Run("List is sorted", func(t *testing.T) {
				if err := store.Put(ctx, "garage", models.Items{}); err != nil {
					t.Fatalf("failed to put fridge: %v", err)
				}

				ids, err := store.List(ctx)
				if err != nil {
					t.Fatalf("failed to list fridges: %v", err)
				}
				if !reflect.DeepEqual(ids, []string{"garage", "kitchen"}) {
					t.Errorf("got %v, want [garage kitchen]", ids)
				}
			})

			t.Run("Empty fridge id is rejected", func(t *testing.T) {
				if err := store.Put(ctx, "", models.Items{"milk": 1}); !errors.Is(err, ErrEmptyFridgeID) {
					t.Errorf("expected ErrEmptyFridgeID, got %v", err)
				}
			})
		})
	}
}

func TestFileStore_Document(t *testing.T) {
	ctx := context.Background()

	t.Run("Malformed quantities read as zero", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fridges.json")
		doc := `{"default": {"milk": "500", "eggs": "lots", "jam": -3, "cheese": true, "ham": null}}`
		if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		got, err := NewFileStore(path).Get(ctx, "default")
		if err != nil {
			t.Fatalf("failed to get fridge: %v", err)
		}
		want := models.Items{"milk": 500, "eggs": 0, "jam": 0, "cheese": 0, "ham": 0}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Malformed document is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fridges.json")
		if err := os.WriteFile(path, []byte("[1, 2"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := NewFileStore(path).Get(ctx, "default"); err == nil {
			t.Error("expected error for malformed document")
		}
	})

	t.Run("Empty file is an empty store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fridges.json")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		ids, err := NewFileStore(path).List(ctx)
		if err != nil {
			t.Fatalf("failed to list fridges: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no fridges, got %v", ids)
		}
	})

	t.Run("Put creates directories and leaves no temp files", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		store := NewFileStore(filepath.Join(dir, "fridges.json"))

		if err := store.Put(ctx, "default", models.Items{"milk": 1}); err != nil {
			t.Fatalf("failed to put fridge: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "fridges.json" {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("expected only fridges.json, got %v", names)
		}
	})

	t.Run("Other fridges survive a Put", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "fridges.json"))
		if err := store.Put(ctx, "a", models.Items{"milk": 1}); err != nil {
			t.Fatalf("failed to put fridge: %v", err)
		}
		if err := store.Put(ctx, "b", models.Items{"eggs": 2}); err != nil {
			t.Fatalf("failed to put fridge: %v", err)
		}

		got, err := store.Get(ctx, "a")
		if err != nil {
			t.Fatalf("failed to get fridge: %v", err)
		}
		if !reflect.DeepEqual(got, models.Items{"milk": 1}) {
			t.Errorf("fridge a = %v", got)
		}
	})
}

func TestMergeFridges(t *testing.T) {
	got := MergeFridges(
		models.Items{"milk": 1200, "Eggs": 2},
		nil,
		models.Items{"milk": 800, "eggs": 4, " ": 5},
	)

	want := models.Items{"milk": 2000, "eggs": 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(ctx, "kitchen", models.Items{"milk": 1200}); err != nil {
		t.Fatalf("failed to put fridge: %v", err)
	}
	if err := store.Put(ctx, "garage", models.Items{"milk": 800}); err != nil {
		t.Fatalf("failed to put fridge: %v", err)
	}

	inv, err := Load(ctx, store, "kitchen")
	if err != nil {
		t.Fatalf("failed to load fridge: %v", err)
	}
	if inv.FridgeID != "kitchen" || inv.Items["milk"] != 1200 {
		t.Errorf("unexpected inventory %+v", inv)
	}

	merged, err := LoadMerged(ctx, store, []string{"kitchen", "garage", "unknown"})
	if err != nil {
		t.Fatalf("failed to load merged: %v", err)
	}
	if merged["milk"] != 2000 {
		t.Errorf("merged milk = %v, want 2000", merged["milk"])
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fridges.json")

	changed := make(chan struct{}, 4)
	w, err := NewWatcher(path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	store := NewFileStore(path)
	if err := store.Put(context.Background(), "default", models.Items{"milk": 1}); err != nil {
		t.Fatalf("failed to put fridge: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestSQLStore_ForeignRows(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Close(t)
	db.RunMigrations(t, filepath.Join("..", "database", "migrations"))

	// Rows written by another tool with a negative and a non-numeric quantity.
	db.ExecSQL(t, `INSERT INTO fridges (id, created_at) VALUES ('garage', '2026-01-01T00:00:00Z')`)
	db.ExecSQL(t, `INSERT INTO fridge_items (fridge_id, name, quantity, updated_at)
		VALUES ('garage', 'soda', 6, '2026-01-01T00:00:00Z'),
		       ('garage', 'ice', -2, '2026-01-01T00:00:00Z'),
		       ('garage', 'limes', 'lots', '2026-01-01T00:00:00Z'),
		       ('garage', 'beer', '12', '2026-01-01T00:00:00Z')`)

	store := NewSQLStore(db.DB)

	items, err := store.Get(ctx, "garage")
	if err != nil {
		t.Fatalf("failed to get fridge: %v", err)
	}
	want := models.Items{"soda": 6, "ice": 0, "limes": 0, "beer": 12}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("items = %v, want %v", items, want)
	}

	if err := store.Put(ctx, "garage", models.Items{"soda": 5}); err != nil {
		t.Fatalf("failed to put fridge: %v", err)
	}
	db.AssertRowCount(t, "fridge_items", 1)
}
