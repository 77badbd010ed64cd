package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fridgely/fridgely/internal/config"
	"github.com/fridgely/fridgely/internal/database"
	"github.com/fridgely/fridgely/internal/database/seed"
	"github.com/fridgely/fridgely/internal/inventory"
	"github.com/fridgely/fridgely/internal/matching"
	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/repository"
)

// testEnv bundles an App with the store behind it.
type testEnv struct {
	app   *App
	store *inventory.MemoryStore
}

// newTestEnv builds an App over a migrated in-memory catalog holding the
// starter recipes and a memory inventory store seeded with fridges.
// The App is not sized; see newTestApp.
func newTestEnv(t *testing.T, fridges map[string]models.Items) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	if _, err := seed.NewSeeder(db.DB).SeedStarter(ctx); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}

	store := inventory.NewMemoryStore()
	for id, items := range fridges {
		if err := store.Put(ctx, id, items); err != nil {
			t.Fatalf("seeding fridge %s: %v", id, err)
		}
	}

	cfg := config.Default()
	cfg.Kitchen.DefaultFridge = "kitchen"

	matcher := matching.NewService(repository.NewRecipeRepository(db.DB), store, cfg.Preferences.Resolved())

	return &testEnv{
		app:   New(cfg, store, matcher),
		store: store,
	}
}

// newTestApp returns a sized, ready App whose initial fridge load has been
// applied.
func newTestApp(t *testing.T, fridges map[string]models.Items) *testEnv {
	t.Helper()

	env := newTestEnv(t, fridges)

	// Simulate a window size message to make the app ready
	env.app.width = 120
	env.app.height = 40
	env.app.ready = true
	env.app.updateViewDimensions()

	runCmd(t, env.app, env.app.Init())

	return env
}

// runCmd executes cmd and feeds every resulting message back into app,
// following batches and follow-up commands.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("command chain did not settle")
		}

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			_, follow := app.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// press sends a key to app and runs the command it returns.
func press(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	runCmd(t, app, cmd)
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
