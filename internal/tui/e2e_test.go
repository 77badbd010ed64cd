package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/fridgely/fridgely/internal/models"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnv(t, kitchenFridges())
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_FridgeOnStartup(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t).app,
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Both the title and the items appear in the same frame
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("FRIDGE: KITCHEN")) &&
			bytes.Contains(bts, []byte("cream cheese"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_NavigateToRecipes(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t).app,
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "FRIDGE: KITCHEN")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("RECIPES YOU CAN MAKE")) &&
			bytes.Contains(bts, []byte("Strawberry Bagel"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_MergedMatching(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t).app,
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "RECIPES YOU CAN MAKE")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	waitFor(t, tm, "Protein Shake")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t).app,
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "FRIDGE: KITCHEN")

	// F1 → Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "HELP")

	// Esc → Back to fridge, then on to recipes to prove it is responsive
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "RECIPES YOU CAN MAKE")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t).app,
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "FRIDGE: KITCHEN")

	// Press q → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press y → quit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t).app,
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "FRIDGE: KITCHEN")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// Verify app is still responsive by navigating to another module
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "RECIPES YOU CAN MAKE")
}

func TestE2E_AddItem(t *testing.T) {
	env := newE2EApp(t)
	tm := teatest.NewTestModel(t, env.app,
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "FRIDGE: KITCHEN")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	waitFor(t, tm, "Add item:")

	tm.Type("Banana")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "banana")

	deadline := time.Now().Add(5 * time.Second)
	for {
		items, err := env.store.Get(context.Background(), "kitchen")
		if err != nil {
			t.Fatalf("failed to read store: %v", err)
		}
		if items["banana"] == models.PresentQuantity {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("banana never stored, got %v", items)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
