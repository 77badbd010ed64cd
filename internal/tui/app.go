package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fridgely/fridgely/internal/config"
	"github.com/fridgely/fridgely/internal/ingest"
	"github.com/fridgely/fridgely/internal/inventory"
	"github.com/fridgely/fridgely/internal/matching"
	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/tui/components"
	fridgeview "github.com/fridgely/fridgely/internal/tui/views/fridge"
	recipeview "github.com/fridgely/fridgely/internal/tui/views/recipes"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the number of lines used by header, alert bar and footer.
const chromeLines = 6

// Module represents a view module in the application.
type Module string

const (
	ModuleFridge  Module = "fridge"
	ModuleRecipes Module = "recipes"
	ModuleHelp    Module = "help"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	config  *config.Config
	store   inventory.Store
	adapter *ingest.Adapter
	matcher *matching.Service

	// Views
	fridgeView *fridgeview.View
	recipeView *recipeview.View
	prompt     *components.Prompt

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current view
	currentModule  Module
	previousModule Module
	merged         bool // Match against all fridges instead of the selected one

	alerts []Alert
}

// Alert represents a status message shown below the header.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
)

// FridgeChangedMsg tells the app that the inventory changed outside the
// TUI and should be reloaded.
type FridgeChangedMsg struct{}

type fridgeLoadedMsg struct {
	ids []string
	inv *models.Inventory
	err error
}

type recipesLoadedMsg struct {
	results []models.FeasibilityResult
	scope   string
	err     error
}

type itemEditedMsg struct {
	inv  *models.Inventory
	item string
	err  error
}

// New creates a new App instance.
func New(cfg *config.Config, store inventory.Store, matcher *matching.Service) *App {
	theme := NewTheme(cfg.Display.ColorScheme)
	styles := theme.Components()

	adapter := ingest.NewAdapter(store, cfg.Kitchen.DefaultFridge)

	recipes := recipeview.New(styles)
	recipes.SetPreferences(matcher.Defaults())

	return &App{
		config:        cfg,
		store:         store,
		adapter:       adapter,
		matcher:       matcher,
		fridgeView:    fridgeview.New(adapter.DefaultFridge(), styles),
		recipeView:    recipes,
		theme:         theme,
		keys:          DefaultKeyMap(),
		currentModule: ModuleFridge,
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.loadFridge()
}

// loadFridge reads the fridge list and the selected fridge's items.
func (a *App) loadFridge() tea.Cmd {
	fridgeID := a.fridgeView.FridgeID()
	return func() tea.Msg {
		ctx := context.Background()

		ids, err := a.store.List(ctx)
		if err != nil {
			return fridgeLoadedMsg{err: err}
		}
		inv, err := inventory.Load(ctx, a.store, fridgeID)
		return fridgeLoadedMsg{ids: ids, inv: inv, err: err}
	}
}

// loadRecipes matches the catalog against the selected fridge, or against
// every known fridge in merged mode.
func (a *App) loadRecipes() tea.Cmd {
	a.recipeView.SetLoading()

	ids := []string{a.fridgeView.FridgeID()}
	scope := "fridge " + ids[0]
	if a.merged {
		ids = a.fridgeView.FridgeIDs()
		scope = "all fridges (" + strings.Join(ids, ", ") + ")"
	}

	return func() tea.Msg {
		results, err := a.matcher.MatchFridges(context.Background(), ids, models.PreferenceRequest{})
		return recipesLoadedMsg{results: results, scope: scope, err: err}
	}
}

// editItem runs a manual edit against the selected fridge.
func (a *App) editItem(item string, edit func(ctx context.Context, fridgeID string) (*models.Inventory, error)) tea.Cmd {
	fridgeID := a.fridgeView.FridgeID()
	return func() tea.Msg {
		inv, err := edit(context.Background(), fridgeID)
		return itemEditedMsg{inv: inv, item: item, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case FridgeChangedMsg:
		slog.Debug("reloading inventory after external change")
		cmds := []tea.Cmd{a.loadFridge()}
		if a.currentModule == ModuleRecipes {
			cmds = append(cmds, a.loadRecipes())
		}
		return a, tea.Batch(cmds...)

	case fridgeLoadedMsg:
		if msg.err != nil {
			a.fridgeView.SetError(msg.err)
			a.AddAlert(AlertWarning, "Failed to load fridge: "+msg.err.Error())
			return a, nil
		}
		a.fridgeView.SetFridges(msg.ids)
		a.fridgeView.SetInventory(msg.inv)
		return a, nil

	case recipesLoadedMsg:
		if msg.err != nil {
			a.recipeView.SetError(msg.err)
			a.AddAlert(AlertWarning, "Failed to match recipes: "+msg.err.Error())
			return a, nil
		}
		a.recipeView.SetResults(msg.results, msg.scope)
		return a, nil

	case itemEditedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to update "+msg.item+": "+msg.err.Error())
			return a, nil
		}
		a.fridgeView.SetInventory(msg.inv)
		a.fridgeView.SelectItem(msg.item)
		return a, a.loadFridge()
	}

	return a, nil
}

func (a *App) updateViewDimensions() {
	height := ContentHeight(a.height, chromeLines)
	a.fridgeView.SetHeight(height)
	a.recipeView.SetHeight(height)
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit confirmation is modal
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	// The prompt takes all input while open
	if a.prompt != nil {
		return a.handlePromptKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		return a.switchModule(a.keys.FunctionKeyModule(msg))
	}

	if a.keys.Help.Matches(msg) {
		return a.switchModule(ModuleHelp)
	}

	if a.keys.Back.Matches(msg) {
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleFridge:
		return a.handleFridgeKeys(msg)
	case ModuleRecipes:
		return a.handleRecipeKeys(msg)
	}

	return a, nil
}

// switchModule changes the visible module and loads its data.
func (a *App) switchModule(module Module) (tea.Model, tea.Cmd) {
	switch module {
	case ModuleHelp:
		if a.currentModule != ModuleHelp {
			a.previousModule = a.currentModule
		}
		a.currentModule = ModuleHelp
	case ModuleFridge:
		a.currentModule = ModuleFridge
		return a, a.loadFridge()
	case ModuleRecipes:
		a.currentModule = ModuleRecipes
		return a, a.loadRecipes()
	default:
		// F10
		a.showConfirm = true
	}
	return a, nil
}

// handleFridgeKeys handles key presses in the fridge module.
func (a *App) handleFridgeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := a.fridgeView.SelectedItem()

	switch {
	case a.keys.Up.Matches(msg):
		a.fridgeView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.fridgeView.MoveDown()
	case a.keys.NextFridge.Matches(msg):
		a.fridgeView.NextFridge()
		return a, a.loadFridge()
	case a.keys.Reload.Matches(msg):
		return a, a.loadFridge()
	case a.keys.AddItem.Matches(msg):
		a.prompt = components.NewPrompt("Add item", a.theme.Components())
	case a.keys.Increase.Matches(msg) && item != "":
		return a, a.editItem(item, func(ctx context.Context, fridgeID string) (*models.Inventory, error) {
			return a.adapter.Adjust(ctx, fridgeID, item, 1)
		})
	case a.keys.Decrease.Matches(msg) && item != "":
		return a, a.editItem(item, func(ctx context.Context, fridgeID string) (*models.Inventory, error) {
			return a.adapter.Adjust(ctx, fridgeID, item, -1)
		})
	case a.keys.Remove.Matches(msg) && item != "":
		return a, a.editItem(item, func(ctx context.Context, fridgeID string) (*models.Inventory, error) {
			return a.adapter.Remove(ctx, fridgeID, item)
		})
	}

	return a, nil
}

// handlePromptKeys feeds the add-item prompt. A submitted name is confirmed
// present without touching an existing quantity.
func (a *App) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.prompt.HandleKey(msg.String())

	if a.prompt.IsCancelled() {
		a.prompt = nil
		return a, nil
	}

	if a.prompt.IsSubmitted() {
		name := a.prompt.Value()
		a.prompt = nil
		return a, a.editItem(models.NormalizeName(name), func(ctx context.Context, fridgeID string) (*models.Inventory, error) {
			return a.adapter.ConfirmWithoutClobbering(ctx, fridgeID, []string{name})
		})
	}

	return a, nil
}

// handleRecipeKeys handles key presses in the recipes module.
func (a *App) handleRecipeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Up.Matches(msg):
		a.recipeView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.recipeView.MoveDown()
	case a.keys.ToggleMerged.Matches(msg):
		a.merged = !a.merged
		return a, a.loadRecipes()
	case a.keys.Reload.Matches(msg):
		return a, a.loadRecipes()
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("fridgely shutting down...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("FRIDGELY v%s", Version)

	info := fmt.Sprintf("%s | ITEMS: %d", a.fridgeView.FridgeID(), len(a.fridgeView.Items()))
	info = Truncate(info, max(a.width-lipgloss.Width(title)-4, 0))

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 4
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar shows the newest alert, or the active preferences.
func (a *App) renderAlertBar() string {
	var text string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertWarning:
			text = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			text = a.theme.Alert.Render("INFO: " + alert.Message)
		}
	} else {
		p := a.matcher.Defaults()
		text = a.theme.Muted.Render(fmt.Sprintf("Calories %g-%g, protein >= %gg", p.CalorieMin, p.CalorieMax, p.ProteinMin))
	}

	scope := "fridge"
	if a.merged {
		scope = "all fridges"
	}

	return a.theme.Value.Render(scope) + a.theme.StatusDivider.Render() + text
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	content := a.getModuleContent(height)

	contentWidth := min(a.width, MaxContentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(contentWidth).Render(content))
}

// getModuleContent returns the content for the current module.
func (a *App) getModuleContent(height int) string {
	width := min(a.width, MaxContentWidth)

	switch a.currentModule {
	case ModuleRecipes:
		return a.recipeView.Render(width, height)
	case ModuleHelp:
		return a.renderHelp(width)
	default:
		content := a.fridgeView.Render(width, height)
		if a.prompt != nil {
			content += "\n\n" + a.prompt.Render()
		}
		return content
	}
}

// renderHelp renders the help screen, with navigation and controls side by
// side on wide terminals.
func (a *App) renderHelp(width int) string {
	section := func(title string, items [][2]string) string {
		var b strings.Builder
		b.WriteString(a.theme.Subtitle.Render(title))
		b.WriteString("\n\n")
		for _, item := range items {
			b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-8s  %s", item[0], item[1])))
			b.WriteString("\n")
		}
		return b.String()
	}

	nav := section("NAVIGATION", [][2]string{
		{"F1 / ?", "Help"},
		{"F2", "Fridge"},
		{"F3", "Recipes"},
		{"F10 / q", "Quit"},
	})
	controls := section("CONTROLS", [][2]string{
		{"Up/Down", "Select"},
		{"Tab", "Next fridge"},
		{"+ / -", "Adjust quantity"},
		{"n", "Add item"},
		{"x", "Remove item"},
		{"a", "Match all fridges"},
		{"r", "Reload"},
		{"Esc", "Back"},
	})

	var b strings.Builder
	b.WriteString(a.theme.Title.Render("=== HELP ==="))
	b.WriteString("\n\n")

	if GetBreakpoint(width) == BreakpointNarrow {
		b.WriteString(nav)
		b.WriteString("\n")
		b.WriteString(controls)
	} else {
		b.WriteString(SideBySide(nav, controls, width, 4))
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	return separator + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp(a.width))
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI. When watchPath is set, changes to that file made by
// other processes reload the inventory.
func Run(ctx context.Context, app *App, watchPath string, debounce time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(app, tea.WithAltScreen())

	if watchPath != "" {
		w, err := inventory.NewWatcher(watchPath, debounce, func() {
			p.Send(FridgeChangedMsg{})
		})
		if err != nil {
			slog.Warn("inventory watcher disabled", "path", watchPath, "error", err)
		} else {
			go w.Run(ctx)
		}
	}

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
