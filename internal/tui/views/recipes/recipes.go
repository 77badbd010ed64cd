// Package recipes provides the TUI view of the recipes the current
// inventory can make.
package recipes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/tui/components"
)

// View lists feasible recipes.
type View struct {
	styles  components.Styles
	table   *components.Table
	results []models.FeasibilityResult
	scope   string
	prefs   models.Preferences
	loading bool
	err     error
}

// New creates an empty recipe view.
func New(styles components.Styles) *View {
	columns := []components.Column{
		{Title: "Recipe", Width: 28},
		{Title: "Calories", Width: 8, Align: lipgloss.Right},
		{Title: "Protein", Width: 8, Align: lipgloss.Right},
		{Title: "Source", Width: 40},
	}

	table := components.NewTable(columns, styles)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &View{
		styles:  styles,
		table:   table,
		loading: true,
	}
}

// SetLoading marks the view as waiting for results.
func (v *View) SetLoading() {
	v.loading = true
}

// SetPreferences sets the preferences shown above the list.
func (v *View) SetPreferences(p models.Preferences) {
	v.prefs = p
}

// SetResults shows the recipes feasible for scope, a description of the
// inventory they were matched against.
func (v *View) SetResults(results []models.FeasibilityResult, scope string) {
	v.loading = false
	v.err = nil
	v.results = results
	v.scope = scope

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.Name,
			fmt.Sprintf("%.0f", r.Calories),
			fmt.Sprintf("%.0fg", r.ProteinG),
			r.SourceURL,
		}
	}
	v.table.SetRows(rows)
	v.table.SetFooter(fmt.Sprintf("%d recipes", len(rows)))
}

// SetError records a matching failure.
func (v *View) SetError(err error) {
	v.loading = false
	v.err = err
}

// SetHeight sizes the table to the space available.
func (v *View) SetHeight(height int) {
	v.table.SetVisibleRows(height - 10)
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

// Selected returns the selected recipe, or nil.
func (v *View) Selected() *models.FeasibilityResult {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.results) {
		return &v.results[idx]
	}
	return nil
}

// Render renders the recipe list.
func (v *View) Render(width, height int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== RECIPES YOU CAN MAKE ==="))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Label.Render("Matching: "))
	b.WriteString(v.styles.Value.Render(v.scope))
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Calories: "))
	b.WriteString(v.styles.Value.Render(fmt.Sprintf("%g-%g", v.prefs.CalorieMin, v.prefs.CalorieMax)))
	b.WriteString(v.styles.Label.Render("  Protein: "))
	b.WriteString(v.styles.Value.Render(fmt.Sprintf(">= %gg", v.prefs.ProteinMin)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Label.Render("Matching..."))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(v.styles.Label.Render("No matching recipes found."))
		b.WriteString("\n")
	default:
		// The source column shrinks first on narrow terminals.
		v.table.SetColumnWidth(3, max(width-60, 0))
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(helpText(width)))

	return b.String()
}

func helpText(width int) string {
	if width < 60 {
		return "a:All fridges r:Reload"
	}
	return "Up/Down:Select  a:Toggle all fridges  r:Reload"
}
