// Package fridge provides the TUI view of one fridge's inventory.
package fridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/tui/components"
)

// View lists the items of the selected fridge.
type View struct {
	styles    components.Styles
	table     *components.Table
	fridgeIDs []string
	current   string
	names     []string
	items     models.Items
	loading   bool
	err       error
}

// New creates a fridge view that starts on fridgeID.
func New(fridgeID string, styles components.Styles) *View {
	columns := []components.Column{
		{Title: "Item", Width: 30},
		{Title: "Quantity", Width: 10, Align: lipgloss.Right},
		{Title: "Status", Width: 8},
	}

	table := components.NewTable(columns, styles)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &View{
		styles:    styles,
		table:     table,
		fridgeIDs: []string{fridgeID},
		current:   fridgeID,
		items:     models.Items{},
		loading:   true,
	}
}

// FridgeID returns the selected fridge.
func (v *View) FridgeID() string {
	return v.current
}

// FridgeIDs returns the known fridges, always including the selected one.
func (v *View) FridgeIDs() []string {
	return v.fridgeIDs
}

// SetFridges updates the list of known fridges. The selected fridge stays
// listed even when the store does not know it yet.
func (v *View) SetFridges(ids []string) {
	found := false
	out := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == v.current {
			found = true
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, v.current)
	}
	v.fridgeIDs = out
}

// NextFridge selects the next fridge in the list, wrapping around, and
// returns it.
func (v *View) NextFridge() string {
	for i, id := range v.fridgeIDs {
		if id == v.current {
			v.current = v.fridgeIDs[(i+1)%len(v.fridgeIDs)]
			break
		}
	}
	v.loading = true
	return v.current
}

// SetInventory shows inv if it belongs to the selected fridge.
func (v *View) SetInventory(inv *models.Inventory) {
	if inv == nil || inv.FridgeID != v.current {
		return
	}

	v.loading = false
	v.err = nil
	v.items = inv.Items.Clone()
	v.names = v.items.Names()

	rows := make([][]string, len(v.names))
	for i, name := range v.names {
		qty := v.items[name]
		status := "ok"
		if qty <= 0 {
			status = "empty"
		}
		rows[i] = []string{name, FormatQuantity(qty), status}
	}
	v.table.SetRows(rows)
	v.table.SetFooter(fmt.Sprintf("%d items", len(rows)))
}

// SetError records a load or edit failure.
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

// SelectedItem returns the name of the selected item, or "" when the fridge
// is empty.
func (v *View) SelectedItem() string {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.names) {
		return v.names[idx]
	}
	return ""
}

// SelectItem moves the selection to name if it is listed.
func (v *View) SelectItem(name string) {
	for i, n := range v.names {
		if n == name {
			v.table.Select(i)
			return
		}
	}
}

// Items returns the displayed items.
func (v *View) Items() models.Items {
	return v.items
}

// Render renders the fridge view.
func (v *View) Render(width, height int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== FRIDGE: " + strings.ToUpper(v.current) + " ==="))
	b.WriteString("\n\n")

	if len(v.fridgeIDs) > 1 {
		b.WriteString(v.styles.Label.Render("Fridges: "))
		for i, id := range v.fridgeIDs {
			if i > 0 {
				b.WriteString(v.styles.Label.Render(" | "))
			}
			if id == v.current {
				b.WriteString(v.styles.Selected.Render(id))
			} else {
				b.WriteString(v.styles.Value.Render(id))
			}
		}
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Label.Render("Loading..."))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(v.styles.Label.Render("This fridge is empty. Press n to add an item."))
		b.WriteString("\n")
	default:
		itemWidth := min(max(width-40, 12), 40)
		v.table.SetColumnWidth(0, itemWidth)
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(helpText(width)))

	return b.String()
}

func helpText(width int) string {
	if width < 60 {
		return "Tab:Fridge +/-:Qty n:Add x:Del"
	}
	return "Up/Down:Select  Tab:Next fridge  +/-:Adjust  n:Add item  x:Remove  r:Reload"
}

// FormatQuantity renders a quantity without trailing zeros.
func FormatQuantity(q models.Quantity) string {
	return strconv.FormatFloat(q.Float64(), 'f', -1, 64)
}
