package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a scrolling table with a single selected row.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool
	footer      string

	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	rowAltStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column, styles Styles) *Table {
	return &Table{
		columns:       columns,
		rows:          [][]string{},
		visibleRows:   10,
		headerStyle:   styles.Header,
		rowStyle:      styles.Row,
		rowAltStyle:   styles.RowAlt,
		selectedStyle: styles.Selected,
		borderStyle:   styles.Border,
	}
}

// SetRows replaces the table data. The selection is kept in range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.clamp()
}

// SetColumnWidth changes the width of one column.
func (t *Table) SetColumnWidth(idx, width int) {
	if idx >= 0 && idx < len(t.columns) {
		t.columns[idx].Width = width
	}
}

// SetFooter sets a line rendered under the rows, such as a total.
func (t *Table) SetFooter(s string) {
	t.footer = s
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
	t.clamp()
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SelectedRow returns the currently selected row data.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// Select moves the selection to idx, clamped to the rows.
func (t *Table) Select(idx int) {
	t.selected = idx
	t.clamp()
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		if t.selected < t.offset {
			t.offset = t.selected
		}
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		if t.selected >= t.offset+t.visibleRows {
			t.offset = t.selected - t.visibleRows + 1
		}
	}
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	if len(t.rows) > 0 {
		t.selected = len(t.rows) - 1
		t.offset = max(t.selected-t.visibleRows+1, 0)
	}
}

func (t *Table) clamp() {
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.offset > t.selected {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.visibleRows {
		t.offset = t.selected - t.visibleRows + 1
	}
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	totalWidth := 0
	for _, col := range t.columns {
		totalWidth += col.Width + 3 // padding and separator
	}

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(t.borderStyle.Render(strings.Repeat("-", totalWidth)))
	b.WriteString("\n")

	end := min(t.offset+t.visibleRows, len(t.rows))
	for i := t.offset; i < end; i++ {
		style := t.rowStyle
		switch {
		case i == t.selected && t.focused:
			style = t.selectedStyle
		case (i-t.offset)%2 == 1:
			style = t.rowAltStyle
		}

		b.WriteString(t.renderRow(t.rows[i], style))
		b.WriteString("\n")
	}

	if len(t.rows) > t.visibleRows {
		b.WriteString(t.borderStyle.Render(fmt.Sprintf("Rows %d-%d of %d", t.offset+1, end, len(t.rows))))
		b.WriteString("\n")
	}
	if t.footer != "" {
		b.WriteString(t.borderStyle.Render(strings.Repeat("-", totalWidth)))
		b.WriteString("\n")
		b.WriteString(t.borderStyle.Render(t.footer))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, 0, len(t.columns))

	for i, col := range t.columns {
		if col.Width <= 0 {
			continue
		}

		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = fit(cell, col.Width)

		pad := col.Width - lipgloss.Width(cell)
		switch col.Align {
		case lipgloss.Right:
			cell = strings.Repeat(" ", pad) + cell
		case lipgloss.Center:
			left := pad / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
		default:
			cell += strings.Repeat(" ", pad)
		}

		parts = append(parts, style.Render(cell))
	}

	return " " + strings.Join(parts, " | ") + " "
}

// fit shortens s to width cells, marking the cut with an ellipsis.
func fit(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
