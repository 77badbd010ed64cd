package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func newTestTable(rows ...string) *Table {
	table := NewTable([]Column{{Title: "Item", Width: 12}}, DefaultStyles())
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r}
	}
	table.SetRows(data)
	return table
}

func TestNewTable(t *testing.T) {
	table := newTestTable()

	if !table.Empty() {
		t.Error("expected new table to be empty")
	}
	if table.RowCount() != 0 {
		t.Errorf("expected 0 rows, got %d", table.RowCount())
	}
	if table.SelectedRow() != nil {
		t.Errorf("expected no selected row, got %v", table.SelectedRow())
	}
}

func TestTable_Navigation(t *testing.T) {
	table := newTestTable("a", "b", "c", "d", "e")

	if table.Selected() != 0 {
		t.Errorf("expected selected=0, got %d", table.Selected())
	}

	table.MoveDown()
	table.MoveDown()
	if table.Selected() != 2 {
		t.Errorf("expected selected=2, got %d", table.Selected())
	}

	table.MoveUp()
	if got := table.SelectedRow(); len(got) != 1 || got[0] != "b" {
		t.Errorf("expected row b, got %v", got)
	}

	table.GoToBottom()
	table.MoveDown()
	if table.Selected() != 4 {
		t.Errorf("expected selected=4, got %d", table.Selected())
	}

	table.GoToTop()
	table.MoveUp()
	if table.Selected() != 0 {
		t.Errorf("expected selected=0, got %d", table.Selected())
	}
}

func TestTable_SetRowsClampsSelection(t *testing.T) {
	table := newTestTable("a", "b", "c")
	table.GoToBottom()

	table.SetRows([][]string{{"a"}})
	if table.Selected() != 0 {
		t.Errorf("expected selection clamped to 0, got %d", table.Selected())
	}

	table.SetRows(nil)
	if table.Selected() != 0 || table.SelectedRow() != nil {
		t.Errorf("expected empty selection, got %d %v", table.Selected(), table.SelectedRow())
	}
}

func TestTable_Scrolling(t *testing.T) {
	table := newTestTable("a", "b", "c", "d", "e")
	table.SetVisibleRows(2)
	table.Focus(true)

	table.MoveDown()
	table.MoveDown()
	output := table.Render()

	if strings.Contains(output, " a ") {
		t.Error("expected first row to be scrolled out of view")
	}
	if !strings.Contains(output, "Rows 2-3 of 5") {
		t.Errorf("expected scroll indicator, got:\n%s", output)
	}
}

func TestTable_Render(t *testing.T) {
	table := NewTable([]Column{
		{Title: "Item", Width: 8},
		{Title: "Qty", Width: 6, Align: lipgloss.Right},
		{Title: "Hidden", Width: 0},
	}, DefaultStyles())
	table.SetRows([][]string{
		{"cream cheese", "1", "x"},
		{"milk", "500", "y"},
	})
	table.SetFooter("2 items")

	output := table.Render()

	for _, want := range []string{"Item", "Qty", "cream c…", "   500", "2 items"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Hidden") {
		t.Error("zero-width column should not render")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"milk", 10, "milk"},
		{"milk", 4, "milk"},
		{"mozzarella", 5, "mozz…"},
		{"crème fraîche", 6, "crème…"},
		{"eggs", 1, "e"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := fit(tt.input, tt.width); got != tt.want {
				t.Errorf("fit(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}
