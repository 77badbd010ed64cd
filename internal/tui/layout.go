package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LayoutBreakpoint is a terminal width threshold.
type LayoutBreakpoint int

const (
	// BreakpointNarrow is for terminals under 60 columns.
	BreakpointNarrow LayoutBreakpoint = 60
	// BreakpointMedium is for terminals between 60 and 100 columns.
	BreakpointMedium LayoutBreakpoint = 100
	// BreakpointWide is for terminals of 100 columns or more.
	BreakpointWide LayoutBreakpoint = 140
)

// GetBreakpoint returns the layout breakpoint for the given width.
func GetBreakpoint(width int) LayoutBreakpoint {
	switch {
	case width < int(BreakpointNarrow):
		return BreakpointNarrow
	case width < int(BreakpointMedium):
		return BreakpointMedium
	default:
		return BreakpointWide
	}
}

// SideBySide renders two blocks in two columns, stacking them when they do
// not fit.
func SideBySide(left, right string, totalWidth, gap int) string {
	leftWidth := lipgloss.Width(left)
	if leftWidth+lipgloss.Width(right)+gap > totalWidth {
		return left + "\n\n" + right
	}

	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	rows := max(len(leftLines), len(rightLines))

	var b strings.Builder
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}

		b.WriteString(PadRight(l, leftWidth+gap))
		b.WriteString(r)
		if i < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Truncate shortens a string to fit within maxWidth, adding an ellipsis if
// needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxWidth-1]) + "…"
}

// PadRight pads a string to the given width with spaces.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ContentWidth returns the usable content width, capped between min and max.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := max(termWidth, minWidth)
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return w
}

// ContentHeight returns the usable content height after subtracting chrome.
// chromeLines is the total lines used by header, footer, alert bar and
// separators.
func ContentHeight(termHeight, chromeLines int) int {
	return max(termHeight-chromeLines, 5)
}
