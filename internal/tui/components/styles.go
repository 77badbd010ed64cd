// Package components provides reusable TUI components.
package components

import "github.com/charmbracelet/lipgloss"

// Styles is the subset of the application theme that views and components
// render with.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	RowAlt   lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

// DefaultStyles returns unstyled output, for tests and plain terminals.
func DefaultStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain.Bold(true),
		Label:    plain,
		Value:    plain,
		Error:    plain,
		Help:     plain,
		Header:   plain.Bold(true),
		Row:      plain,
		RowAlt:   plain,
		Selected: plain.Reverse(true),
		Border:   plain,
	}
}
