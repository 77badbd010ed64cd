// Package tui provides the fridgely terminal user interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fridgely/fridgely/internal/config"
	"github.com/fridgely/fridgely/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Colors (raw values for reference)
	PrimaryColor    lipgloss.Color
	SecondaryColor  lipgloss.Color
	AccentColor     lipgloss.Color
	BackgroundColor lipgloss.Color
	MutedColor      lipgloss.Color

	// Color styles
	Base    lipgloss.Style
	Primary lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style

	// Component styles
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Selected  lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style

	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme based on the color scheme configuration.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return newAmberTheme()
	case config.ColorSchemePlain:
		return newPlainTheme()
	default:
		return newFreshTheme()
	}
}

// newFreshTheme creates the default mint and sky blue theme.
func newFreshTheme() *Theme {
	return buildTheme(palette{
		primary:    "#7FDBCA",
		secondary:  "#5FA8D3",
		accent:     "#C3F0CA",
		background: "#0B1D26",
		foreground: "#E0F2F1",
		muted:      "#4A6572",
		err:        "#FF6B6B",
		warning:    "#FFD166",
		success:    "#7FDBCA",
	})
}

// newAmberTheme creates a warm amber theme.
func newAmberTheme() *Theme {
	return buildTheme(palette{
		primary:    "#FFAA00",
		secondary:  "#AA7700",
		accent:     "#FFCC66",
		background: "#000000",
		foreground: "#FFAA00",
		muted:      "#664400",
		err:        "#FF4444",
		warning:    "#FFFF00",
		success:    "#FFAA00",
	})
}

// newPlainTheme creates a monochrome theme.
func newPlainTheme() *Theme {
	return buildTheme(palette{
		primary:    "#FFFFFF",
		secondary:  "#AAAAAA",
		accent:     "#FFFFFF",
		background: "#000000",
		foreground: "#FFFFFF",
		muted:      "#666666",
		err:        "#FF4444",
		warning:    "#FFAA00",
		success:    "#00FF00",
	})
}

type palette struct {
	primary, secondary, accent, background, foreground, muted lipgloss.Color
	err, warning, success                                     lipgloss.Color
}

func buildTheme(p palette) *Theme {
	t := &Theme{
		PrimaryColor:    p.primary,
		SecondaryColor:  p.secondary,
		AccentColor:     p.accent,
		BackgroundColor: p.background,
		MutedColor:      p.muted,
	}

	t.Base = lipgloss.NewStyle().Foreground(p.foreground)
	t.Primary = lipgloss.NewStyle().Foreground(p.primary)
	t.Accent = lipgloss.NewStyle().Foreground(p.accent)
	t.Error = lipgloss.NewStyle().Foreground(p.err)
	t.Warning = lipgloss.NewStyle().Foreground(p.warning)
	t.Success = lipgloss.NewStyle().Foreground(p.success)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)

	// Header - top bar with fridge info
	t.Header = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true).
		Padding(0, 1)

	// Footer - bottom status bar
	t.Footer = lipgloss.NewStyle().
		Foreground(p.secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.secondary).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(p.background).
		Background(p.primary).
		Bold(true)

	t.Alert = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(p.warning).
		Bold(true)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.TableRow = lipgloss.NewStyle().Foreground(p.primary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(p.secondary)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.muted).
		SetString(" │ ")

	return t
}

// Components returns the styles handed to views and components.
func (t *Theme) Components() components.Styles {
	return components.Styles{
		Title:    t.Title,
		Label:    t.Label,
		Value:    t.Value,
		Error:    t.Error,
		Help:     t.Label,
		Header:   t.TableHeader,
		Row:      t.TableRow,
		RowAlt:   t.TableRowAlt,
		Selected: t.Selected,
		Border:   t.Muted,
	}
}

const (
	boxHorizontal       = "─"
	boxDoubleHorizontal = "═"
)

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Muted.Render(strings.Repeat(boxHorizontal, max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat(boxDoubleHorizontal, max(width, 0)))
}
