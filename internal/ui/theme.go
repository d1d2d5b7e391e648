// Package ui renders operator-facing output: styled status lines, the
// inspector spinner and confirmation prompts, with plain fallbacks when
// no terminal is attached.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Colors holds the palette used by every component.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Info      string
	Warning   string
	Error     string
	Muted     string
}

// Theme configures styling.
type Theme struct {
	// NoColor disables colors and animations.
	NoColor bool
	Colors  Colors
}

// NewTheme returns the default theme. NO_COLOR in the environment turns
// colors off.
func NewTheme() *Theme {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   "#00DC82",
			Secondary: "#4B32C3",
			Success:   "#22C55E",
			Info:      "#38BDF8",
			Warning:   "#F59E0B",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
	}
}

// style returns a foreground style, or a plain one without colors.
func (t *Theme) style(color string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if t.NoColor {
		return s
	}
	return s.Foreground(lipgloss.Color(color))
}
