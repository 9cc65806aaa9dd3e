// Package ui provides the terminal presentation layer: theme colors,
// headless-mode detection, and progress indicators for long file runs.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors holds the hex colors used by interactive components.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// Theme bundles the styling applied to all terminal output.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// NewTheme returns the default theme.
func NewTheme(noColor bool) *Theme {
	return &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   "#DA7756",
			Secondary: "#C45A3C",
			Success:   "#10B981",
			Error:     "#EF4444",
			Muted:     "#9CA3AF",
		},
	}
}

// SuccessStyle returns the style for success lines.
func (t *Theme) SuccessStyle() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Success))
}

// ErrorStyle returns the style for failure lines.
func (t *Theme) ErrorStyle() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Error))
}

// MutedStyle returns the style for secondary detail lines.
func (t *Theme) MutedStyle() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Muted))
}
