// Package styles provides colour themes and styling for terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// Theme defines the colour palette for tree listings.
type Theme struct {
	// Primary is the main accent colour, used for roots.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour, used for headers.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for guides and less important text.
	Muted lipgloss.Color

	// Success marks added rows and agreeing comparisons.
	Success lipgloss.Color

	// Warning marks modified rows.
	Warning lipgloss.Color

	// Error marks failures and disagreeing comparisons.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Root style for forest roots.
	Root lipgloss.Style

	// Node style for non-root rows.
	Node lipgloss.Style

	// Guide style for tree connectors.
	Guide lipgloss.Style

	// Muted style for annotations.
	Muted lipgloss.Style

	// Success style for positive outcomes.
	Success lipgloss.Style

	// Warning style for cautions.
	Warning lipgloss.Style

	// Error style for problems.
	Error lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Root: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Node: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Guide: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		theme:   DefaultTheme(),
		Title:   plain,
		Root:    plain,
		Node:    plain,
		Guide:   plain,
		Muted:   plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
	}
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// State returns the style for a row state annotation.
func (s *Styles) State(state domain.RowState) lipgloss.Style {
	switch state {
	case domain.RowAdded:
		return s.Success
	case domain.RowModified:
		return s.Warning
	default:
		return s.Muted
	}
}
