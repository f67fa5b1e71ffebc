package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/themebuddy/internal/tui/theme"
)

// Styles contains all reusable Lipgloss styles for the preview.
type Styles struct {
	// Header styles
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// Section styles
	Section lipgloss.Style
	Box     lipgloss.Style

	// Text styles
	Normal lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style

	// Contrast badges
	Pass lipgloss.Style
	Fail lipgloss.Style

	// Base color tabs
	Tab         lipgloss.Style
	TabSelected lipgloss.Style

	// Footer styles
	Footer lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles returns the Lipgloss styles for t.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(1),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HeaderMeta: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Italic(true),

		Section: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			MarginTop(1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Overlay).
			Padding(0, 1),

		Normal: lipgloss.NewStyle().Foreground(t.Text),
		Muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		Bold:   lipgloss.NewStyle().Foreground(t.TextHighlight).Bold(true),

		Pass: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		Fail: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1),

		TabSelected: lipgloss.NewStyle().
			Foreground(t.TextHighlight).
			Background(t.Overlay).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			MarginTop(1).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}

// DefaultStyles returns the styles for the current theme.
func DefaultStyles() Styles {
	return NewStyles(theme.Current)
}
