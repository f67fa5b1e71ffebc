// Package theme provides color theming for the TUI.
package theme

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Background colors
	Background lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor
	Overlay    lipgloss.AdaptiveColor

	// Text colors
	Text          lipgloss.AdaptiveColor
	TextMuted     lipgloss.AdaptiveColor
	TextHighlight lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
}

// DefaultTheme is the built-in indigo scheme.
var DefaultTheme = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#3B3FB6", Dark: "#7C83FF"}, // Indigo
	Secondary: lipgloss.AdaptiveColor{Light: "#0F7B7B", Dark: "#2EC4B6"}, // Teal
	Accent:    lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFC857"}, // Saffron

	Background: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0E0F1A"},
	Surface:    lipgloss.AdaptiveColor{Light: "#F4F4FA", Dark: "#191B2B"},
	Overlay:    lipgloss.AdaptiveColor{Light: "#E6E6F2", Dark: "#26293D"},

	Text:          lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#E6E6F2"},
	TextMuted:     lipgloss.AdaptiveColor{Light: "#6B6B80", Dark: "#7A7A90"},
	TextHighlight: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},

	Success: semantic.Success,
	Warning: semantic.Warning,
	Error:   semantic.Error,
	Info:    semantic.Info,
}

// semantic holds the status colors every theme shares.
var semantic = Theme{
	Success: lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#3DDC84"},
	Warning: lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FFB020"},
	Error:   lipgloss.AdaptiveColor{Light: "#C0152F", Dark: "#FF4D6A"},
	Info:    lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"},
}

// Current is the active theme (can be changed at runtime).
var Current = DefaultTheme

// ErrEmptyPalette is returned by FromPalette without colors.
var ErrEmptyPalette = errors.New("palette has no colors")

// FromPalette derives a theme from palette colors. The first color is the
// primary; a missing secondary is its complement and a missing accent its
// first triadic partner. Backgrounds are the primary tinted toward white
// (light) or black (dark); text is whichever of black or white reads best
// on them.
func FromPalette(colors ...string) (Theme, error) {
	if len(colors) == 0 {
		return Theme{}, ErrEmptyPalette
	}
	primary, err := color.Normalize(colors[0])
	if err != nil {
		return Theme{}, err
	}

	secondary, err := paletteOr(colors, 1, primary, color.Complementary)
	if err != nil {
		return Theme{}, err
	}
	accent, err := paletteOr(colors, 2, primary, color.Triadic)
	if err != nil {
		return Theme{}, err
	}

	t := Theme{
		Success: semantic.Success,
		Warning: semantic.Warning,
		Error:   semantic.Error,
		Info:    semantic.Info,
	}

	if t.Primary, err = adaptive(primary, 0.15, 0.3); err != nil {
		return Theme{}, err
	}
	if t.Secondary, err = adaptive(secondary, 0.15, 0.3); err != nil {
		return Theme{}, err
	}
	if t.Accent, err = adaptive(accent, 0.15, 0.3); err != nil {
		return Theme{}, err
	}

	// Chrome: the primary pushed almost all the way to white or black.
	if t.Background, err = tints(primary, 0.97, 0.92); err != nil {
		return Theme{}, err
	}
	if t.Surface, err = tints(primary, 0.92, 0.85); err != nil {
		return Theme{}, err
	}
	if t.Overlay, err = tints(primary, 0.85, 0.77); err != nil {
		return Theme{}, err
	}

	if t.Text, err = readable(t.Background); err != nil {
		return Theme{}, err
	}
	t.TextMuted = lipgloss.AdaptiveColor{Light: mix(primary, "#000000", 0.45), Dark: mix(primary, "#FFFFFF", 0.45)}
	t.TextHighlight = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	return t, nil
}

// paletteOr returns colors[i] normalized, or the second color of harmony
// applied to base when the palette is shorter.
func paletteOr(colors []string, i int, base string, harmony color.Harmony) (string, error) {
	if i < len(colors) {
		return color.Normalize(colors[i])
	}
	h, err := color.Harmonize(base, harmony)
	if err != nil {
		return "", err
	}
	return h[1], nil
}

// adaptive darkens hex for light backgrounds and lightens it for dark ones.
func adaptive(hex string, darken, lighten float64) (lipgloss.AdaptiveColor, error) {
	light, err := color.Blend(hex, "#000000", darken)
	if err != nil {
		return lipgloss.AdaptiveColor{}, err
	}
	dark, err := color.Blend(hex, "#FFFFFF", lighten)
	if err != nil {
		return lipgloss.AdaptiveColor{}, err
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}, nil
}

// tints blends hex toward white by light and toward black by dark.
func tints(hex string, light, dark float64) (lipgloss.AdaptiveColor, error) {
	l, err := color.Blend(hex, "#FFFFFF", light)
	if err != nil {
		return lipgloss.AdaptiveColor{}, err
	}
	d, err := color.Blend(hex, "#000000", dark)
	if err != nil {
		return lipgloss.AdaptiveColor{}, err
	}
	return lipgloss.AdaptiveColor{Light: l, Dark: d}, nil
}

func readable(bg lipgloss.AdaptiveColor) (lipgloss.AdaptiveColor, error) {
	light, _, err := color.BestText(bg.Light, "#000000", "#FFFFFF")
	if err != nil {
		return lipgloss.AdaptiveColor{}, err
	}
	dark, _, err := color.BestText(bg.Dark, "#000000", "#FFFFFF")
	if err != nil {
		return lipgloss.AdaptiveColor{}, err
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}, nil
}

// mix is Blend for inputs already known to be valid.
func mix(from, to string, t float64) string {
	out, err := color.Blend(from, to, t)
	if err != nil {
		return from
	}
	return out
}
