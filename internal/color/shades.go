package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidShadeCount is returned when fewer than one shade is requested.
	ErrInvalidShadeCount = errors.New("number of shades must be at least 1")

	// ErrUnknownMode is returned for a mode other than light or dark.
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode is a variable-collection mode such as light or dark.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists the modes shade ramps are generated for.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark}
}

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Bounds are the HSL lightness percentages of the first and last shade.
type Bounds struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// ShadeSettings configures GenerateShades.
type ShadeSettings struct {
	NumberOfShades int    `json:"number_of_shades" yaml:"number_of_shades"`
	Light          Bounds `json:"light" yaml:"light"`
	Dark           Bounds `json:"dark" yaml:"dark"`
	TextLight      string `json:"text_light" yaml:"text_light"`
	TextDark       string `json:"text_dark" yaml:"text_dark"`
}

// DefaultShadeSettings returns a ten-step ramp with white/black text.
func DefaultShadeSettings() ShadeSettings {
	return ShadeSettings{
		NumberOfShades: 10,
		Light:          Bounds{Start: 95, End: 10},
		Dark:           Bounds{Start: 10, End: 90},
		TextLight:      "#FFFFFF",
		TextDark:       "#000000",
	}
}

// Bounds returns the lightness bounds configured for mode.
func (s ShadeSettings) Bounds(mode Mode) (Bounds, error) {
	switch mode {
	case ModeLight:
		return s.Light, nil
	case ModeDark:
		return s.Dark, nil
	default:
		return Bounds{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Shade is one step of a generated ramp.
type Shade struct {
	Step          int     `json:"step"`
	Name          string  `json:"name"`
	Hex           string  `json:"hex"`
	TextColor     string  `json:"text_color"`
	ContrastRatio float64 `json:"contrast_ratio"`
	Rating        string  `json:"rating"`
	MeetsLevel    bool    `json:"meets_level"`
}

// GenerateShades interpolates settings.NumberOfShades lightness steps of base
// between the bounds configured for mode, keeping its hue and saturation.
//
// Each shade gets a text color: the preferred candidate for the mode (dark
// text in light mode, light text in dark mode) if it meets level, else the
// other candidate if that one does, else whichever contrasts more.
//
// A single shade sits at the midpoint of the mode bounds.
func GenerateShades(base string, settings ShadeSettings, mode Mode, level Level) ([]Shade, error) {
	rgb, err := ParseHex(base)
	if err != nil {
		return nil, err
	}

	n := settings.NumberOfShades
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShadeCount, n)
	}

	bounds, err := settings.Bounds(mode)
	if err != nil {
		return nil, err
	}

	if level == "" {
		level = LevelAA
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	preferred, fallback, err := textCandidates(settings, mode)
	if err != nil {
		return nil, err
	}

	hsl := RGBToHSL(rgb)
	minRatio := level.MinRatio()
	names := StepNames(n)

	shades := make([]Shade, 0, n)
	for i := 0; i < n; i++ {
		shadeRGB := HSLToRGB(HSL{H: hsl.H, S: hsl.S, L: lightnessAt(bounds, i, n)})
		text, ratio := pickText(shadeRGB, preferred, fallback, minRatio)

		shades = append(shades, Shade{
			Step:          i,
			Name:          names[i],
			Hex:           RGBToHex(shadeRGB),
			TextColor:     RGBToHex(text),
			ContrastRatio: ratio,
			Rating:        Rating(ratio),
			MeetsLevel:    ratio >= minRatio,
		})
	}

	return shades, nil
}

func lightnessAt(b Bounds, i, n int) float64 {
	if n == 1 {
		return (b.Start + b.End) / 2
	}
	return b.Start + (b.End-b.Start)*float64(i)/float64(n-1)
}

func textCandidates(s ShadeSettings, mode Mode) (preferred, fallback RGB, err error) {
	lightHex, darkHex := s.TextLight, s.TextDark
	if lightHex == "" {
		lightHex = "#FFFFFF"
	}
	if darkHex == "" {
		darkHex = "#000000"
	}

	light, err := ParseHex(lightHex)
	if err != nil {
		return RGB{}, RGB{}, fmt.Errorf("text light: %w", err)
	}
	dark, err := ParseHex(darkHex)
	if err != nil {
		return RGB{}, RGB{}, fmt.Errorf("text dark: %w", err)
	}

	if mode == ModeDark {
		return light, dark, nil
	}
	return dark, light, nil
}

func pickText(bg, preferred, fallback RGB, minRatio float64) (RGB, float64) {
	pr := ContrastRatioRGB(bg, preferred)
	if pr >= minRatio {
		return preferred, pr
	}
	fr := ContrastRatioRGB(bg, fallback)
	if fr >= minRatio || fr > pr {
		return fallback, fr
	}
	return preferred, pr
}

// StepNames returns the step labels for an n-shade ramp: 50, 100 … 900 for
// ten shades, otherwise 100, 200 … n*100.
func StepNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		switch {
		case n == 10 && i == 0:
			names[i] = "50"
		case n == 10:
			names[i] = strconv.Itoa(i * 100)
		default:
			names[i] = strconv.Itoa((i + 1) * 100)
		}
	}
	return names
}
