package color

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownHarmony is returned for an unrecognised harmony name.
var ErrUnknownHarmony = errors.New("unknown harmony")

// Harmony is a rule for deriving related colors from a base color.
type Harmony string

const (
	Complementary      Harmony = "complementary"
	Analogous          Harmony = "analogous"
	Triadic            Harmony = "triadic"
	SplitComplementary Harmony = "split-complementary"
	Tetradic           Harmony = "tetradic"
	Square             Harmony = "square"
	Monochromatic      Harmony = "monochromatic"
)

var harmonyOrder = []Harmony{
	Complementary, Analogous, Triadic, SplitComplementary, Tetradic, Square, Monochromatic,
}

// hue offsets in degrees, relative to the base color
var harmonyOffsets = map[Harmony][]float64{
	Complementary:      {180},
	Analogous:          {-30, 30},
	Triadic:            {120, 240},
	SplitComplementary: {150, 210},
	Tetradic:           {60, 180, 240},
	Square:             {90, 180, 270},
}

// lightness offsets in percentage points for Monochromatic
var monochromaticSteps = []float64{-30, -15, 15, 30}

// Harmonies lists every harmony in display order.
func Harmonies() []Harmony {
	return append([]Harmony(nil), harmonyOrder...)
}

// ParseHarmony matches a harmony by name, ignoring case, spaces and underscores.
func ParseHarmony(s string) (Harmony, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	for _, h := range harmonyOrder {
		if string(h) == key {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHarmony, s)
}

// Harmonize returns base followed by the colors kind derives from it.
func Harmonize(base string, kind Harmony) ([]string, error) {
	rgb, err := ParseHex(base)
	if err != nil {
		return nil, err
	}
	hsl := RGBToHSL(rgb)
	out := []string{RGBToHex(rgb)}

	if kind == Monochromatic {
		for _, step := range monochromaticSteps {
			l := clamp(hsl.L+step, 5, 95)
			out = append(out, HSLToHex(HSL{H: hsl.H, S: hsl.S, L: l}))
		}
		return out, nil
	}

	offsets, ok := harmonyOffsets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHarmony, kind)
	}
	for _, off := range offsets {
		out = append(out, HSLToHex(HSL{H: hsl.H + off, S: hsl.S, L: hsl.L}))
	}
	return out, nil
}

// RotateHue shifts the hue of hex by degrees.
func RotateHue(hex string, degrees float64) (string, error) {
	hsl, err := HexToHSL(hex)
	if err != nil {
		return "", err
	}
	hsl.H += degrees
	return HSLToHex(hsl), nil
}

// AllHarmonies computes every harmony for base.
func AllHarmonies(base string) (map[Harmony][]string, error) {
	out := make(map[Harmony][]string, len(harmonyOrder))
	for _, h := range harmonyOrder {
		colors, err := Harmonize(base, h)
		if err != nil {
			return nil, err
		}
		out[h] = colors
	}
	return out, nil
}

// RandomHarmony picks a harmony. A nil rng uses the global source.
func RandomHarmony(rng *rand.Rand) Harmony {
	return harmonyOrder[intN(rng, len(harmonyOrder))]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
