package color

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownLevel is returned for a contrast level other than AA, AAA or AA-large.
var ErrUnknownLevel = errors.New("unknown contrast level")

// Level is a WCAG conformance level for text contrast.
type Level string

const (
	LevelAA      Level = "AA"
	LevelAAA     Level = "AAA"
	LevelAALarge Level = "AA-large"
)

// ParseLevel accepts "AA", "AAA" and "AA-large" in any case. An empty string
// means AA.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AA":
		return LevelAA, nil
	case "AAA":
		return LevelAAA, nil
	case "AA-LARGE", "AALARGE", "AA_LARGE":
		return LevelAALarge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// MinRatio is the minimum contrast ratio the level requires.
func (l Level) MinRatio() float64 {
	switch l {
	case LevelAAA:
		return 7
	case LevelAALarge:
		return 3
	default:
		return 4.5
	}
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return l == LevelAA || l == LevelAAA || l == LevelAALarge
}

// RelativeLuminance is the WCAG 2.x relative luminance of c.
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatioRGB is (lighter+0.05)/(darker+0.05), rounded to six decimals so
// that white on black is exactly 21 and a color on itself exactly 1.
func ContrastRatioRGB(a, b RGB) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	ratio := (lighter + 0.05) / (darker + 0.05)
	return math.Round(ratio*1e6) / 1e6
}

// ContrastRatio parses both colors and returns their contrast ratio.
func ContrastRatio(a, b string) (float64, error) {
	ca, err := ParseHex(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHex(b)
	if err != nil {
		return 0, err
	}
	return ContrastRatioRGB(ca, cb), nil
}

// Passes reports whether ratio satisfies level.
func Passes(ratio float64, level Level) bool {
	return ratio >= level.MinRatio()
}

// Rating names the best level a ratio satisfies: "AAA", "AA", "AA Large" or "Fail".
func Rating(ratio float64) string {
	switch {
	case ratio >= LevelAAA.MinRatio():
		return "AAA"
	case ratio >= LevelAA.MinRatio():
		return "AA"
	case ratio >= LevelAALarge.MinRatio():
		return "AA Large"
	default:
		return "Fail"
	}
}

// BestText returns whichever of the candidates contrasts most with bg.
func BestText(bg string, candidates ...string) (string, float64, error) {
	bgRGB, err := ParseHex(bg)
	if err != nil {
		return "", 0, err
	}
	if len(candidates) == 0 {
		return "", 0, errors.New("no text color candidates")
	}

	best, bestRatio := "", -1.0
	for _, c := range candidates {
		rgb, err := ParseHex(c)
		if err != nil {
			return "", 0, err
		}
		if r := ContrastRatioRGB(bgRGB, rgb); r > bestRatio {
			best, bestRatio = RGBToHex(rgb), r
		}
	}
	return best, bestRatio, nil
}
