// Package color implements the color math behind Theme Buddy: conversions
// between hex, RGB, HSL and CIE Lab/LCH, WCAG contrast, shade ramps, naming,
// harmonies and mood palettes.
//
// Every function in this package is pure. The only state lives in a Namer,
// which remembers the names it has handed out.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a 6-digit hex color.
var ErrInvalidHex = errors.New("invalid hex color")

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL holds hue in degrees [0,360) and saturation/lightness in percent [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Lab is a CIE L*a*b* color relative to the D65 white point. L is in [0,100].
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// LCH is the cylindrical form of Lab. H is in degrees [0,360).
type LCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// HexToRGB parses "#RRGGBB" or "RRGGBB" (any case).
// It reports false for anything else, including 3-digit shorthand.
func HexToRGB(hex string) (RGB, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// ParseHex is HexToRGB with an error wrapping ErrInvalidHex.
func ParseHex(hex string) (RGB, error) {
	rgb, ok := HexToRGB(hex)
	if !ok {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return rgb, nil
}

// Normalize returns hex in canonical "#RRGGBB" upper-case form.
func Normalize(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return RGBToHex(rgb), nil
}

// IsHex reports whether s is a valid 6-digit hex color.
func IsHex(s string) bool {
	_, ok := HexToRGB(s)
	return ok
}

// RGBToHex formats c as "#RRGGBB".
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Hex is shorthand for RGBToHex(c).
func (c RGB) Hex() string {
	return RGBToHex(c)
}

// RGBToHSL converts an sRGB triple to HSL.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return HSL{H: normalizeHue(h), S: s * 100, L: l * 100}
}

// HSLToRGB converts HSL back to an sRGB triple, rounding each channel.
func HSLToRGB(c HSL) RGB {
	h := normalizeHue(c.H) / 360
	s := clamp(c.S, 0, 100) / 100
	l := clamp(c.L, 0, 100) / 100

	if s == 0 {
		v := to8(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: to8(hueToChannel(p, q, h+1.0/3)),
		G: to8(hueToChannel(p, q, h)),
		B: to8(hueToChannel(p, q, h-1.0/3)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// HexToHSL parses hex and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// HSLToHex converts HSL to "#RRGGBB".
func HSLToHex(c HSL) string {
	return RGBToHex(HSLToRGB(c))
}

// RGBToLab converts sRGB to CIE Lab (D65). go-colorful implements the
// sRGB -> XYZ -> Lab pipeline with the 0.008856 threshold; its L/a/b are
// scaled by 1/100, so they are rescaled here.
func RGBToLab(c RGB) Lab {
	l, a, b := toColorful(c).Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// LabToRGB converts Lab back to sRGB, clamping out-of-gamut values.
func LabToRGB(c Lab) RGB {
	return fromColorful(colorful.Lab(c.L/100, c.A/100, c.B/100))
}

// LabToLCH converts Lab to its cylindrical form.
func LabToLCH(c Lab) LCH {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	return LCH{L: c.L, C: math.Hypot(c.A, c.B), H: normalizeHue(h)}
}

// LCHToLab converts LCH back to Lab.
func LCHToLab(c LCH) Lab {
	rad := c.H * math.Pi / 180
	return Lab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// HexToLab parses hex and converts it to Lab.
func HexToLab(hex string) (Lab, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return Lab{}, err
	}
	return RGBToLab(rgb), nil
}

// HexToLCH parses hex and converts it to LCH.
func HexToLCH(hex string) (LCH, error) {
	lab, err := HexToLab(hex)
	if err != nil {
		return LCH{}, err
	}
	return LabToLCH(lab), nil
}

// LCHToHex converts LCH to "#RRGGBB", clamping to the sRGB gamut.
func LCHToHex(c LCH) string {
	return RGBToHex(LabToRGB(LCHToLab(c)))
}

// DeltaE is the CIE76 distance between two Lab colors.
func DeltaE(a, b Lab) float64 {
	return math.Sqrt((a.L-b.L)*(a.L-b.L) + (a.A-b.A)*(a.A-b.A) + (a.B-b.B)*(a.B-b.B))
}

// Blend interpolates between two hex colors in Lab space. t is clamped to [0,1].
func Blend(from, to string, t float64) (string, error) {
	a, err := ParseHex(from)
	if err != nil {
		return "", err
	}
	b, err := ParseHex(to)
	if err != nil {
		return "", err
	}
	mixed := toColorful(a).BlendLab(toColorful(b), clamp(t, 0, 1))
	return RGBToHex(fromColorful(mixed)), nil
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
