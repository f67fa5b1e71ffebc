// Package designsystem turns a handful of base colors into a full token set:
// per-mode shade ramps with text colors, gradients, a type scale and a spacing
// scale.
package designsystem

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

// ErrNoColors is returned when Options carries no base colors.
var ErrNoColors = errors.New("design system needs at least one base color")

// roleOrder puts the common roles first; any other role follows alphabetically.
var roleOrder = []string{"primary", "secondary", "accent", "neutral", "success", "warning", "error", "info"}

// DefaultRoles names colors given without a role, in order.
func DefaultRoles() []string {
	return append([]string(nil), roleOrder[:4]...)
}

// Typography configures the modular type scale.
type Typography struct {
	BodyFamily    string  `json:"body_family" yaml:"body_family"`
	HeadingFamily string  `json:"heading_family" yaml:"heading_family"`
	BaseSize      float64 `json:"base_size" yaml:"base_size"`
	Ratio         float64 `json:"ratio" yaml:"ratio"`
	Steps         int     `json:"steps" yaml:"steps"`
}

// Spacing configures the spacing scale.
type Spacing struct {
	Base  float64 `json:"base" yaml:"base"`
	Steps int     `json:"steps" yaml:"steps"`
}

// Options is the input to Generate.
type Options struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Colors      map[string]string   `json:"colors" yaml:"colors"`
	Shades      color.ShadeSettings `json:"shades" yaml:"shades"`
	Level       color.Level         `json:"level" yaml:"level"`
	Typography  Typography          `json:"typography" yaml:"typography"`
	Spacing     Spacing             `json:"spacing" yaml:"spacing"`
	Gradients   bool                `json:"gradients" yaml:"gradients"`
}

// DefaultOptions returns options for a "Theme Buddy" system with no colors.
func DefaultOptions() Options {
	return Options{
		Name:   "Theme Buddy",
		Colors: map[string]string{},
		Shades: color.DefaultShadeSettings(),
		Level:  color.LevelAA,
		Typography: Typography{
			BodyFamily:    "Inter",
			HeadingFamily: "Inter",
			BaseSize:      16,
			Ratio:         1.25,
			Steps:         8,
		},
		Spacing:   Spacing{Base: 4, Steps: 8},
		Gradients: true,
	}
}

// WithColors assigns hexes to DefaultRoles in order, then to "color-N".
func (o Options) WithColors(hexes ...string) Options {
	colors := make(map[string]string, len(o.Colors)+len(hexes))
	for k, v := range o.Colors {
		colors[k] = v
	}
	roles := DefaultRoles()
	for i, hex := range hexes {
		role := "color-" + strconv.Itoa(i+1)
		if i < len(roles) {
			role = roles[i]
		}
		colors[role] = hex
	}
	o.Colors = colors
	return o
}

// ColorRole is one base color and its generated ramps.
type ColorRole struct {
	Role   string                       `json:"role" yaml:"role"`
	Base   string                       `json:"base" yaml:"base"`
	Name   string                       `json:"name" yaml:"name"`
	Shades map[color.Mode][]color.Shade `json:"shades" yaml:"shades"`
}

// Gradient is a three-stop Lab-blended gradient per mode.
type Gradient struct {
	Name  string                  `json:"name" yaml:"name"`
	Stops map[color.Mode][]string `json:"stops" yaml:"stops"`
}

// CSS renders the gradient for mode as a linear-gradient value.
func (g Gradient) CSS(mode color.Mode) string {
	stops := g.Stops[mode]
	if len(stops) == 0 {
		return ""
	}
	s := "linear-gradient(90deg"
	for i, stop := range stops {
		pct := 0
		if len(stops) > 1 {
			pct = i * 100 / (len(stops) - 1)
		}
		s += fmt.Sprintf(", %s %d%%", stop, pct)
	}
	return s + ")"
}

// ScaleStep is one entry of the type or spacing scale, in pixels.
type ScaleStep struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// DesignSystem is the generated token set.
type DesignSystem struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Level       color.Level `json:"level" yaml:"level"`
	Colors      []ColorRole `json:"colors" yaml:"colors"`
	Gradients   []Gradient  `json:"gradients,omitempty" yaml:"gradients,omitempty"`
	Typography  Typography  `json:"typography" yaml:"typography"`
	TypeScale   []ScaleStep `json:"type_scale" yaml:"type_scale"`
	Spacing     []ScaleStep `json:"spacing" yaml:"spacing"`
}

// Generate builds a design system from opts. Zero-valued typography, spacing
// and shade settings fall back to DefaultOptions.
func Generate(opts Options) (*DesignSystem, error) {
	if len(opts.Colors) == 0 {
		return nil, ErrNoColors
	}
	opts = withDefaults(opts)

	level, err := color.ParseLevel(string(opts.Level))
	if err != nil {
		return nil, err
	}

	ds := &DesignSystem{
		Name:        opts.Name,
		Description: opts.Description,
		Level:       level,
		Typography:  opts.Typography,
		TypeScale:   typeScale(opts.Typography),
		Spacing:     spacingScale(opts.Spacing),
	}

	namer := color.NewNamer(nil)
	for _, role := range SortRoles(opts.Colors) {
		base, err := color.Normalize(opts.Colors[role])
		if err != nil {
			return nil, fmt.Errorf("color %s: %w", role, err)
		}
		name, err := namer.Name(base)
		if err != nil {
			return nil, err
		}

		cr := ColorRole{Role: role, Base: base, Name: name, Shades: make(map[color.Mode][]color.Shade)}
		for _, mode := range color.Modes() {
			shades, err := color.GenerateShades(base, opts.Shades, mode, level)
			if err != nil {
				return nil, fmt.Errorf("color %s: %w", role, err)
			}
			cr.Shades[mode] = shades
		}
		ds.Colors = append(ds.Colors, cr)
	}

	if opts.Gradients {
		ds.Gradients, err = gradients(ds.Colors)
		if err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Name == "" {
		opts.Name = def.Name
	}
	if opts.Shades.NumberOfShades == 0 && opts.Shades.Light == (color.Bounds{}) && opts.Shades.Dark == (color.Bounds{}) {
		opts.Shades = def.Shades
	}
	t := &opts.Typography
	if t.BodyFamily == "" {
		t.BodyFamily = def.Typography.BodyFamily
	}
	if t.HeadingFamily == "" {
		t.HeadingFamily = t.BodyFamily
	}
	if t.BaseSize <= 0 {
		t.BaseSize = def.Typography.BaseSize
	}
	if t.Ratio <= 1 {
		t.Ratio = def.Typography.Ratio
	}
	if t.Steps <= 0 {
		t.Steps = def.Typography.Steps
	}
	if opts.Spacing.Base <= 0 {
		opts.Spacing.Base = def.Spacing.Base
	}
	if opts.Spacing.Steps <= 0 {
		opts.Spacing.Steps = def.Spacing.Steps
	}
	return opts
}

// SortRoles orders the keys of colors: known roles first, then the rest
// alphabetically.
func SortRoles(colors map[string]string) []string {
	rank := func(role string) int {
		for i, r := range roleOrder {
			if r == role {
				return i
			}
		}
		return len(roleOrder)
	}
	roles := make([]string, 0, len(colors))
	for role := range colors {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		ri, rj := rank(roles[i]), rank(roles[j])
		if ri != rj {
			return ri < rj
		}
		return roles[i] < roles[j]
	})
	return roles
}

// usableEnds returns the lightest and darkest shades that meet the level,
// or the ramp ends when none do.
func usableEnds(shades []color.Shade) (light, dark string) {
	var usable []color.Shade
	for _, s := range shades {
		if s.MeetsLevel {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		usable = shades
	}

	lum := func(hex string) float64 {
		rgb, _ := color.HexToRGB(hex)
		return color.RelativeLuminance(rgb)
	}
	light, dark = usable[0].Hex, usable[0].Hex
	for _, s := range usable[1:] {
		if lum(s.Hex) > lum(light) {
			light = s.Hex
		}
		if lum(s.Hex) < lum(dark) {
			dark = s.Hex
		}
	}
	return light, dark
}

func threeStops(from, to string) ([]string, error) {
	mid, err := color.Blend(from, to, 0.5)
	if err != nil {
		return nil, err
	}
	return []string{from, mid, to}, nil
}

func gradients(roles []ColorRole) ([]Gradient, error) {
	var out []Gradient
	for _, cr := range roles {
		g := Gradient{Name: cr.Role, Stops: make(map[color.Mode][]string)}
		for _, mode := range color.Modes() {
			light, dark := usableEnds(cr.Shades[mode])
			from, to := light, dark
			if mode == color.ModeDark {
				from, to = dark, light
			}
			stops, err := threeStops(from, to)
			if err != nil {
				return nil, err
			}
			g.Stops[mode] = stops
		}
		out = append(out, g)
	}

	if len(roles) >= 2 {
		a, b := roles[0], roles[1]
		stops, err := threeStops(a.Base, b.Base)
		if err != nil {
			return nil, err
		}
		out = append(out, Gradient{
			Name:  a.Role + "-" + b.Role,
			Stops: map[color.Mode][]string{color.ModeLight: stops, color.ModeDark: stops},
		})
	}
	return out, nil
}

var typeScaleNames = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl"}

// typeScale is a modular scale anchored at "base".
func typeScale(t Typography) []ScaleStep {
	steps := min(t.Steps, len(typeScaleNames))
	out := make([]ScaleStep, 0, steps)
	for i := 0; i < steps; i++ {
		size := t.BaseSize * math.Pow(t.Ratio, float64(i-2))
		out = append(out, ScaleStep{Name: typeScaleNames[i], Value: round2(size)})
	}
	return out
}

var spacingMultipliers = []float64{1, 2, 3, 4, 6, 8, 12, 16, 24, 32}

func spacingScale(s Spacing) []ScaleStep {
	steps := min(s.Steps, len(spacingMultipliers))
	out := make([]ScaleStep, 0, steps)
	for _, m := range spacingMultipliers[:steps] {
		out = append(out, ScaleStep{Name: strconv.FormatFloat(m, 'f', -1, 64), Value: round2(s.Base * m)})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Title renders a role or token segment for humans, e.g. "primary" -> "Primary".
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Populate writes every token of ds into reg. The registry must carry the
// light and dark modes.
func (ds *DesignSystem) Populate(reg *tokens.Registry) error {
	for _, t := range ds.Tokens() {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Tokens flattens ds into registry tokens.
func (ds *DesignSystem) Tokens() []tokens.Token {
	var out []tokens.Token
	both := func(v string) map[string]string {
		return map[string]string{string(color.ModeLight): v, string(color.ModeDark): v}
	}

	for _, cr := range ds.Colors {
		out = append(out, tokens.Token{
			Name:        "color/" + cr.Role + "/base",
			Kind:        tokens.KindColor,
			Description: cr.Name,
			Values:      both(cr.Base),
		})
		n := len(cr.Shades[color.ModeLight])
		for i := 0; i < n; i++ {
			light := cr.Shades[color.ModeLight][i]
			dark := cr.Shades[color.ModeDark][i]
			out = append(out,
				tokens.Token{
					Name: "color/" + cr.Role + "/" + light.Name,
					Kind: tokens.KindColor,
					Values: map[string]string{
						string(color.ModeLight): light.Hex,
						string(color.ModeDark):  dark.Hex,
					},
				},
				tokens.Token{
					Name: "text/" + cr.Role + "/" + light.Name,
					Kind: tokens.KindColor,
					Values: map[string]string{
						string(color.ModeLight): light.TextColor,
						string(color.ModeDark):  dark.TextColor,
					},
				},
			)
		}
	}

	for _, g := range ds.Gradients {
		out = append(out, tokens.Token{
			Name: "gradient/" + g.Name,
			Kind: tokens.KindGradient,
			Values: map[string]string{
				string(color.ModeLight): g.CSS(color.ModeLight),
				string(color.ModeDark):  g.CSS(color.ModeDark),
			},
		})
	}

	out = append(out,
		tokens.Token{Name: "font/body", Kind: tokens.KindFontFamily, Values: both(ds.Typography.BodyFamily)},
		tokens.Token{Name: "font/heading", Kind: tokens.KindFontFamily, Values: both(ds.Typography.HeadingFamily)},
	)
	for _, s := range ds.TypeScale {
		out = append(out, tokens.Token{Name: "font-size/" + s.Name, Kind: tokens.KindDimension, Values: both(px(s.Value))})
	}
	for _, s := range ds.Spacing {
		out = append(out, tokens.Token{Name: "spacing/" + s.Name, Kind: tokens.KindDimension, Values: both(px(s.Value))})
	}
	return out
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
