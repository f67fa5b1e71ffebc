// Package brief reads theme briefs: markdown files whose YAML front matter
// and body describe a design system to generate.
//
//	---
//	name: Harbor
//	colors:
//	  primary: "#1F4E79"
//	  accent: "#F4A261"
//	shades:
//	  count: 9
//	level: AAA
//	---
//	# Harbor
//
//	Calm, trustworthy and a little salty.
package brief

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/designsystem"
	"github.com/asteroid-belt/themebuddy/pkg/version"
)

// ErrUnsupportedVersion is returned when a brief requires a newer themebuddy.
var ErrUnsupportedVersion = errors.New("brief requires a different themebuddy version")

var hexPattern = regexp.MustCompile(`#[0-9A-Fa-f]{6}\b`)

// Brief is a parsed theme brief.
type Brief struct {
	Options designsystem.Options
	// Mood is set when the colors came from a mood palette.
	Mood color.Mood
	// Source says where the colors came from: "front matter", "body" or "mood".
	Source string
}

type shadeMatter struct {
	Count     int       `yaml:"count"`
	Light     []float64 `yaml:"light"`
	Dark      []float64 `yaml:"dark"`
	TextLight string    `yaml:"text_light"`
	TextDark  string    `yaml:"text_dark"`
}

type frontMatter struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Colors      yaml.Node                `yaml:"colors"`
	Mood        string                   `yaml:"mood"`
	Seed        uint64                   `yaml:"seed"`
	Shades      *shadeMatter             `yaml:"shades"`
	Level       string                   `yaml:"level"`
	Typography  *designsystem.Typography `yaml:"typography"`
	Spacing     *designsystem.Spacing    `yaml:"spacing"`
	Gradients   *bool                    `yaml:"gradients"`
	Requires    string                   `yaml:"requires"`
}

// Parser parses briefs.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a parser with front matter support.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
		),
	)
	return &Parser{md: md}
}

// ParseFile reads and parses the brief at path.
func (p *Parser) ParseFile(path string) (*Brief, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := p.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse turns src into design system options. Colors come from the front
// matter, else from hex codes in the body, else from the palette of the
// named or detected mood.
func (p *Parser) Parse(src []byte) (*Brief, error) {
	ctx := parser.NewContext()
	doc := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	raw, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	fm, err := decodeFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	if fm.Requires != "" {
		ok, err := version.Satisfies(fm.Requires)
		if err != nil {
			return nil, fmt.Errorf("requires: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s (running %s)", ErrUnsupportedVersion, fm.Requires, version.Short())
		}
	}

	body := scan(doc, src)

	b := &Brief{Options: designsystem.DefaultOptions()}
	opts := &b.Options
	opts.Name = firstNonEmpty(fm.Name, body.heading, opts.Name)
	opts.Description = firstNonEmpty(fm.Description, body.paragraph)

	if err := applySettings(opts, fm); err != nil {
		return nil, err
	}

	colors, err := decodeColors(fm.Colors)
	if err != nil {
		return nil, err
	}
	switch {
	case len(colors) > 0:
		opts.Colors = colors
		b.Source = "front matter"
	case len(body.hexes) > 0:
		*opts = opts.WithColors(body.hexes...)
		b.Source = "body"
	default:
		mood, err := resolveMood(fm.Mood, opts.Name+" "+opts.Description)
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewPCG(fm.Seed, fm.Seed))
		res, err := color.MoodPalette(mood, len(designsystem.DefaultRoles()), "", rng)
		if err != nil {
			return nil, err
		}
		*opts = opts.WithColors(res.Colors...)
		b.Mood = mood
		b.Source = "mood"
	}

	return b, nil
}

// decodeFrontMatter round-trips the loosely typed map goldmark-meta returns
// through YAML into frontMatter.
func decodeFrontMatter(raw map[string]interface{}) (frontMatter, error) {
	var fm frontMatter
	if len(raw) == 0 {
		return fm, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fm, fmt.Errorf("parse front matter: %w", err)
	}
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return fm, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, nil
}

// decodeColors accepts a role -> hex mapping or a plain list of hexes.
func decodeColors(node yaml.Node) (map[string]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
		for role, hex := range m {
			if _, err := color.Normalize(hex); err != nil {
				return nil, fmt.Errorf("colors.%s: %w", role, err)
			}
		}
		return m, nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
		for i, hex := range list {
			if _, err := color.Normalize(hex); err != nil {
				return nil, fmt.Errorf("colors[%d]: %w", i, err)
			}
		}
		return designsystem.Options{}.WithColors(list...).Colors, nil
	default:
		return nil, errors.New("colors must be a mapping or a list")
	}
}

func applySettings(opts *designsystem.Options, fm frontMatter) error {
	if fm.Level != "" {
		level, err := color.ParseLevel(fm.Level)
		if err != nil {
			return err
		}
		opts.Level = level
	}

	if s := fm.Shades; s != nil {
		if s.Count != 0 {
			opts.Shades.NumberOfShades = s.Count
		}
		if err := setBounds(&opts.Shades.Light, s.Light, "shades.light"); err != nil {
			return err
		}
		if err := setBounds(&opts.Shades.Dark, s.Dark, "shades.dark"); err != nil {
			return err
		}
		if s.TextLight != "" {
			opts.Shades.TextLight = s.TextLight
		}
		if s.TextDark != "" {
			opts.Shades.TextDark = s.TextDark
		}
	}

	if fm.Typography != nil {
		opts.Typography = *fm.Typography
	}
	if fm.Spacing != nil {
		opts.Spacing = *fm.Spacing
	}
	if fm.Gradients != nil {
		opts.Gradients = *fm.Gradients
	}
	return nil
}

func setBounds(b *color.Bounds, v []float64, field string) error {
	switch len(v) {
	case 0:
		return nil
	case 2:
		*b = color.Bounds{Start: v[0], End: v[1]}
		return nil
	default:
		return fmt.Errorf("%s must be [start, end], got %v", field, v)
	}
}

func resolveMood(named, text string) (color.Mood, error) {
	if named != "" {
		return color.ParseMood(named)
	}
	if mood, ok := color.MoodForText(text); ok {
		return mood, nil
	}
	return "", designsystem.ErrNoColors
}

type bodyInfo struct {
	heading   string
	paragraph string
	hexes     []string
}

// scan collects the first heading, the first paragraph and every distinct
// hex color written in the body.
func scan(doc ast.Node, src []byte) bodyInfo {
	var info bodyInfo
	seen := make(map[string]bool)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if info.heading == "" {
				info.heading = nodeText(n, src)
			}
		case *ast.Paragraph:
			if info.paragraph == "" {
				if _, inList := n.Parent().(*ast.ListItem); !inList {
					info.paragraph = nodeText(n, src)
				}
			}
		case *ast.Text:
			for _, hex := range hexPattern.FindAllString(string(n.Segment.Value(src)), -1) {
				hex = strings.ToUpper(hex)
				if !seen[hex] {
					seen[hex] = true
					info.hexes = append(info.hexes, hex)
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return info
}

func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.WriteString(nodeText(c, src))
	}
	return strings.TrimSpace(buf.String())
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
