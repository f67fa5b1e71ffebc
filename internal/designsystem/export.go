package designsystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

// ErrUnknownFormat is returned by Export for an unsupported format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSS      Format = "css"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported export formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatCSS, FormatMarkdown}
}

// ParseFormat accepts a format name; "md" and "yml" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "css":
		return FormatCSS, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export writes ds to w in the given format.
func Export(ds *DesignSystem, format Format, w io.Writer) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSS:
		_, err := io.WriteString(w, CSS(ds))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(ds))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// CSSVar turns a token name into a custom property, e.g.
// "color/primary/500" -> "--color-primary-500".
func CSSVar(name string) string {
	return "--" + strings.NewReplacer("/", "-", " ", "-").Replace(strings.ToLower(name))
}

// CSS renders ds as custom properties: light values on :root and
// [data-theme="light"], dark values on [data-theme="dark"].
func CSS(ds *DesignSystem) string {
	toks := ds.Tokens()

	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n", ds.Name)
	for i, mode := range color.Modes() {
		if i > 0 {
			b.WriteString("\n")
		}
		if mode == color.ModeLight {
			b.WriteString(":root,\n")
		}
		fmt.Fprintf(&b, "[data-theme=%q] {\n", string(mode))
		for _, t := range toks {
			if v, ok := t.Value(string(mode)); ok {
				fmt.Fprintf(&b, "  %s: %s;\n", CSSVar(t.Name), v)
			}
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// Markdown documents ds: colors with names and contrast ratings per mode,
// gradients, and the type and spacing scales.
func Markdown(ds *DesignSystem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ds.Name)
	if ds.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", ds.Description)
	}
	fmt.Fprintf(&b, "Contrast target: **WCAG %s**\n\n", ds.Level)

	b.WriteString("## Colors\n\n")
	for _, cr := range ds.Colors {
		fmt.Fprintf(&b, "### %s: %s (`%s`)\n\n", Title(cr.Role), cr.Name, cr.Base)
		for _, mode := range color.Modes() {
			fmt.Fprintf(&b, "**%s**\n\n", Title(string(mode)))
			b.WriteString("| Step | Color | Text | Contrast | Rating |\n")
			b.WriteString("|---|---|---|---|---|\n")
			for _, s := range cr.Shades[mode] {
				fmt.Fprintf(&b, "| %s | `%s` | `%s` | %.2f:1 | %s |\n", s.Name, s.Hex, s.TextColor, s.ContrastRatio, s.Rating)
			}
			b.WriteString("\n")
		}
	}

	if len(ds.Gradients) > 0 {
		b.WriteString("## Gradients\n\n")
		for _, g := range ds.Gradients {
			fmt.Fprintf(&b, "- **%s**: `%s`\n", Title(g.Name), g.CSS(color.ModeLight))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Typography\n\n")
	fmt.Fprintf(&b, "Body: %s, headings: %s, ratio %.3g\n\n", ds.Typography.BodyFamily, ds.Typography.HeadingFamily, ds.Typography.Ratio)
	b.WriteString("| Token | Size |\n|---|---|\n")
	for _, s := range ds.TypeScale {
		fmt.Fprintf(&b, "| %s | %s |\n", s.Name, px(s.Value))
	}

	b.WriteString("\n## Spacing\n\n")
	b.WriteString("| Token | Size |\n|---|---|\n")
	for _, s := range ds.Spacing {
		fmt.Fprintf(&b, "| %s | %s |\n", s.Name, px(s.Value))
	}
	return b.String()
}

// RenderMarkdown renders markdown for a terminal. On renderer failure the
// source is returned unchanged.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// FromRegistry rebuilds the flat token list of reg for export, keyed by
// mode. Used when the registry was edited after generation.
func FromRegistry(reg *tokens.Registry) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, mode := range reg.Modes() {
		out[mode] = make(map[string]string)
	}
	for _, t := range reg.List(tokens.Filter{}) {
		for mode, v := range t.Values {
			if _, ok := out[mode]; ok {
				out[mode][t.Name] = v
			}
		}
	}
	return out
}
