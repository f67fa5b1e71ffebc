package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/brief"
	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/config"
	"github.com/asteroid-belt/themebuddy/internal/designsystem"
)

var (
	generateBrief      string
	generateName       string
	generateFormat     string
	generateOutput     string
	generateLevel      string
	generateApply      bool
	generateCollection string
	generateRender     bool
	generateImage      string
	generateImageCount int
)

var generateCmd = &cobra.Command{
	Use:   "generate [color]...",
	Short: "Generate a design system from base colors or a brief",
	Long: `Generate a design system: shade ramps for every color role, text colors,
gradients, a type scale and a spacing scale.

Colors are assigned to roles in order: primary, secondary, accent, neutral,
success, warning, error, info. A brief is a markdown file whose front matter
sets the name, colors and settings; colors may also come from hex codes or
a mood in its body. With --image the dominant colors of an image are
added after the others.

With --apply the tokens are written to the local variables host and the
collection becomes the active one.`,
	Example: `  themebuddy generate "#3B82F6" "#F59E0B" --format css
  themebuddy generate --brief theme.md --apply
  themebuddy generate "#3B82F6" --format markdown --render
  themebuddy generate --image ./logo.png --count 3`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateBrief, "brief", "b", "", "Markdown brief to read options from")
	generateCmd.Flags().StringVar(&generateName, "name", "", "Design system name")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "json", "Export format: "+formatNames())
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the export to a file instead of stdout")
	generateCmd.Flags().StringVarP(&generateLevel, "level", "l", "", "Contrast level: AA, AAA or AA-large")
	generateCmd.Flags().BoolVar(&generateApply, "apply", false, "Write the tokens to the variables host")
	generateCmd.Flags().StringVarP(&generateCollection, "collection", "c", "", "Host collection for --apply (default: the design system name)")
	generateCmd.Flags().BoolVar(&generateRender, "render", false, "Render markdown output for the terminal")
	generateCmd.Flags().StringVar(&generateImage, "image", "", "Image file or URL to take colors from")
	generateCmd.Flags().IntVarP(&generateImageCount, "count", "n", 3, "Number of colors to take from --image")
}

func formatNames() string {
	formats := designsystem.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateImage != "" {
		colors := imageSession().ColorsFromImage(cmd.Context(), generateImage, generateImageCount)
		if len(colors) == 0 {
			return trackCLIError("generate", fmt.Errorf("no colors found in %s", generateImage))
		}
		telemetryClient.TrackPaletteGenerated("image", len(colors))
		args = append(args, colors...)
	}

	opts, err := generateOptions(args)
	if err != nil {
		return trackCLIError("generate", err)
	}
	format, err := designsystem.ParseFormat(generateFormat)
	if err != nil {
		return trackCLIError("generate", err)
	}

	var ds *designsystem.DesignSystem
	applied := 0
	collection := ""
	if generateApply {
		e, err := openEnv(stderr)
		if err != nil {
			return trackCLIError("generate", err)
		}
		defer func() { _ = e.Close() }()

		collection = generateCollection
		if collection == "" {
			collection = opts.Name
		}
		session := e.session(collection)
		if ds, err = session.LoadDesignSystem(opts); err != nil {
			return trackCLIError("generate", err)
		}
		if applied, err = session.PushDesignSystem(cmd.Context()); err != nil {
			return trackCLIError("generate", err)
		}
	} else if ds, err = designsystem.Generate(opts); err != nil {
		return trackCLIError("generate", err)
	}

	var buf bytes.Buffer
	if err := designsystem.Export(ds, format, &buf); err != nil {
		return trackCLIError("generate", err)
	}
	telemetryClient.TrackDesignSystemGenerated(len(ds.Colors), len(ds.Tokens()), string(format))

	w := cmd.OutOrStdout()
	switch {
	case generateOutput != "":
		if err := os.WriteFile(generateOutput, buf.Bytes(), 0644); err != nil {
			return trackCLIError("generate", fmt.Errorf("write %s: %w", generateOutput, err))
		}
		_, _ = fmt.Fprintf(w, "Wrote %s (%s)\n", generateOutput, format)
	case generateRender && format == designsystem.FormatMarkdown:
		_, _ = fmt.Fprint(w, designsystem.RenderMarkdown(buf.String(), 0))
	default:
		_, _ = w.Write(buf.Bytes())
	}

	if generateApply {
		_, _ = fmt.Fprintf(stderr, "Applied %d variables to %q\n", applied, collection)
	}
	return nil
}

// generateOptions builds options from the brief, the positional colors and
// the configured shade defaults, later sources winning.
func generateOptions(args []string) (designsystem.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return designsystem.Options{}, fmt.Errorf("load config: %w", err)
	}

	opts := designsystem.DefaultOptions()
	opts.Shades, opts.Level = cfg.Shades.Settings()

	if generateBrief != "" {
		b, err := brief.NewParser().ParseFile(generateBrief)
		if err != nil {
			return designsystem.Options{}, err
		}
		opts = b.Options
	}

	if len(args) > 0 {
		hexes := make([]string, len(args))
		for i, arg := range args {
			hex, err := color.Normalize(arg)
			if err != nil {
				return designsystem.Options{}, err
			}
			hexes[i] = hex
		}
		opts = opts.WithColors(hexes...)
	}
	if len(opts.Colors) == 0 {
		return designsystem.Options{}, designsystem.ErrNoColors
	}

	if generateName != "" {
		opts.Name = generateName
	}
	if generateLevel != "" {
		if opts.Level, err = color.ParseLevel(generateLevel); err != nil {
			return designsystem.Options{}, err
		}
	}
	return opts, nil
}
