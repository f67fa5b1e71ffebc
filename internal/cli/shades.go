package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/config"
)

var (
	shadesCount int
	shadesMode  string
	shadesLevel string
	shadesJSON  bool
)

var shadesCmd = &cobra.Command{
	Use:   "shades <color>",
	Short: "Generate an accessible shade ramp",
	Long: `Generate a lightness ramp of a base color for light mode, dark mode or both.

Every shade gets the text color that reaches the requested WCAG level,
with its contrast ratio and rating. Defaults come from the shades section
of config.yaml.`,
	Example: `  themebuddy shades "#3B82F6"
  themebuddy shades 3b82f6 --mode dark --count 5 --level AAA
  themebuddy shades "#3B82F6" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShades,
}

func init() {
	shadesCmd.Flags().IntVarP(&shadesCount, "count", "n", 0, "Number of shades (default from config)")
	shadesCmd.Flags().StringVarP(&shadesMode, "mode", "m", "", "light, dark or both (default both)")
	shadesCmd.Flags().StringVarP(&shadesLevel, "level", "l", "", "Contrast level: AA, AAA or AA-large (default from config)")
	shadesCmd.Flags().BoolVar(&shadesJSON, "json", false, "Output as JSON")
}

type shadesOutput struct {
	Base   string                       `json:"base"`
	Name   string                       `json:"name"`
	Level  color.Level                  `json:"level"`
	Shades map[color.Mode][]color.Shade `json:"shades"`
}

func runShades(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("shades", fmt.Errorf("load config: %w", err))
	}
	settings, level := cfg.Shades.Settings()

	base, err := color.Normalize(args[0])
	if err != nil {
		return trackCLIError("shades", err)
	}
	if shadesCount != 0 {
		settings.NumberOfShades = shadesCount
	}
	if shadesLevel != "" {
		if level, err = color.ParseLevel(shadesLevel); err != nil {
			return trackCLIError("shades", err)
		}
	}
	modes, err := parseModes(shadesMode)
	if err != nil {
		return trackCLIError("shades", err)
	}

	out := shadesOutput{Base: base, Level: level, Shades: make(map[color.Mode][]color.Shade, len(modes))}
	out.Name, _ = color.NameColor(base)
	for _, mode := range modes {
		shades, err := color.GenerateShades(base, settings, mode, level)
		if err != nil {
			return trackCLIError("shades", err)
		}
		out.Shades[mode] = shades
	}
	telemetryClient.TrackShadesGenerated(settings.NumberOfShades, string(shadesModeLabel(modes)), string(level))

	w := cmd.OutOrStdout()
	if shadesJSON {
		return printJSON(w, out)
	}

	_, _ = fmt.Fprintf(w, "%s %s  %s\n", swatch(base), titleStyle.Render(out.Name), mutedStyle.Render("level "+string(level)))
	for _, mode := range modes {
		_, _ = fmt.Fprintf(w, "\n%s\n", titleStyle.Render(strings.ToUpper(string(mode[:1]))+string(mode[1:])))
		for _, s := range out.Shades[mode] {
			_, _ = fmt.Fprintf(w, "  %-4s %s  text %s  %5.2f:1 %-8s %s\n",
				s.Name, swatch(s.Hex), s.TextColor, s.ContrastRatio, s.Rating, badge(s.MeetsLevel))
		}
	}
	return nil
}

// parseModes maps "", "both", "light" or "dark" to the modes to render.
func parseModes(s string) ([]color.Mode, error) {
	if s == "" || strings.EqualFold(s, "both") {
		return color.Modes(), nil
	}
	mode, err := color.ParseMode(s)
	if err != nil {
		return nil, err
	}
	return []color.Mode{mode}, nil
}

func shadesModeLabel(modes []color.Mode) color.Mode {
	if len(modes) == 1 {
		return modes[0]
	}
	return "both"
}
