package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

var contrastJSON bool

var contrastCmd = &cobra.Command{
	Use:   "contrast <foreground> <background>",
	Short: "Check the WCAG contrast of two colors",
	Example: `  themebuddy contrast "#FFFFFF" "#3B82F6"
  themebuddy contrast 000 fff --json`,
	Args: cobra.ExactArgs(2),
	RunE: runContrast,
}

type contrastOutput struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	Rating     string  `json:"rating"`
	AA         bool    `json:"aa"`
	AALarge    bool    `json:"aa_large"`
	AAA        bool    `json:"aaa"`
}

func runContrast(cmd *cobra.Command, args []string) error {
	fg, err := color.Normalize(args[0])
	if err != nil {
		return trackCLIError("contrast", err)
	}
	bg, err := color.Normalize(args[1])
	if err != nil {
		return trackCLIError("contrast", err)
	}
	ratio, err := color.ContrastRatio(fg, bg)
	if err != nil {
		return trackCLIError("contrast", err)
	}

	out := contrastOutput{
		Foreground: fg,
		Background: bg,
		Ratio:      ratio,
		Rating:     color.Rating(ratio),
		AA:         color.Passes(ratio, color.LevelAA),
		AALarge:    color.Passes(ratio, color.LevelAALarge),
		AAA:        color.Passes(ratio, color.LevelAAA),
	}

	w := cmd.OutOrStdout()
	if contrastJSON {
		return printJSON(w, out)
	}
	_, _ = fmt.Fprintf(w, "%s on %s  %.2f:1  %s\n", swatch(fg), swatch(bg), ratio, titleStyle.Render(out.Rating))
	_, _ = fmt.Fprintf(w, "  AA       %s\n  AA-large %s\n  AAA      %s\n", badge(out.AA), badge(out.AALarge), badge(out.AAA))
	return nil
}

var nameJSON bool

var nameCmd = &cobra.Command{
	Use:     "name <color>...",
	Short:   "Give colors human-readable names",
	Example: `  themebuddy name "#3B82F6" "#F59E0B"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runName,
}

type nameOutput struct {
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	Family string `json:"family"`
}

func runName(cmd *cobra.Command, args []string) error {
	out := make([]nameOutput, 0, len(args))
	for _, arg := range args {
		hex, err := color.Normalize(arg)
		if err != nil {
			return trackCLIError("name", err)
		}
		name, err := color.NameColor(hex)
		if err != nil {
			return trackCLIError("name", err)
		}
		family, err := color.Family(hex)
		if err != nil {
			return trackCLIError("name", err)
		}
		out = append(out, nameOutput{Hex: hex, Name: name, Family: family})
	}

	w := cmd.OutOrStdout()
	if nameJSON {
		return printJSON(w, out)
	}
	for _, n := range out {
		_, _ = fmt.Fprintf(w, "%s  %s %s\n", swatch(n.Hex), titleStyle.Render(n.Name), mutedStyle.Render("("+n.Family+")"))
	}
	return nil
}

var (
	harmonyType string
	harmonyJSON bool
)

var harmonyCmd = &cobra.Command{
	Use:   "harmony <color>",
	Short: "Derive color harmonies from a base color",
	Long: `Derive related colors by rotating the hue of a base color.

Types: complementary, analogous, triadic, split-complementary, tetradic,
square and monochromatic. Without --type every harmony is shown.`,
	Example: `  themebuddy harmony "#3B82F6"
  themebuddy harmony "#3B82F6" --type triadic`,
	Args: cobra.ExactArgs(1),
	RunE: runHarmony,
}

func init() {
	contrastCmd.Flags().BoolVar(&contrastJSON, "json", false, "Output as JSON")
	nameCmd.Flags().BoolVar(&nameJSON, "json", false, "Output as JSON")
	harmonyCmd.Flags().StringVarP(&harmonyType, "type", "t", "", "Harmony type (default all)")
	harmonyCmd.Flags().BoolVar(&harmonyJSON, "json", false, "Output as JSON")
}

func runHarmony(cmd *cobra.Command, args []string) error {
	base, err := color.Normalize(args[0])
	if err != nil {
		return trackCLIError("harmony", err)
	}

	kinds := color.Harmonies()
	if harmonyType != "" {
		kind, err := color.ParseHarmony(harmonyType)
		if err != nil {
			return trackCLIError("harmony", err)
		}
		kinds = []color.Harmony{kind}
	}

	out := make(map[color.Harmony][]string, len(kinds))
	for _, kind := range kinds {
		colors, err := color.Harmonize(base, kind)
		if err != nil {
			return trackCLIError("harmony", err)
		}
		out[kind] = colors
	}
	telemetryClient.TrackPaletteGenerated("harmony", len(kinds))

	w := cmd.OutOrStdout()
	if harmonyJSON {
		return printJSON(w, out)
	}
	for _, kind := range kinds {
		_, _ = fmt.Fprintf(w, "%-20s", string(kind))
		for _, hex := range out[kind] {
			_, _ = fmt.Fprintf(w, " %s", swatch(hex))
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}
