package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/extract"
	"github.com/asteroid-belt/themebuddy/internal/plugin"
)

var (
	extractCount int
	extractSeed  uint64
	extractJSON  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract dominant colors from an image",
	Long: `Extract the dominant colors of a PNG, JPEG, GIF or WebP image.

The image may be a file path, an http(s) URL or a data URL. Colors are
listed by the share of the image they cover.`,
	Example: `  themebuddy extract ./logo.png
  themebuddy extract https://example.com/hero.jpg --count 8`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractCount, "count", "n", extract.DefaultCount, "Number of colors")
	extractCmd.Flags().Uint64Var(&extractSeed, "seed", 0, "Clustering seed")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output as JSON")
}

type extractedColor struct {
	extract.Swatch
	Name string `json:"name"`
}

// imageSession is a session that only reads images; it never posts.
func imageSession() *plugin.Session {
	return plugin.NewSession(nil,
		plugin.WithLogger(logger{}),
		plugin.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
}

func runExtract(cmd *cobra.Command, args []string) error {
	swatches, err := imageSession().ExtractColors(cmd.Context(), args[0], extractCount, extractSeed)
	if err != nil {
		return trackCLIError("extract", err)
	}
	telemetryClient.TrackPaletteGenerated("image", len(swatches))

	out := make([]extractedColor, 0, len(swatches))
	for _, s := range swatches {
		name, _ := color.NameColor(s.Hex)
		out = append(out, extractedColor{Swatch: s, Name: name})
	}

	w := cmd.OutOrStdout()
	if extractJSON {
		return printJSON(w, out)
	}
	for _, c := range out {
		_, _ = fmt.Fprintf(w, "%s  %5.1f%%  %s\n", swatch(c.Hex), c.Share*100, c.Name)
	}
	return nil
}
