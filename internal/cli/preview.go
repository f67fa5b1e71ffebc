package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/config"
	"github.com/asteroid-belt/themebuddy/internal/log"
	"github.com/asteroid-belt/themebuddy/internal/tui"
)

var (
	previewCount int
	previewMode  string
	previewLevel string
)

var previewCmd = &cobra.Command{
	Use:   "preview [color]...",
	Short: "Browse shades and harmonies interactively",
	Long: `Open an interactive preview of shade ramps and harmonies.

Without colors the preview shows your favorites. Press ? inside the preview
for key bindings.`,
	Example: `  themebuddy preview "#3B82F6" "#F59E0B"
  themebuddy preview --mode dark --level AAA`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewCount, "count", "n", 0, "Number of shades (default from config)")
	previewCmd.Flags().StringVarP(&previewMode, "mode", "m", "", "Start in light or dark mode")
	previewCmd.Flags().StringVarP(&previewLevel, "level", "l", "", "Contrast level: AA, AAA or AA-large")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("preview", fmt.Errorf("load config: %w", err))
	}
	opts, err := previewOptions(cfg)
	if err != nil {
		return trackCLIError("preview", err)
	}

	colors := args
	if len(colors) == 0 {
		store, err := loadFavorites()
		if err != nil {
			return trackCLIError("preview", err)
		}
		colors = store.Hexes()
	}
	if len(colors) == 0 {
		return trackCLIError("preview", tui.ErrNoColors)
	}

	// The preview owns the terminal; log to file only.
	if err := log.InitQuiet(config.GetPaths(cfg).Logs); err == nil {
		defer func() { _ = log.Close() }()
	}

	return trackCLIError("preview", tui.Run(colors, opts...))
}

func previewOptions(cfg *config.Config) ([]tui.Option, error) {
	settings, level := cfg.Shades.Settings()
	if previewCount != 0 {
		settings.NumberOfShades = previewCount
	}
	if previewLevel != "" {
		var err error
		if level, err = color.ParseLevel(previewLevel); err != nil {
			return nil, err
		}
	}

	opts := []tui.Option{
		tui.WithShadeSettings(settings, level),
		tui.WithTelemetry(telemetryClient),
	}
	if previewMode != "" {
		mode, err := color.ParseMode(previewMode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tui.WithMode(mode))
	}
	return opts, nil
}
