// Package cli provides the command-line interface for Theme Buddy.
package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/telemetry"
	"github.com/asteroid-belt/themebuddy/pkg/version"
)

var telemetryClient telemetry.Client = telemetry.Noop()

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "themebuddy",
	Short: "Color palettes and design tokens from the terminal",
	Long: `Color palettes and design tokens from the terminal

Theme Buddy generates accessible shade ramps, harmonies and mood palettes,
extracts colors from images, and turns base colors into a design system of
tokens. Tokens live in a local variables host that the 'tokens' commands
and the MCP server edit.

Telemetry:
  Telemetry is enabled by default, always anonymous, and will never track
  personal information, colors you pick, or IP addresses.

  Opt-out with:
  	THEMEBUDDY_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "themebuddy" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.Name(), hasFlags, durationMs)
		}

		// Track help viewed if --help was used
		if cmd.Flags().Changed("help") {
			telemetryClient.TrackCLIHelpViewed(cmd.Name(), os.Args[1:])
		}
	},
}

func init() {
	// Colors
	rootCmd.AddCommand(shadesCmd)
	rootCmd.AddCommand(contrastCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(harmonyCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(favoritesCmd)

	// Design system and host
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(hostCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	telemetryClient.TrackAppStarted("cli")

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)

	durationMs := time.Since(commandStartTime).Milliseconds()
	telemetryClient.TrackAppExited("cli", durationMs, 1)

	return err
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	errorType := classifyError(err)
	telemetryClient.TrackCLIError(cmdName, errorType)
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	errStr := err.Error()
	switch {
	case containsAny(errStr, "llm", "rate limit", "model suggested"):
		return "llm_error"
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "network", "timeout", "connection", "fetch image"):
		return "network_error"
	case containsAny(errStr, "clipboard"):
		return "clipboard_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "malformed", "parse", "format", "unknown"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
