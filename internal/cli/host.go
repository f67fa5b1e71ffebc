package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/log"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Serve plugin messages over stdio",
	Long: `Run the variables host over stdio.

Each line on stdin is one plugin message envelope, for example
{"pluginMessage":{"type":"update-design-token","tokenName":"color/primary/500","mode":"light","value":"#2563EB"}}
Replies are written to stdout one per line and notifications to stderr.
The host stops at end of input.`,
	Args: cobra.NoArgs,
	RunE: runHost,
}

func runHost(cmd *cobra.Command, args []string) error {
	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("host", err)
	}
	defer func() { _ = e.Close() }()

	// Stdout carries replies.
	if err := log.InitQuiet(e.paths.Logs); err == nil {
		defer func() { _ = log.Close() }()
	}
	log.Printf("host: serving %s on stdio\n", e.cfg.Host.Collection)

	if err := e.host.Serve(cmd.Context(), bridge.NewStream(os.Stdin, os.Stdout)); err != nil {
		return trackCLIError("host", fmt.Errorf("serve: %w", err))
	}
	return nil
}
