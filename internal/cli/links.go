package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/models"
)

var linksJSON bool

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage navbar and statusbar links",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var linksListCmd = &cobra.Command{
	Use:   "list [navbar|statusbar]",
	Short: "List links of one or both bars",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLinksList,
}

var linksSetCmd = &cobra.Command{
	Use:   "set <navbar|statusbar> [label=url]...",
	Short: "Replace every link of a bar",
	Long: `Replace every link of a bar, in the order given. URLs must be http, https
or mailto. With no links the bar is cleared.`,
	Example: `  themebuddy links set navbar Docs=https://example.com/docs "Contact=mailto:team@example.com"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runLinksSet,
}

func init() {
	linksListCmd.Flags().BoolVar(&linksJSON, "json", false, "Output as JSON")
	linksCmd.AddCommand(linksListCmd)
	linksCmd.AddCommand(linksSetCmd)
}

// parseLinks reads label=url pairs. The first '=' splits, so URLs may
// contain their own.
func parseLinks(args []string) ([]bridge.Link, error) {
	links := make([]bridge.Link, 0, len(args))
	for _, arg := range args {
		label, url, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid link %q: expected label=url", arg)
		}
		links = append(links, bridge.Link{Label: strings.TrimSpace(label), URL: strings.TrimSpace(url)})
	}
	return links, nil
}

func runLinksSet(cmd *cobra.Command, args []string) error {
	bar, err := models.ParseBar(args[0])
	if err != nil {
		return trackCLIError("links set", err)
	}
	links, err := parseLinks(args[1:])
	if err != nil {
		return trackCLIError("links set", err)
	}

	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("links set", err)
	}
	defer func() { _ = e.Close() }()

	session := e.session("")
	var count int
	if bar == models.BarNavbar {
		count, err = session.UpdateNavbarLinks(cmd.Context(), links)
	} else {
		count, err = session.UpdateStatusbarLinks(cmd.Context(), links)
	}
	if err != nil {
		return trackCLIError("links set", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d %s links\n", count, bar)
	return nil
}

func runLinksList(cmd *cobra.Command, args []string) error {
	bars := []models.Bar{models.BarNavbar, models.BarStatusbar}
	if len(args) == 1 {
		bar, err := models.ParseBar(args[0])
		if err != nil {
			return trackCLIError("links list", err)
		}
		bars = []models.Bar{bar}
	}

	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("links list", err)
	}
	defer func() { _ = e.Close() }()

	out := make(map[models.Bar][]bridge.Link, len(bars))
	for _, bar := range bars {
		stored, err := e.db.ListLinks(bar)
		if err != nil {
			return trackCLIError("links list", err)
		}
		links := make([]bridge.Link, 0, len(stored))
		for _, l := range stored {
			links = append(links, bridge.Link{Label: l.Label, URL: l.URL})
		}
		out[bar] = links
	}

	w := cmd.OutOrStdout()
	if linksJSON {
		return printJSON(w, out)
	}
	for _, bar := range bars {
		_, _ = fmt.Fprintf(w, "%s\n", titleStyle.Render(string(bar)))
		if len(out[bar]) == 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", mutedStyle.Render("(none)"))
		}
		for _, l := range out[bar] {
			_, _ = fmt.Fprintf(w, "  %-16s %s\n", l.Label, l.URL)
		}
	}
	return nil
}
