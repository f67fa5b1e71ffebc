package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/designsystem"
	"github.com/asteroid-belt/themebuddy/internal/host"
	"github.com/asteroid-belt/themebuddy/internal/tokens"
)

var (
	tokensCollection string
	tokensKind       string
	tokensJSON       bool
	tokensYAML       bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Read and edit design tokens in the variables host",
	Long: `Read and edit the design tokens stored in the local variables host.

Every write goes through the same plugin messages a design tool plugin
would send. Commands act on the active collection unless --collection
names another; 'themebuddy generate --apply' and 'tokens use' set it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var tokensListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tokens and their values per mode",
	Args:  cobra.NoArgs,
	RunE:  runTokensList,
}

var tokensExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print token values grouped by mode",
	Long: `Print every token value grouped by mode, as JSON or YAML. The values
are the ones stored in the host, including edits made after generation.`,
	Example: `  themebuddy tokens export --yaml > tokens.yaml`,
	Args:    cobra.NoArgs,
	RunE:    runTokensExport,
}

var tokensSetCmd = &cobra.Command{
	Use:     "set <name> <mode> <value>",
	Short:   "Set a token value for one mode",
	Example: `  themebuddy tokens set color/primary/500 light "#2563EB"`,
	Args:    cobra.ExactArgs(3),
	RunE:    runTokensSet,
}

var tokensCopyCmd = &cobra.Command{
	Use:   "copy <name> <mode>",
	Short: "Copy a token value to the clipboard",
	Args:  cobra.ExactArgs(2),
	RunE:  runTokensCopy,
}

var tokensCopyModeCmd = &cobra.Command{
	Use:     "copy-mode <source> <target>",
	Short:   "Copy every value of one mode to another",
	Example: `  themebuddy tokens copy-mode light dark`,
	Args:    cobra.ExactArgs(2),
	RunE:    runTokensCopyMode,
}

var tokensDuplicateCmd = &cobra.Command{
	Use:   "duplicate [new-name]",
	Short: "Duplicate the collection",
	Long:  `Duplicate the collection with all modes and values. Without a name the copy is called "<name> (copy)".`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokensDuplicate,
}

var tokensDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show variable counts per collection",
	Args:  cobra.NoArgs,
	RunE:  runTokensDebug,
}

var tokensUseCmd = &cobra.Command{
	Use:   "use <collection>",
	Short: "Make a collection the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokensUse,
}

func init() {
	tokensCmd.PersistentFlags().StringVarP(&tokensCollection, "collection", "c", "", "Collection (default: the active one)")
	tokensListCmd.Flags().StringVarP(&tokensKind, "kind", "k", "", "Only tokens of this kind, e.g. color or dimension")
	tokensListCmd.Flags().BoolVar(&tokensJSON, "json", false, "Output as JSON")
	tokensDebugCmd.Flags().BoolVar(&tokensJSON, "json", false, "Output as JSON")
	tokensExportCmd.Flags().BoolVar(&tokensYAML, "yaml", false, "Output as YAML instead of JSON")

	tokensCmd.AddCommand(tokensListCmd)
	tokensCmd.AddCommand(tokensExportCmd)
	tokensCmd.AddCommand(tokensSetCmd)
	tokensCmd.AddCommand(tokensCopyCmd)
	tokensCmd.AddCommand(tokensCopyModeCmd)
	tokensCmd.AddCommand(tokensDuplicateCmd)
	tokensCmd.AddCommand(tokensDebugCmd)
	tokensCmd.AddCommand(tokensUseCmd)
}

type tokenRow struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"`
	Description string            `json:"description,omitempty"`
	Values      map[string]string `json:"values"`
}

type tokenList struct {
	Collection string     `json:"collection"`
	Modes      []string   `json:"modes"`
	Tokens     []tokenRow `json:"tokens"`
}

func runTokensList(cmd *cobra.Command, args []string) error {
	var kind tokens.Kind
	if tokensKind != "" {
		var err error
		if kind, err = tokens.ParseKind(tokensKind); err != nil {
			return trackCLIError("tokens list", err)
		}
	}

	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens list", err)
	}
	defer func() { _ = e.Close() }()

	name := e.collection(tokensCollection)
	c, err := e.db.GetCollection(name)
	if err != nil {
		return trackCLIError("tokens list", err)
	}
	vars, err := e.db.ListVariables(name)
	if err != nil {
		return trackCLIError("tokens list", err)
	}

	out := tokenList{Collection: c.Name, Modes: c.ModeNames(), Tokens: []tokenRow{}}
	for _, v := range vars {
		if kind != "" && v.Kind != string(kind) {
			continue
		}
		row := tokenRow{Name: v.Name, Kind: v.Kind, Description: v.Description, Values: map[string]string{}}
		for _, m := range c.Modes {
			if value, ok := v.ValueFor(m.ID); ok {
				row.Values[m.Name] = value
			}
		}
		out.Tokens = append(out.Tokens, row)
	}

	w := cmd.OutOrStdout()
	if tokensJSON {
		return printJSON(w, out)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n\n", titleStyle.Render(out.Collection),
		mutedStyle.Render(fmt.Sprintf("(%d tokens, modes: %s)", len(out.Tokens), strings.Join(out.Modes, ", "))))
	for _, row := range out.Tokens {
		_, _ = fmt.Fprintf(w, "  %-32s %-9s", row.Name, row.Kind)
		for _, mode := range out.Modes {
			value := row.Values[mode]
			if row.Kind == string(tokens.KindColor) && value != "" {
				value = swatch(value)
			}
			_, _ = fmt.Fprintf(w, " %s=%s", mode, value)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func runTokensExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens export", err)
	}
	defer func() { _ = e.Close() }()

	reg, err := host.LoadRegistry(e.db, e.collection(tokensCollection))
	if err != nil {
		return trackCLIError("tokens export", err)
	}
	byMode := designsystem.FromRegistry(reg)

	w := cmd.OutOrStdout()
	if !tokensYAML {
		return printJSON(w, byMode)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(byMode); err != nil {
		return trackCLIError("tokens export", err)
	}
	return enc.Close()
}

func runTokensSet(cmd *cobra.Command, args []string) error {
	name, mode, value := args[0], args[1], args[2]

	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens set", err)
	}
	defer func() { _ = e.Close() }()

	session := e.session(tokensCollection)
	stored, kind, err := session.UpsertToken(cmd.Context(), name, mode, value)
	if err != nil {
		return trackCLIError("tokens set", err)
	}
	telemetryClient.TrackTokenUpdated(string(kind), mode)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s (%s) in %q to %s\n", name, mode, session.Collection(), stored)
	return nil
}

func runTokensCopy(cmd *cobra.Command, args []string) error {
	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens copy", err)
	}
	defer func() { _ = e.Close() }()

	value, err := e.session(tokensCollection).CopyTokenValue(cmd.Context(), args[0], args[1])
	if err != nil {
		return trackCLIError("tokens copy", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %s\n", value)
	return nil
}

func runTokensCopyMode(cmd *cobra.Command, args []string) error {
	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens copy-mode", err)
	}
	defer func() { _ = e.Close() }()

	session := e.session(tokensCollection)
	copied, err := session.CopyAllModeVariables(cmd.Context(), args[0], args[1])
	if err != nil {
		return trackCLIError("tokens copy-mode", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %d values from %s to %s in %q\n", copied, args[0], args[1], session.Collection())
	return nil
}

func runTokensDuplicate(cmd *cobra.Command, args []string) error {
	newName := ""
	if len(args) == 1 {
		newName = args[0]
	}

	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens duplicate", err)
	}
	defer func() { _ = e.Close() }()

	session := e.session(tokensCollection)
	created, err := session.DuplicateTokensFile(cmd.Context(), newName)
	if err != nil {
		return trackCLIError("tokens duplicate", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %q as %q\n", session.Collection(), created)
	return nil
}

func runTokensDebug(cmd *cobra.Command, args []string) error {
	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens debug", err)
	}
	defer func() { _ = e.Close() }()

	// An empty collection reports all of them.
	result, err := e.session(tokensCollection).DebugVariables(cmd.Context(), tokensCollection)
	if err != nil {
		return trackCLIError("tokens debug", err)
	}
	sort.Slice(result.Collections, func(i, j int) bool {
		return result.Collections[i].Name < result.Collections[j].Name
	})

	w := cmd.OutOrStdout()
	if tokensJSON {
		return printJSON(w, result)
	}
	for _, c := range result.Collections {
		_, _ = fmt.Fprintf(w, "%-24s modes=%-16s variables=%-4d values=%d\n",
			c.Name, strings.Join(c.Modes, ","), c.Variables, c.Values)
	}
	_, _ = fmt.Fprintf(w, "links=%d\n", result.Links)
	return nil
}

func runTokensUse(cmd *cobra.Command, args []string) error {
	e, err := openEnv(stderr)
	if err != nil {
		return trackCLIError("tokens use", err)
	}
	defer func() { _ = e.Close() }()

	if _, err := e.db.GetCollection(args[0]); err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return trackCLIError("tokens use", fmt.Errorf("collection %q not found", args[0]))
		}
		return trackCLIError("tokens use", err)
	}
	if err := e.db.SetActiveCollection(args[0]); err != nil {
		return trackCLIError("tokens use", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active collection: %s\n", args[0])
	return nil
}
