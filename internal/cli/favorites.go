package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

var favoritesJSON bool

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite colors",
	Long: `Manage your favorite colors.

Favorites are stored in ~/.themebuddy/favorites.json, apart from the
variables database.

Subcommands:
  add <color> [name]  Add a color to favorites
  remove <color>      Remove a color from favorites
  list                List all favorite colors`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <color> [name]",
	Short: "Add a color to favorites",
	Long:  `Add a color to your favorites. Without a name the color is named for you.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <color>",
	Short: "Remove a color from favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all favorite colors",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

func init() {
	favoritesListCmd.Flags().BoolVar(&favoritesJSON, "json", false, "Output as JSON")
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	hex, err := color.Normalize(args[0])
	if err != nil {
		return trackCLIError("favorites add", err)
	}
	name := ""
	if len(args) == 2 {
		name = args[1]
	}

	store, err := loadFavorites()
	if err != nil {
		return trackCLIError("favorites add", err)
	}

	if name == "" && store.IsFavorite(hex) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is already in favorites\n", hex)
		return nil
	}

	fav, err := store.Add(hex, name)
	if err != nil {
		return trackCLIError("favorites add", fmt.Errorf("add favorite: %w", err))
	}
	telemetryClient.TrackFavoriteAdded(fav.Hex)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to favorites\n", fav.Hex, fav.Name)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	store, err := loadFavorites()
	if err != nil {
		return trackCLIError("favorites remove", err)
	}

	removed, err := store.Remove(args[0])
	if err != nil {
		return trackCLIError("favorites remove", fmt.Errorf("remove favorite: %w", err))
	}
	if !removed {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is not in favorites\n", args[0])
		return nil
	}
	telemetryClient.TrackFavoriteRemoved(args[0])

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
	return nil
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	store, err := loadFavorites()
	if err != nil {
		return trackCLIError("favorites list", err)
	}

	favs := store.List()
	w := cmd.OutOrStdout()
	if favoritesJSON {
		return printJSON(w, favs)
	}
	if len(favs) == 0 {
		_, _ = fmt.Fprintln(w, "No favorites yet. Add one with: themebuddy favorites add <color>")
		return nil
	}

	_, _ = fmt.Fprintf(w, "Favorites (%d):\n\n", len(favs))
	for _, f := range favs {
		_, _ = fmt.Fprintf(w, "  %s  %s\n", swatch(f.Hex), f.Name)
	}
	return nil
}
