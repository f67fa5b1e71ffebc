package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/config"
	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/favorites"
	"github.com/asteroid-belt/themebuddy/internal/host"
	"github.com/asteroid-belt/themebuddy/internal/log"
	"github.com/asteroid-belt/themebuddy/internal/plugin"
)

// env bundles what commands touching the variables host need.
type env struct {
	cfg   *config.Config
	paths config.Paths
	db    *db.DB
	host  *host.Host
}

// openEnv loads config and opens the variables database. Notifications
// from the host are written to notices.
func openEnv(notices io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	paths := config.GetPaths(cfg)

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var clip host.Clipboard
	if cfg.Host.Clipboard {
		clip = host.SystemClipboard{}
	}

	h := host.New(database,
		host.WithClipboard(clip),
		host.WithNotifier(host.WriterNotifier{W: notices}),
		host.WithTelemetry(telemetryClient),
		host.WithLogger(logger{}),
		host.WithCollection(cfg.Host.Collection),
	)

	return &env{cfg: cfg, paths: paths, db: database, host: h}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// collection resolves an empty name to the active collection.
func (e *env) collection(name string) string {
	if name != "" {
		return name
	}
	state, err := e.db.GetUserState()
	if err != nil || state.ActiveCollection == "" {
		return e.cfg.Host.Collection
	}
	return state.ActiveCollection
}

// session opens a plugin session over the in-process host, preloaded with
// the tokens stored in collection.
func (e *env) session(collection string) *plugin.Session {
	collection = e.collection(collection)
	settings, level := e.cfg.Shades.Settings()
	opts := []plugin.Option{
		plugin.WithLogger(logger{}),
		plugin.WithCollection(collection),
		plugin.WithShadeSettings(settings, level),
	}
	if reg, err := host.LoadRegistry(e.db, collection); err == nil {
		opts = append(opts, plugin.WithRegistry(reg))
	}
	return plugin.NewSession(bridge.Local{Handler: e.host}, opts...)
}

// loadFavorites opens the favorites store without touching the database.
func loadFavorites() (*favorites.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store := favorites.NewStore(config.GetPaths(cfg).Favorites)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// logger forwards host and session lines to the log file, when one is open.
type logger struct{}

func (logger) Printf(format string, args ...interface{}) {
	if log.Default() != nil {
		log.Printf(format, args...)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// swatch renders hex as a block of itself, labeled in its best text color.
func swatch(hex string) string {
	text, _, err := color.BestText(hex, "#000000", "#FFFFFF")
	if err != nil {
		text = "#000000"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(text)).
		Padding(0, 1).
		Render(hex)
}

func badge(pass bool) string {
	if pass {
		return passStyle.Render("pass")
	}
	return failStyle.Render("fail")
}

// stderr is where notices go for commands whose stdout may be piped.
var stderr io.Writer = os.Stderr
