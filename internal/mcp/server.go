// Package mcp provides the Model Context Protocol server for Theme Buddy.
//
// The server exposes the color tools and the local variables host to MCP
// clients. Token writes go through a plugin session and the host, the same
// path the CLI takes, so the store sees identical messages either way.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asteroid-belt/themebuddy/internal/bridge"
	"github.com/asteroid-belt/themebuddy/internal/config"
	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/favorites"
	"github.com/asteroid-belt/themebuddy/internal/host"
	"github.com/asteroid-belt/themebuddy/internal/plugin"
	"github.com/asteroid-belt/themebuddy/internal/telemetry"
	"github.com/asteroid-belt/themebuddy/internal/vector"
	"github.com/asteroid-belt/themebuddy/pkg/version"
)

// Server wraps the MCP server with Theme Buddy tools.
type Server struct {
	db        *db.DB
	cfg       *config.Config
	host      *host.Host
	favorites *favorites.Store  // Favorites store (persists across DB resets)
	moods     *vector.MoodIndex // Optional semantic fallback for mood lookups
	server    *server.MCPServer
	telemetry telemetry.Client
}

// Option configures a Server.
type Option func(*Server)

// WithMoodIndex lets themebuddy_mood match descriptions without mood
// keywords.
func WithMoodIndex(ix *vector.MoodIndex) Option {
	return func(s *Server) { s.moods = ix }
}

// NewServer creates a new MCP server instance. A nil cfg uses defaults.
func NewServer(database *db.DB, cfg *config.Config, favStore *favorites.Store, tc telemetry.Client, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if tc == nil {
		tc = telemetry.Noop()
	}

	s := &Server{
		db:        database,
		cfg:       cfg,
		favorites: favStore,
		telemetry: tc,
		// Stdout carries the protocol, so no clipboard or notifier output.
		host: host.New(database,
			host.WithClipboard(nil),
			host.WithTelemetry(tc),
			host.WithCollection(cfg.Host.Collection),
		),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = server.NewMCPServer(
		version.Name,
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

// activeCollection is the collection tools use when the caller names none.
func (s *Server) activeCollection(name string) string {
	if name != "" {
		return name
	}
	state, err := s.db.GetUserState()
	if err != nil || state.ActiveCollection == "" {
		return s.cfg.Host.Collection
	}
	return state.ActiveCollection
}

// session opens a plugin session on collection, preloaded with whatever the
// host already stores there.
func (s *Server) session(collection string) *plugin.Session {
	settings, level := s.cfg.Shades.Settings()
	opts := []plugin.Option{
		plugin.WithCollection(collection),
		plugin.WithShadeSettings(settings, level),
	}
	if reg, err := host.LoadRegistry(s.db, collection); err == nil {
		opts = append(opts, plugin.WithRegistry(reg))
	}
	return plugin.NewSession(bridge.Local{Handler: s.host}, opts...)
}

// registerTools adds all Theme Buddy tools to the MCP server.
func (s *Server) registerTools() {
	// Color tools
	s.server.AddTool(shadesTool(), s.handleShades)
	s.server.AddTool(contrastTool(), s.handleContrast)
	s.server.AddTool(nameTool(), s.handleName)
	s.server.AddTool(harmonyTool(), s.handleHarmony)
	s.server.AddTool(moodTool(), s.handleMood)

	// Design system and tokens
	s.server.AddTool(generateTool(), s.handleGenerate)
	s.server.AddTool(listTokensTool(), s.handleListTokens)
	s.server.AddTool(updateTokenTool(), s.handleUpdateToken)

	s.server.AddTool(favoriteTool(), s.handleFavorite)
}

// registerResources adds all Theme Buddy resources to the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"token/{name}",
			"Design token",
			mcp.WithTemplateDescription("A token of the active collection with its value in every mode. Escape slashes in the name as %2F."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleTokenResource,
	)
}
