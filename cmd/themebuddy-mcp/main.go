// Package main provides the themebuddy-mcp server.
//
// themebuddy-mcp exposes the Theme Buddy color tools and the local variables
// host via the Model Context Protocol.
//
// Usage:
//
//	themebuddy-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/themebuddy/internal/config"
	"github.com/asteroid-belt/themebuddy/internal/db"
	"github.com/asteroid-belt/themebuddy/internal/favorites"
	"github.com/asteroid-belt/themebuddy/internal/log"
	"github.com/asteroid-belt/themebuddy/internal/mcp"
	"github.com/asteroid-belt/themebuddy/internal/telemetry"
	"github.com/asteroid-belt/themebuddy/internal/vector"
	"github.com/asteroid-belt/themebuddy/pkg/version"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("themebuddy-mcp %s\n", version.Version)
		os.Exit(0)
	}

	// Handle --help flag
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	// Setup context with cancellation on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and initialize database
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)

	// Stdout belongs to the protocol; log to file only.
	if err := log.InitQuiet(paths.Logs); err == nil {
		defer func() { _ = log.Close() }()
	}

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	favStore := favorites.NewStore(paths.Favorites)
	if err := favStore.Load(); err != nil {
		log.Printf("favorites: %v", err)
	}

	tc := telemetry.New(database)
	defer tc.Close()

	var opts []mcp.Option
	if ix := openMoodIndex(ctx, cfg, paths); ix != nil {
		defer func() { _ = ix.Close() }()
		opts = append(opts, mcp.WithMoodIndex(ix))
	}

	// Create and run MCP server
	server := mcp.NewServer(database, cfg, favStore, tc, opts...)
	if err := server.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// openMoodIndex opens and refreshes the mood index. Mood lookups fall back
// to keywords alone when it fails.
func openMoodIndex(ctx context.Context, cfg *config.Config, paths config.Paths) *vector.MoodIndex {
	ix, err := vector.New(vector.Config{
		DataDir:       paths.Vectors,
		OpenAIKey:     cfg.Embedding.APIKey,
		Model:         cfg.Embedding.Model,
		MinSimilarity: cfg.Embedding.MinSimilarity,
	})
	if err != nil {
		log.Printf("mood index: %v", err)
		return nil
	}
	if n, err := ix.Build(ctx); err != nil {
		log.Printf("mood index: %v", err)
		_ = ix.Close()
		return nil
	} else if n > 0 {
		log.Printf("mood index: embedded %d moods with %s", n, ix.Provider())
	}
	return ix
}

func printHelp() {
	help := `themebuddy-mcp - MCP server for Theme Buddy

USAGE:
    themebuddy-mcp [FLAGS]

FLAGS:
    -h, --help       Print this help message
    -v, --version    Print version information

DESCRIPTION:
    themebuddy-mcp is a Model Context Protocol (MCP) server that exposes the
    Theme Buddy color tools and the local variables host to MCP-compatible
    clients.

    The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).

CONFIGURATION:
    {
      "mcpServers": {
        "themebuddy": {
          "type": "stdio",
          "command": "themebuddy-mcp"
        }
      }
    }

TOOLS PROVIDED:
    themebuddy_shades        Shade ramp with text colors and contrast
    themebuddy_contrast      WCAG contrast ratio of two colors
    themebuddy_name          Human-readable color name and family
    themebuddy_harmony       Harmonious colors from a base color
    themebuddy_mood          Palette for a mood or description
    themebuddy_generate      Design system from base colors
    themebuddy_list_tokens   Stored tokens of a collection
    themebuddy_update_token  Set a token value in one mode
    themebuddy_favorite      Save, remove or list favorite colors

RESOURCES PROVIDED:
    themebuddy://token/{name}  A stored token as JSON

MORE INFO:
    https://github.com/asteroid-belt/themebuddy
`
	fmt.Print(help)
}
