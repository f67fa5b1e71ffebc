package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database  string // Variables host SQLite database
	Config    string // Config file in the base directory
	Logs      string // Directory holding themebuddy.log
	Favorites string // Favorite swatches
	Vectors   string // Mood index persistence
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	vectors := cfg.Embedding.DataDir
	if vectors == "" {
		vectors = filepath.Join(cfg.BaseDir, "vectors")
	}
	return Paths{
		Database:  filepath.Join(cfg.BaseDir, "themebuddy.db"),
		Config:    filepath.Join(cfg.BaseDir, "config.yaml"),
		Logs:      filepath.Join(cfg.BaseDir, "logs"),
		Favorites: filepath.Join(cfg.BaseDir, "favorites.json"),
		Vectors:   vectors,
	}
}

// DefaultBaseDir returns the default base directory (~/.themebuddy).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".themebuddy"
	}
	return filepath.Join(home, ".themebuddy")
}
