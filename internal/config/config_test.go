package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

// isolate points every lookup at a fresh temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvConfigFile, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	return home
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.Shades.Count)
	assert.Equal(t, "AA", cfg.Shades.Level)
	assert.Equal(t, 95.0, cfg.Shades.LightStart)
	assert.Equal(t, 90.0, cfg.Shades.DarkEnd)
	assert.Equal(t, "Theme Buddy", cfg.Host.Collection)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Empty(t, cfg.LLM.DefaultProvider)
	assert.Equal(t, 20, cfg.LLM.RequestsPerMinute)
}

func TestShadeConfig_Settings(t *testing.T) {
	settings, level := DefaultConfig().Shades.Settings()
	assert.Equal(t, color.DefaultShadeSettings(), settings)
	assert.Equal(t, color.LevelAA, level)

	settings, level = ShadeConfig{Count: 5, Level: "aaa", LightStart: 90, LightEnd: 20, DarkStart: 15, DarkEnd: 85}.Settings()
	assert.Equal(t, 5, settings.NumberOfShades)
	assert.Equal(t, color.Bounds{Start: 90, End: 20}, settings.Light)
	assert.Equal(t, color.Bounds{Start: 15, End: 85}, settings.Dark)
	assert.Equal(t, "#FFFFFF", settings.TextLight)
	assert.Equal(t, color.LevelAAA, level)

	_, level = ShadeConfig{Level: "gold"}.Settings()
	assert.Equal(t, color.LevelAA, level)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.BaseDir)
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, 10, cfg.Shades.Count)
	assert.DirExists(t, filepath.Join(home, "logs"))
}

func TestLoad_ConfigFileInBaseDir(t *testing.T) {
	home := isolate(t)
	yaml := "shades:\n  count: 5\n  level: AAA\nhost:\n  collection: Brand\nllm:\n  provider: anthropic\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigFile)
	assert.Equal(t, 5, cfg.Shades.Count)
	assert.Equal(t, "AAA", cfg.Shades.Level)
	assert.Equal(t, "Brand", cfg.Host.Collection)
	assert.Equal(t, "anthropic", cfg.LLM.DefaultProvider)
	assert.Equal(t, 95.0, cfg.Shades.LightStart)
}

func TestLoad_XDGConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "xdg", "themebuddy")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("shades:\n  count: 7\n"), 0644))

	// adrg/xdg reads XDG_CONFIG_HOME at init; Reload picks up the test value.
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Shades.Count)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("shades:\n  count: 5\n"), 0644))
	t.Setenv("THEMEBUDDY_SHADES_COUNT", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Shades.Count)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host:\n  clipboard: false\n"), 0644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Host.Clipboard)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("shades:\n  count: 0\n  level: AAAA\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shades.count")
	assert.Contains(t, err.Error(), "shades.level")
}

func TestLoad_APIKeys(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "sk-openai-test")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-test", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, "sk-openai-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, "sk-or-test", cfg.LLM.OpenRouterAPIKey)
	assert.Equal(t, "sk-openai-test", cfg.Embedding.APIKey)
}

func TestGetPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseDir = "/data/tb"

	paths := GetPaths(cfg)
	assert.Equal(t, "/data/tb/themebuddy.db", paths.Database)
	assert.Equal(t, "/data/tb/logs", paths.Logs)
	assert.Equal(t, "/data/tb/favorites.json", paths.Favorites)
	assert.Equal(t, "/data/tb/vectors", paths.Vectors)

	cfg.Embedding.DataDir = "/elsewhere"
	assert.Equal(t, "/elsewhere", GetPaths(cfg).Vectors)
}
