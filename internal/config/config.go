// Package config handles application configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

// EnvPrefix namespaces environment overrides, e.g. THEMEBUDDY_SHADES_COUNT.
const EnvPrefix = "THEMEBUDDY"

// EnvHome overrides the base directory.
const EnvHome = "THEMEBUDDY_HOME"

// EnvConfigFile points at an explicit config file.
const EnvConfigFile = "THEMEBUDDY_CONFIG"

// Config holds all application configuration.
type Config struct {
	// Base directory for all Theme Buddy data (~/.themebuddy)
	BaseDir string

	// File the settings were read from; empty when defaults and env only.
	ConfigFile string

	Shades    ShadeConfig
	Host      HostConfig
	Embedding VectorConfig
	LLM       LLMConfig
}

// ShadeConfig holds the default shade generation settings.
type ShadeConfig struct {
	Count int
	// Contrast level: AA, AAA or AA-large.
	Level string
	// Lightness ranges, percent.
	LightStart float64
	LightEnd   float64
	DarkStart  float64
	DarkEnd    float64
}

// Settings converts the configured defaults for color.GenerateShades. An
// unparseable level falls back to AA; Validate reports it.
func (s ShadeConfig) Settings() (color.ShadeSettings, color.Level) {
	settings := color.DefaultShadeSettings()
	if s.Count > 0 {
		settings.NumberOfShades = s.Count
	}
	settings.Light = color.Bounds{Start: s.LightStart, End: s.LightEnd}
	settings.Dark = color.Bounds{Start: s.DarkStart, End: s.DarkEnd}

	level, err := color.ParseLevel(s.Level)
	if err != nil {
		level = color.LevelAA
	}
	return settings, level
}

// HostConfig holds variables-host settings.
type HostConfig struct {
	// Collection used when a message names none.
	Collection string
	// Use the system clipboard for copy-token-value.
	Clipboard bool
}

// LLMConfig holds LLM provider configuration for palette suggestions.
type LLMConfig struct {
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	OpenRouterAPIKey string

	// "anthropic", "openai", "openrouter" (auto-detected if empty)
	DefaultProvider string
	DefaultModel    string

	// Requests allowed per minute across providers.
	RequestsPerMinute int
}

// DefaultLLMConfig returns sensible defaults for LLM configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		RequestsPerMinute: 20,
	}
}

// VectorConfig holds mood index configuration.
type VectorConfig struct {
	// OpenAI API key for embeddings; the local embedder is used without one.
	APIKey string
	Model  string
	// DataDir for chromem-go persistence (default: ~/.themebuddy/vectors)
	DataDir string
	// MinSimilarity below which a semantic match is ignored.
	MinSimilarity float32
}

// DefaultVectorConfig returns sensible defaults.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:         "text-embedding-3-small",
		MinSimilarity: 0.2,
	}
}

// EmbeddingModels defines available OpenAI embedding models and dimensions.
var EmbeddingModels = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
		Shades: ShadeConfig{
			Count:      10,
			Level:      "AA",
			LightStart: 95,
			LightEnd:   10,
			DarkStart:  10,
			DarkEnd:    90,
		},
		Host: HostConfig{
			Collection: "Theme Buddy",
			Clipboard:  true,
		},
		Embedding: DefaultVectorConfig(),
		LLM:       DefaultLLMConfig(),
	}
}

// Load reads configuration from defaults, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(EnvConfigFile))
}

// LoadFile is Load with an explicit config file. An empty path searches the
// base directory and then the XDG config directories.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if home := os.Getenv(EnvHome); home != "" {
		cfg.BaseDir = home
	}

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = findConfigFile(cfg.BaseDir)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		cfg.ConfigFile = v.ConfigFileUsed()
	}

	apply(v, cfg)

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.Embedding.APIKey = apiKey
		cfg.LLM.OpenAIAPIKey = apiKey
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.LLM.AnthropicAPIKey = apiKey
	}
	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		cfg.LLM.OpenRouterAPIKey = apiKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("shades.count", cfg.Shades.Count)
	v.SetDefault("shades.level", cfg.Shades.Level)
	v.SetDefault("shades.light_start", cfg.Shades.LightStart)
	v.SetDefault("shades.light_end", cfg.Shades.LightEnd)
	v.SetDefault("shades.dark_start", cfg.Shades.DarkStart)
	v.SetDefault("shades.dark_end", cfg.Shades.DarkEnd)
	v.SetDefault("host.collection", cfg.Host.Collection)
	v.SetDefault("host.clipboard", cfg.Host.Clipboard)
	v.SetDefault("embedding.model", cfg.Embedding.Model)
	v.SetDefault("embedding.data_dir", cfg.Embedding.DataDir)
	v.SetDefault("embedding.min_similarity", cfg.Embedding.MinSimilarity)
	v.SetDefault("llm.provider", cfg.LLM.DefaultProvider)
	v.SetDefault("llm.model", cfg.LLM.DefaultModel)
	v.SetDefault("llm.requests_per_minute", cfg.LLM.RequestsPerMinute)
}

func apply(v *viper.Viper, cfg *Config) {
	cfg.Shades.Count = v.GetInt("shades.count")
	cfg.Shades.Level = v.GetString("shades.level")
	cfg.Shades.LightStart = v.GetFloat64("shades.light_start")
	cfg.Shades.LightEnd = v.GetFloat64("shades.light_end")
	cfg.Shades.DarkStart = v.GetFloat64("shades.dark_start")
	cfg.Shades.DarkEnd = v.GetFloat64("shades.dark_end")
	cfg.Host.Collection = v.GetString("host.collection")
	cfg.Host.Clipboard = v.GetBool("host.clipboard")
	cfg.Embedding.Model = v.GetString("embedding.model")
	cfg.Embedding.DataDir = v.GetString("embedding.data_dir")
	cfg.Embedding.MinSimilarity = float32(v.GetFloat64("embedding.min_similarity"))
	cfg.LLM.DefaultProvider = v.GetString("llm.provider")
	cfg.LLM.DefaultModel = v.GetString("llm.model")
	cfg.LLM.RequestsPerMinute = v.GetInt("llm.requests_per_minute")
}

// findConfigFile returns the first config.yaml in the base directory or the
// XDG config directories ($XDG_CONFIG_HOME/themebuddy/config.yaml).
func findConfigFile(baseDir string) string {
	local := filepath.Join(baseDir, "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if path, err := xdg.SearchConfigFile(filepath.Join("themebuddy", "config.yaml")); err == nil {
		return path
	}
	return ""
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	var errs []error
	if c.Shades.Count < 1 {
		errs = append(errs, fmt.Errorf("shades.count must be at least 1, got %d", c.Shades.Count))
	}
	switch strings.ToUpper(c.Shades.Level) {
	case "", "AA", "AAA", "AA-LARGE":
	default:
		errs = append(errs, fmt.Errorf("shades.level %q is not AA, AAA or AA-large", c.Shades.Level))
	}
	if c.LLM.RequestsPerMinute < 1 {
		errs = append(errs, fmt.Errorf("llm.requests_per_minute must be positive, got %d", c.LLM.RequestsPerMinute))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	paths := GetPaths(cfg)
	for _, dir := range []string{cfg.BaseDir, paths.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
