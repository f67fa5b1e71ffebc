package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/config"
)

func TestNewProvider_Detect(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LLMConfig
		want string
	}{
		{"anthropic first", config.LLMConfig{AnthropicAPIKey: "a", OpenAIAPIKey: "o"}, "anthropic"},
		{"openai", config.LLMConfig{OpenAIAPIKey: "o", OpenRouterAPIKey: "r"}, "openai"},
		{"openrouter", config.LLMConfig{OpenRouterAPIKey: "r"}, "openrouter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
			assert.True(t, IsConfigured(tt.cfg))
		})
	}
}

func TestNewProvider_NotConfigured(t *testing.T) {
	_, err := NewProvider(config.LLMConfig{}, "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, IsConfigured(config.LLMConfig{}))
}

func TestNewProvider_Overrides(t *testing.T) {
	cfg := config.LLMConfig{AnthropicAPIKey: "a", OpenAIAPIKey: "o", DefaultModel: "gpt-4o"}

	p, err := NewProvider(cfg, "openai", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o", p.DefaultModel())

	p, err = NewProvider(cfg, "openai", "gpt-4.1-mini")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", p.DefaultModel())

	_, err = NewProvider(cfg, "openrouter", "")
	assert.EqualError(t, err, "OPENROUTER_API_KEY not set")

	_, err = NewProvider(cfg, "gemini", "")
	assert.ErrorContains(t, err, "unknown provider")
}

func TestDefaultModels(t *testing.T) {
	a, err := NewAnthropicProvider("k", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAnthropicModel, a.DefaultModel())

	o, err := NewOpenAIProvider("k", "")
	require.NoError(t, err)
	assert.Equal(t, OpenAIDefaultModel, o.DefaultModel())

	r, err := NewOpenRouterProvider("k", "")
	require.NoError(t, err)
	assert.Equal(t, OpenRouterDefaultModel, r.DefaultModel())

	_, err = NewAnthropicProvider("", "")
	assert.Error(t, err)
	_, err = NewOpenAIProvider("", "")
	assert.Error(t, err)
	_, err = NewOpenRouterProvider("", "")
	assert.Error(t, err)
}
