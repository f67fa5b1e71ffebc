// Package llm talks to hosted language models to suggest palettes.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/asteroid-belt/themebuddy/internal/config"
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("no LLM provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or OPENROUTER_API_KEY")

// Provider sends a conversation and waits for the complete answer.
type Provider interface {
	ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error)

	// Name returns the provider name (e.g., "anthropic", "openai").
	Name() string

	DefaultModel() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // Message content
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// ChatOptions configures a chat request.
type ChatOptions struct {
	Model       string  // Model to use (empty = provider default)
	MaxTokens   int     // Maximum tokens in response
	Temperature float64 // Sampling temperature (0-1)
}

// Response represents a complete chat response.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage for a request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ProviderType represents supported LLM providers.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// defaultMaxTokens is plenty for a palette and a one-line rationale.
const defaultMaxTokens = 512

// NewProvider creates a provider from configuration. Empty overrides fall
// back to the configured provider and model; an unset provider is detected
// from the available API keys.
func NewProvider(cfg config.LLMConfig, providerOverride, modelOverride string) (Provider, error) {
	providerName := providerOverride
	if providerName == "" {
		providerName = cfg.DefaultProvider
	}
	if providerName == "" {
		providerName = detectProvider(cfg)
	}
	if providerName == "" {
		return nil, ErrNotConfigured
	}

	model := modelOverride
	if model == "" {
		model = cfg.DefaultModel
	}

	switch ProviderType(providerName) {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return NewAnthropicProvider(cfg.AnthropicAPIKey, model)
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, model)
	case ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
		}
		return NewOpenRouterProvider(cfg.OpenRouterAPIKey, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: anthropic, openai, openrouter)", providerName)
	}
}

// detectProvider picks a provider from the available API keys.
// Priority: Anthropic > OpenAI > OpenRouter
func detectProvider(cfg config.LLMConfig) string {
	switch {
	case cfg.AnthropicAPIKey != "":
		return string(ProviderAnthropic)
	case cfg.OpenAIAPIKey != "":
		return string(ProviderOpenAI)
	case cfg.OpenRouterAPIKey != "":
		return string(ProviderOpenRouter)
	}
	return ""
}

// IsConfigured returns true if any LLM provider is configured.
func IsConfigured(cfg config.LLMConfig) bool {
	return detectProvider(cfg) != ""
}
