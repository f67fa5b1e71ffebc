package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/asteroid-belt/themebuddy/pkg/version"
)

const (
	// OpenAIDefaultModel is the default OpenAI chat model.
	OpenAIDefaultModel = openai.GPT4oMini

	// OpenRouterBaseURL is the base URL for OpenRouter's OpenAI-compatible API.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouterDefaultModel is the default model for OpenRouter.
	OpenRouterDefaultModel = "anthropic/claude-3.5-haiku"
)

// OpenAIClient is the part of the go-openai client the provider uses.
type OpenAIClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider implements Provider for OpenAI and OpenAI-compatible APIs.
type OpenAIProvider struct {
	client OpenAIClient
	name   ProviderType
	model  string
}

// NewOpenAIProvider creates a provider for the OpenAI API.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = OpenAIDefaultModel
	}
	client := openai.NewClientWithConfig(openai.DefaultConfig(apiKey))
	return &OpenAIProvider{client: client, name: ProviderOpenAI, model: model}, nil
}

// NewOpenRouterProvider creates a provider for OpenRouter.
func NewOpenRouterProvider(apiKey, model string) (*OpenAIProvider, error) {
	return newOpenRouterProvider(apiKey, model, OpenRouterBaseURL)
}

func newOpenRouterProvider(apiKey, model, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenRouter API key is required")
	}
	if model == "" {
		model = OpenRouterDefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Transport: &openRouterTransport{base: http.DefaultTransport}}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		name:   ProviderOpenRouter,
		model:  model,
	}, nil
}

// NewOpenAIProviderWithClient creates a provider over client.
func NewOpenAIProviderWithClient(client OpenAIClient, model string) *OpenAIProvider {
	if model == "" {
		model = OpenAIDefaultModel
	}
	return &OpenAIProvider{client: client, name: ProviderOpenAI, model: model}
}

// openRouterTransport adds the attribution headers OpenRouter asks for.
type openRouterTransport struct {
	base http.RoundTripper
}

func (t *openRouterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", "https://github.com/asteroid-belt/themebuddy")
	req.Header.Set("X-Title", "Theme Buddy")
	req.Header.Set("User-Agent", version.UserAgent())
	return t.base.RoundTrip(req)
}

// ChatSync sends messages and waits for the complete response.
func (p *OpenAIProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
	model := opts.Model
	if model == "" {
		model = p.model
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    convertToOpenAI(messages),
		MaxTokens:   maxTokens,
		Temperature: float32(opts.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s chat: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", p.name)
	}

	choice := resp.Choices[0]
	return &Response{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func convertToOpenAI(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		out[i] = openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content}
	}
	return out
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return string(p.name)
}

// DefaultModel returns the model used when a request names none.
func (p *OpenAIProvider) DefaultModel() string {
	return p.model
}
