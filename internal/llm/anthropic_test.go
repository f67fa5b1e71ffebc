package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnthropicClient implements AnthropicClient for testing.
type mockAnthropicClient struct {
	response *anthropic.Message
	err      error
	captured anthropic.MessageNewParams
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.captured = params
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func TestAnthropicProvider_ChatSync(t *testing.T) {
	mock := &mockAnthropicClient{
		response: &anthropic.Message{
			Model:      "claude-3-5-haiku-latest",
			StopReason: "end_turn",
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: "#1F4E79 Harbor\n"},
				{Type: "text", Text: "#F4A261 Sand"},
			},
			Usage: anthropic.Usage{InputTokens: 30, OutputTokens: 12},
		},
	}
	p := NewAnthropicProviderWithClient(mock, "")

	resp, err := p.ChatSync(context.Background(), []Message{
		NewSystemMessage("You are a color designer."),
		NewUserMessage("seaside bakery"),
	}, ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, "#1F4E79 Harbor\n#F4A261 Sand", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 42, resp.Usage.TotalTokens)

	assert.Equal(t, anthropic.Model(DefaultAnthropicModel), mock.captured.Model)
	assert.Equal(t, int64(defaultMaxTokens), mock.captured.MaxTokens)
	require.Len(t, mock.captured.System, 1)
	assert.Equal(t, "You are a color designer.", mock.captured.System[0].Text)
	assert.Len(t, mock.captured.Messages, 1)
}

func TestAnthropicProvider_ChatSyncOptions(t *testing.T) {
	mock := &mockAnthropicClient{response: &anthropic.Message{}}
	p := NewAnthropicProviderWithClient(mock, "claude-sonnet-4-5")

	_, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{Model: "claude-opus-4-1", MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, anthropic.Model("claude-opus-4-1"), mock.captured.Model)
	assert.Equal(t, int64(100), mock.captured.MaxTokens)
	assert.Empty(t, mock.captured.System)
}

func TestAnthropicProvider_Error(t *testing.T) {
	p := NewAnthropicProviderWithClient(&mockAnthropicClient{err: errors.New("overloaded")}, "")

	_, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic chat")
	assert.Equal(t, "anthropic", p.Name())
}
