package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the part of the go-openai client the provider uses.
type OpenAIClient interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIProvider implements Provider using OpenAI API.
type OpenAIProvider struct {
	client OpenAIClient
	model  openai.EmbeddingModel
}

// NewOpenAI creates a new OpenAI embedding provider.
func NewOpenAI(apiKey string, model string) *OpenAIProvider {
	return NewOpenAIWithClient(openai.NewClient(apiKey), model)
}

// NewOpenAIWithClient creates a provider over client.
func NewOpenAIWithClient(client OpenAIClient, model string) *OpenAIProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: client,
		model:  openai.EmbeddingModel(model),
	}
}

// Embed generates an embedding for a single text string.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	return resp.Data[0].Embedding, nil
}

// EmbedBatch generates embeddings for multiple text strings.
func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	result := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index >= 0 && data.Index < len(result) {
			result[data.Index] = data.Embedding
		}
	}

	return result, nil
}

// Name returns "openai/<model>".
func (p *OpenAIProvider) Name() string {
	return "openai/" + string(p.model)
}
