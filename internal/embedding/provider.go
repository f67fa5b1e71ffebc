// Package embedding turns short texts into vectors for the mood index.
package embedding

import "context"

// Provider defines the interface for generating text embeddings.
type Provider interface {
	// Embed generates an embedding for a single text string.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple text strings.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Name identifies the embedding space. Vectors from providers with
	// different names must not be compared.
	Name() string
}

// New returns the OpenAI provider when apiKey is set and the local hashed
// provider otherwise.
func New(apiKey, model string) Provider {
	if apiKey != "" {
		return NewOpenAI(apiKey, model)
	}
	return NewHashed(DefaultDimensions)
}
