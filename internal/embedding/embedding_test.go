package embedding

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestHashed_UnitLengthAndDeterministic(t *testing.T) {
	p := NewHashed(0)
	ctx := context.Background()

	a, err := p.Embed(ctx, "Serene ocean sunset")
	require.NoError(t, err)
	assert.Len(t, a, DefaultDimensions)
	assert.InDelta(t, 1.0, dot(a, a), 1e-5)

	b, err := p.Embed(ctx, "serene, OCEAN sunset!")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dot(a, b), 1e-5)
}

func TestHashed_SharedWordsAreCloser(t *testing.T) {
	p := NewHashed(512)
	ctx := context.Background()

	base, err := p.Embed(ctx, "tranquil peaceful garden")
	require.NoError(t, err)
	near, err := p.Embed(ctx, "peaceful garden")
	require.NoError(t, err)
	far, err := p.Embed(ctx, "electric neon racing")
	require.NoError(t, err)

	assert.Greater(t, dot(base, near), dot(base, far))
}

func TestHashed_Empty(t *testing.T) {
	p := NewHashed(64)
	_, err := p.Embed(context.Background(), " -- ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = p.EmbedBatch(context.Background(), []string{"ok", ""})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestHashed_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHashed(64).Embed(ctx, "calm")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_PicksProvider(t *testing.T) {
	assert.Equal(t, "hashed/256", New("", "").Name())
	assert.Equal(t, "openai/text-embedding-3-small", New("sk-test", "").Name())
	assert.Equal(t, "openai/text-embedding-3-large", New("sk-test", "text-embedding-3-large").Name())
}

type mockClient struct {
	resp openai.EmbeddingResponse
	err  error
}

func (m *mockClient) CreateEmbeddings(_ context.Context, _ openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	return m.resp, m.err
}

func TestOpenAI_EmbedBatchOrdersByIndex(t *testing.T) {
	p := NewOpenAIWithClient(&mockClient{resp: openai.EmbeddingResponse{
		Data: []openai.Embedding{
			{Index: 1, Embedding: []float32{0, 1}},
			{Index: 0, Embedding: []float32{1, 0}},
		},
	}}, "")

	got, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, got)

	one, err := p.Embed(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, one)
}

func TestOpenAI_Errors(t *testing.T) {
	p := NewOpenAIWithClient(&mockClient{err: errors.New("401")}, "")
	_, err := p.Embed(context.Background(), "a")
	assert.ErrorContains(t, err, "create embedding: 401")

	p = NewOpenAIWithClient(&mockClient{}, "")
	_, err = p.Embed(context.Background(), "a")
	assert.EqualError(t, err, "no embedding data returned")
}
