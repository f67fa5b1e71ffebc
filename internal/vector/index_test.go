package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/testutil"
)

func newIndex(t *testing.T, cfg Config) *MoodIndex {
	t.Helper()
	if cfg.MinSimilarity == 0 {
		cfg.MinSimilarity = 0.2
	}
	ix, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })

	n, err := ix.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(color.Moods()), n)
	return ix
}

func TestMoodIndex_Match(t *testing.T) {
	ix := newIndex(t, Config{})
	ctx := context.Background()

	assert.Equal(t, "hashed/256", ix.Provider())
	assert.Equal(t, len(color.Moods()), ix.Count())

	tests := []struct {
		text string
		want color.Mood
	}{
		{"vintagey nostalgia", color.MoodRetro},
		{"luxuriously sophisticated", color.MoodElegant},
		{"serene", color.MoodCalm},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ix.Match(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Mood)
			assert.GreaterOrEqual(t, got.Similarity, float32(0.2))
		})
	}
}

func TestMoodIndex_NoMatch(t *testing.T) {
	ix := newIndex(t, Config{})
	ctx := context.Background()

	_, err := ix.Match(ctx, "gloomy nighttime")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = ix.Match(ctx, "   ")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMoodIndex_Search(t *testing.T) {
	ix := newIndex(t, Config{})

	hits, err := ix.Search(context.Background(), "luxuriously sophisticated", 100)
	require.NoError(t, err)
	require.Len(t, hits, len(color.Moods()))
	assert.Equal(t, color.MoodElegant, hits[0].Mood)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
}

func TestMoodIndex_ResolvePrefersKeywords(t *testing.T) {
	ix := newIndex(t, Config{})
	ctx := context.Background()

	got, err := ix.Resolve(ctx, "A cozy cabin")
	require.NoError(t, err)
	assert.Equal(t, Match{Mood: color.MoodWarm, Similarity: 1}, got)

	got, err = ix.Resolve(ctx, "vintagey nostalgia")
	require.NoError(t, err)
	assert.Equal(t, color.MoodRetro, got.Mood)
	assert.Less(t, got.Similarity, float32(1))
}

func TestMoodIndex_PersistsAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	newIndex(t, Config{DataDir: dir})

	ix, err := New(Config{DataDir: dir, MinSimilarity: 0.2})
	require.NoError(t, err)
	assert.Equal(t, len(color.Moods()), ix.Count())

	n, err := ix.Build(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMoodContent(t *testing.T) {
	info, err := color.DescribeMood(color.MoodWarm)
	require.NoError(t, err)

	content := MoodContent(info)
	assert.Equal(t, "warm warm autumn cozy spicy sunset warm", content)
	assert.Len(t, ContentHash(content), 16)
	assert.Equal(t, ContentHash(content), ContentHash(content))
}

func TestMoodIndex_OpenAI(t *testing.T) {
	apiKey := testutil.RequireAPIKey(t, "OPENAI_API_KEY")

	ix := newIndex(t, Config{OpenAIKey: apiKey, DataDir: t.TempDir()})
	got, err := ix.Match(context.Background(), "a quiet lakeside retreat")
	require.NoError(t, err)
	assert.Equal(t, color.MoodCalm, got.Mood)
}
