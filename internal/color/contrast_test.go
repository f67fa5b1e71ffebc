package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContrastRatio_WhiteOnBlackIsMaximum(t *testing.T) {
	ratio, err := ContrastRatio("#FFFFFF", "#000000")
	require.NoError(t, err)
	assert.Equal(t, 21.0, ratio)

	// Order does not matter.
	reversed, err := ContrastRatio("#000000", "#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, ratio, reversed)
}

func TestContrastRatio_SameColorIsOne(t *testing.T) {
	for _, c := range []string{"#000000", "#FFFFFF", "#3366FF", "#DC143C", "#808080"} {
		ratio, err := ContrastRatio(c, c)
		require.NoError(t, err)
		assert.Equal(t, 1.0, ratio, c)
	}
}

func TestContrastRatio_KnownPair(t *testing.T) {
	// #767676 on white is the classic smallest AA-passing gray.
	ratio, err := ContrastRatio("#767676", "#FFFFFF")
	require.NoError(t, err)
	assert.InDelta(t, 4.54, ratio, 0.01)
	assert.True(t, Passes(ratio, LevelAA))
	assert.False(t, Passes(ratio, LevelAAA))
}

func TestContrastRatio_InvalidInput(t *testing.T) {
	_, err := ContrastRatio("#FFFFFF", "nope")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestRelativeLuminance(t *testing.T) {
	assert.InDelta(t, 1.0, RelativeLuminance(RGB{255, 255, 255}), 1e-9)
	assert.Equal(t, 0.0, RelativeLuminance(RGB{0, 0, 0}))
	assert.InDelta(t, 0.2126, RelativeLuminance(RGB{255, 0, 0}), 1e-9)
	assert.InDelta(t, 0.7152, RelativeLuminance(RGB{0, 255, 0}), 1e-9)
	assert.InDelta(t, 0.0722, RelativeLuminance(RGB{0, 0, 255}), 1e-9)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"":         LevelAA,
		"aa":       LevelAA,
		"AAA":      LevelAAA,
		"aa-large": LevelAALarge,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("A")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLevelMinRatio(t *testing.T) {
	assert.Equal(t, 4.5, LevelAA.MinRatio())
	assert.Equal(t, 7.0, LevelAAA.MinRatio())
	assert.Equal(t, 3.0, LevelAALarge.MinRatio())
}

func TestRating(t *testing.T) {
	assert.Equal(t, "AAA", Rating(21))
	assert.Equal(t, "AAA", Rating(7))
	assert.Equal(t, "AA", Rating(4.6))
	assert.Equal(t, "AA Large", Rating(3.2))
	assert.Equal(t, "Fail", Rating(1.5))
}

func TestBestText(t *testing.T) {
	text, ratio, err := BestText("#FFFF00", "#FFFFFF", "#000000")
	require.NoError(t, err)
	assert.Equal(t, "#000000", text)
	assert.Greater(t, ratio, 15.0)

	_, _, err = BestText("#FFFF00")
	assert.Error(t, err)
}
