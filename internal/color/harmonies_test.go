package color

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hueOf(t *testing.T, hex string) float64 {
	t.Helper()
	hsl, err := HexToHSL(hex)
	require.NoError(t, err)
	return hsl.H
}

func assertHue(t *testing.T, want float64, hex string) {
	t.Helper()
	d := math.Abs(normalizeHue(want) - hueOf(t, hex))
	if d > 180 {
		d = 360 - d
	}
	assert.LessOrEqual(t, d, 1.5, "hue of %s", hex)
}

func TestHarmonize_Complementary(t *testing.T) {
	colors, err := Harmonize("#FF0000", Complementary)
	require.NoError(t, err)
	require.Len(t, colors, 2)

	assert.Equal(t, "#FF0000", colors[0])
	assert.Equal(t, "#00FFFF", colors[1])
}

func TestHarmonize_HueOffsets(t *testing.T) {
	tests := []struct {
		kind Harmony
		hues []float64
	}{
		{Analogous, []float64{0, -30, 30}},
		{Triadic, []float64{0, 120, 240}},
		{SplitComplementary, []float64{0, 150, 210}},
		{Tetradic, []float64{0, 60, 180, 240}},
		{Square, []float64{0, 90, 180, 270}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			colors, err := Harmonize("#FF0000", tt.kind)
			require.NoError(t, err)
			require.Len(t, colors, len(tt.hues))
			for i, h := range tt.hues {
				assertHue(t, h, colors[i])
			}
		})
	}
}

func TestHarmonize_Monochromatic(t *testing.T) {
	colors, err := Harmonize("#3366FF", Monochromatic)
	require.NoError(t, err)
	require.Len(t, colors, 5)

	base := hueOf(t, "#3366FF")
	for _, c := range colors[1:] {
		assertHue(t, base, c)
	}

	// Lightness steps run dark to light.
	prev := -1.0
	for _, c := range colors[1:] {
		hsl, _ := HexToHSL(c)
		assert.Greater(t, hsl.L, prev)
		prev = hsl.L
	}
}

func TestHarmonize_Errors(t *testing.T) {
	_, err := Harmonize("#FF0000", Harmony("clashing"))
	assert.ErrorIs(t, err, ErrUnknownHarmony)

	_, err = Harmonize("red", Triadic)
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestParseHarmony(t *testing.T) {
	h, err := ParseHarmony("Split Complementary")
	require.NoError(t, err)
	assert.Equal(t, SplitComplementary, h)

	h, err = ParseHarmony("split_complementary")
	require.NoError(t, err)
	assert.Equal(t, SplitComplementary, h)

	_, err = ParseHarmony("rainbow")
	assert.ErrorIs(t, err, ErrUnknownHarmony)
}

func TestRotateHue(t *testing.T) {
	out, err := RotateHue("#FF0000", 120)
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", out)

	out, err = RotateHue("#FF0000", -120)
	require.NoError(t, err)
	assert.Equal(t, "#0000FF", out)
}

func TestAllHarmonies(t *testing.T) {
	all, err := AllHarmonies("#3366FF")
	require.NoError(t, err)
	assert.Len(t, all, len(Harmonies()))
	for _, h := range Harmonies() {
		assert.Equal(t, "#3366FF", all[h][0], h)
	}
}

func TestRandomHarmony(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		_, err := ParseHarmony(string(RandomHarmony(rng)))
		assert.NoError(t, err)
	}
}
