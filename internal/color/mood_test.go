package color

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodForText(t *testing.T) {
	m, ok := MoodForText("A calm and serene beach house")
	require.True(t, ok)
	assert.Equal(t, MoodCalm, m)

	m, ok = MoodForText("Vintage, 80s diner!")
	require.True(t, ok)
	assert.Equal(t, MoodRetro, m)

	_, ok = MoodForText("quarterly spreadsheet")
	assert.False(t, ok)
}

func TestMoods(t *testing.T) {
	moods := Moods()
	assert.Len(t, moods, 12)
	assert.True(t, sort.SliceIsSorted(moods, func(i, j int) bool { return moods[i] < moods[j] }))
}

func TestDescribeMood(t *testing.T) {
	info, err := DescribeMood(MoodCalm)
	require.NoError(t, err)
	assert.Contains(t, info.Keywords, "serene")
	assert.Len(t, info.Palette, 5)

	_, err = DescribeMood(Mood("grumpy"))
	assert.ErrorIs(t, err, ErrUnknownMood)
}

func TestMoodPalette(t *testing.T) {
	for _, style := range []SpreadStyle{SpreadMonochromatic, SpreadAnalogous} {
		t.Run(string(style), func(t *testing.T) {
			res, err := MoodPalette(MoodCalm, 5, style, rand.New(rand.NewPCG(1, 2)))
			require.NoError(t, err)

			assert.Equal(t, MoodCalm, res.Mood)
			assert.Equal(t, style, res.Style)
			assert.Len(t, res.Colors, 5)
			assert.Contains(t, moodPalettes[MoodCalm], res.Seed)
			for _, c := range res.Colors {
				assert.True(t, IsHex(c), c)
			}

			// The seed leads the palette.
			assert.Less(t, deltaHex(t, res.Seed, res.Colors[0]), 1.5)
		})
	}
}

func deltaHex(t *testing.T, a, b string) float64 {
	t.Helper()
	la, err := HexToLab(a)
	require.NoError(t, err)
	lb, err := HexToLab(b)
	require.NoError(t, err)
	return DeltaE(la, lb)
}

func TestMoodPalette_DeterministicWithSeededSource(t *testing.T) {
	a, err := MoodPalette(MoodWarm, 6, "", rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)
	b, err := MoodPalette(MoodWarm, 6, "", rand.New(rand.NewPCG(42, 42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMoodPalette_Errors(t *testing.T) {
	_, err := MoodPalette(Mood("grumpy"), 5, "", nil)
	assert.ErrorIs(t, err, ErrUnknownMood)

	_, err = MoodPalette(MoodCalm, 0, "", nil)
	assert.Error(t, err)

	_, err = MoodPalette(MoodCalm, 3, SpreadStyle("zigzag"), nil)
	assert.Error(t, err)
}

func TestPaletteForText(t *testing.T) {
	res, err := PaletteForText("cozy autumn cabin", 4, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	assert.Equal(t, MoodWarm, res.Mood)
	assert.Len(t, res.Colors, 4)

	_, err = PaletteForText("spreadsheet", 4, nil)
	assert.ErrorIs(t, err, ErrNoMood)
}
