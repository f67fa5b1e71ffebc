package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShades_ReturnsRequestedCount(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10, 12} {
		settings := DefaultShadeSettings()
		settings.NumberOfShades = n

		shades, err := GenerateShades("#3366FF", settings, ModeLight, LevelAA)
		require.NoError(t, err)
		assert.Len(t, shades, n)
	}
}

func TestGenerateShades_MeetsContrastUnlessImpossible(t *testing.T) {
	settings := DefaultShadeSettings()

	for _, mode := range Modes() {
		for _, level := range []Level{LevelAA, LevelAAA} {
			shades, err := GenerateShades("#3366FF", settings, mode, level)
			require.NoError(t, err)

			for _, s := range shades {
				if s.ContrastRatio >= level.MinRatio() {
					assert.True(t, s.MeetsLevel)
					continue
				}
				// Neither candidate reaches the threshold.
				onWhite, _ := ContrastRatio(s.Hex, settings.TextLight)
				onBlack, _ := ContrastRatio(s.Hex, settings.TextDark)
				assert.Less(t, onWhite, level.MinRatio(), "%s %s %s", mode, level, s.Hex)
				assert.Less(t, onBlack, level.MinRatio(), "%s %s %s", mode, level, s.Hex)
				assert.False(t, s.MeetsLevel)
				// Falls back to the higher-contrast option.
				assert.InDelta(t, max(onWhite, onBlack), s.ContrastRatio, 1e-9)
			}
		}
	}
}

func TestGenerateShades_LightModeGetsLighterFirst(t *testing.T) {
	shades, err := GenerateShades("#3366FF", DefaultShadeSettings(), ModeLight, LevelAA)
	require.NoError(t, err)

	first, _ := HexToRGB(shades[0].Hex)
	last, _ := HexToRGB(shades[len(shades)-1].Hex)
	assert.Greater(t, RelativeLuminance(first), RelativeLuminance(last))

	// Pale shades prefer dark text in light mode.
	assert.Equal(t, "#000000", shades[0].TextColor)
	assert.Equal(t, "#FFFFFF", shades[len(shades)-1].TextColor)
}

func TestGenerateShades_DarkModeGetsDarkerFirst(t *testing.T) {
	shades, err := GenerateShades("#3366FF", DefaultShadeSettings(), ModeDark, LevelAA)
	require.NoError(t, err)

	first, _ := HexToRGB(shades[0].Hex)
	last, _ := HexToRGB(shades[len(shades)-1].Hex)
	assert.Less(t, RelativeLuminance(first), RelativeLuminance(last))
	assert.Equal(t, "#FFFFFF", shades[0].TextColor)
}

func TestGenerateShades_KeepsHue(t *testing.T) {
	base, _ := HexToHSL("#3366FF")
	shades, err := GenerateShades("#3366FF", DefaultShadeSettings(), ModeLight, LevelAA)
	require.NoError(t, err)

	mid, err := HexToHSL(shades[4].Hex)
	require.NoError(t, err)
	assert.InDelta(t, base.H, mid.H, 2)
}

func TestGenerateShades_SingleShadeUsesMidpoint(t *testing.T) {
	settings := DefaultShadeSettings()
	settings.NumberOfShades = 1

	shades, err := GenerateShades("#3366FF", settings, ModeLight, LevelAA)
	require.NoError(t, err)
	require.Len(t, shades, 1)

	hsl, _ := HexToHSL(shades[0].Hex)
	assert.InDelta(t, (settings.Light.Start+settings.Light.End)/2, hsl.L, 0.5)
	assert.Equal(t, "100", shades[0].Name)
}

func TestGenerateShades_StepNames(t *testing.T) {
	shades, err := GenerateShades("#3366FF", DefaultShadeSettings(), ModeLight, LevelAA)
	require.NoError(t, err)

	assert.Equal(t, "50", shades[0].Name)
	assert.Equal(t, "100", shades[1].Name)
	assert.Equal(t, "900", shades[9].Name)

	assert.Equal(t, []string{"100", "200", "300"}, StepNames(3))
}

func TestGenerateShades_Errors(t *testing.T) {
	settings := DefaultShadeSettings()

	_, err := GenerateShades("not-a-color", settings, ModeLight, LevelAA)
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = GenerateShades("#3366FF", settings, Mode("sepia"), LevelAA)
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = GenerateShades("#3366FF", settings, ModeLight, Level("B"))
	assert.ErrorIs(t, err, ErrUnknownLevel)

	settings.NumberOfShades = 0
	_, err = GenerateShades("#3366FF", settings, ModeLight, LevelAA)
	assert.ErrorIs(t, err, ErrInvalidShadeCount)

	settings = DefaultShadeSettings()
	settings.TextLight = "white"
	_, err = GenerateShades("#3366FF", settings, ModeLight, LevelAA)
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestGenerateShades_EmptyLevelMeansAA(t *testing.T) {
	a, err := GenerateShades("#3366FF", DefaultShadeSettings(), ModeLight, "")
	require.NoError(t, err)
	b, err := GenerateShades("#3366FF", DefaultShadeSettings(), ModeLight, LevelAA)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Dark")
	require.NoError(t, err)
	assert.Equal(t, ModeDark, m)

	_, err = ParseMode("dim")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
