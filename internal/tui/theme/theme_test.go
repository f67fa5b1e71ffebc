package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

func TestFromPalette_FillsMissingRoles(t *testing.T) {
	th, err := FromPalette("#ff0000")
	require.NoError(t, err)

	// Secondary comes from the complement, so it is cyan-ish in both modes.
	for _, hex := range []string{th.Secondary.Light, th.Secondary.Dark} {
		fam, err := color.Family(hex)
		require.NoError(t, err)
		assert.Equal(t, "cyan", fam, hex)
	}
	assert.NotEqual(t, th.Primary, th.Accent)
	assert.Equal(t, semantic.Success, th.Success)
}

func TestFromPalette_UsesGivenColors(t *testing.T) {
	th, err := FromPalette("#3366FF", "#FF6633", "#33CC99")
	require.NoError(t, err)

	want, err := color.Blend("#FF6633", "#000000", 0.15)
	require.NoError(t, err)
	assert.Equal(t, want, th.Secondary.Light)

	want, err = color.Blend("#33CC99", "#FFFFFF", 0.3)
	require.NoError(t, err)
	assert.Equal(t, want, th.Accent.Dark)
}

func TestFromPalette_TextIsReadable(t *testing.T) {
	th, err := FromPalette("#3366FF")
	require.NoError(t, err)

	assert.Equal(t, "#000000", th.Text.Light)
	assert.Equal(t, "#FFFFFF", th.Text.Dark)

	for _, pair := range [][2]string{
		{th.Text.Light, th.Background.Light},
		{th.Text.Dark, th.Background.Dark},
	} {
		ratio, err := color.ContrastRatio(pair[0], pair[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ratio, 7.0, pair)
	}
}

func TestFromPalette_Errors(t *testing.T) {
	_, err := FromPalette()
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = FromPalette("#3366FF", "teal")
	assert.ErrorIs(t, err, color.ErrInvalidHex)
}
