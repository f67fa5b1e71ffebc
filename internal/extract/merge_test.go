package extract

import (
	"context"
	"image"
	imgcolor "image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

func TestMergeSimilar(t *testing.T) {
	clusters := []cluster{
		{lab: color.Lab{L: 50, A: 10, B: 10}, hex: "#888888", n: 3},
		{lab: color.Lab{L: 51, A: 10, B: 10}, hex: "#8A8A8A", n: 5},
		{lab: color.Lab{L: 90, A: 0, B: 0}, hex: "#EEEEEE", n: 2},
	}

	got := mergeSimilar(clusters)
	require.Len(t, got, 2)
	assert.Equal(t, "#8A8A8A", got[0].hex)
	assert.Equal(t, 8, got[0].n)
	assert.Equal(t, "#EEEEEE", got[1].hex)
	assert.Equal(t, 2, got[1].n)
}

func TestDominant_MergesNearIdenticalColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := imgcolor.NRGBA{R: 255, A: 255}
			if x >= 6 {
				c = imgcolor.NRGBA{R: 254, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	swatches, err := Dominant(context.Background(), img, 2, 1)
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, "#FF0000", swatches[0].Hex)
	assert.InDelta(t, 1.0, swatches[0].Share, 1e-9)
}
