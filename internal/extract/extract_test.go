package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// split is a 40x40 image whose left three quarters are red and the rest blue.
func split() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 30 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, blue)
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDominant_TwoColors(t *testing.T) {
	swatches, err := Dominant(context.Background(), split(), 2, 1)
	require.NoError(t, err)
	require.Len(t, swatches, 2)

	assert.Equal(t, "#FF0000", swatches[0].Hex)
	assert.InDelta(t, 0.75, swatches[0].Share, 1e-9)
	assert.Equal(t, "#0000FF", swatches[1].Hex)
	assert.InDelta(t, 0.25, swatches[1].Share, 1e-9)
}

func TestDominant_FewerDistinctColors(t *testing.T) {
	swatches, err := Dominant(context.Background(), split(), 6, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#0000FF"}, Hexes(swatches))
}

func TestDominant_IgnoresTransparent(t *testing.T) {
	img := split()
	for y := 0; y < 40; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.NRGBA{R: 255})
		}
	}

	swatches, err := Dominant(context.Background(), img, 3, 1)
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, "#0000FF", swatches[0].Hex)
	assert.InDelta(t, 1.0, swatches[0].Share, 1e-9)
}

func TestDominant_Errors(t *testing.T) {
	_, err := Dominant(context.Background(), split(), 0, 1)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Dominant(context.Background(), image.NewNRGBA(image.Rect(0, 0, 4, 4)), 3, 1)
	assert.ErrorIs(t, err, ErrNoPixels)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Dominant(ctx, split(), 2, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDominant_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256)), A: 255})
		}
	}

	a, err := Dominant(context.Background(), img, 5, 42)
	require.NoError(t, err)
	b, err := Dominant(context.Background(), img, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, len(a), 5)

	var total float64
	for i, s := range a {
		total += s.Share
		if i > 0 {
			assert.GreaterOrEqual(t, a[i-1].Share, s.Share)
		}
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestSample_LargeImageIsCapped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 500, 500))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	assert.LessOrEqual(t, len(sample(img)), maxSamples)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, split()), 0644))

	swatches, err := FromFile(context.Background(), path, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", swatches[0].Hex)

	_, err = FromFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"), 2, 1)
	assert.Error(t, err)
}

func TestFromDataURL(t *testing.T) {
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, split()))

	swatches, err := FromDataURL(context.Background(), data, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"#FF0000", "#0000FF"}, Hexes(swatches))
}

func TestFromDataURL_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"https://example.com/a.png",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png,rawbytes",
		"data:image/png;base64,!!!",
	} {
		_, err := FromDataURL(context.Background(), in, 2, 1)
		assert.ErrorIs(t, err, ErrInvalidDataURL, in)
	}

	notImage := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))
	_, err := FromDataURL(context.Background(), notImage, 2, 1)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestFromURL(t *testing.T) {
	body := encodePNG(t, split())
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.UserAgent()
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	swatches, err := FromURL(context.Background(), srv.Client(), srv.URL+"/split.png", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", swatches[0].Hex)
	assert.Contains(t, agent, "themebuddy/")

	_, err = FromURL(context.Background(), srv.Client(), srv.URL+"/missing.png", 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFromSource(t *testing.T) {
	ctx := context.Background()
	body := encodePNG(t, split())

	path := filepath.Join(t.TempDir(), "split.png")
	require.NoError(t, os.WriteFile(path, body, 0644))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	for _, src := range []string{
		path,
		"data:image/png;base64," + base64.StdEncoding.EncodeToString(body),
		srv.URL + "/split.png",
	} {
		swatches, err := FromSource(ctx, srv.Client(), src, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"#FF0000", "#0000FF"}, Hexes(swatches))
	}
}
