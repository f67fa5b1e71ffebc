package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/asteroid-belt/themebuddy/pkg/version"
)

var (
	// ErrUnsupportedImage is returned when image data is in no known format.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrInvalidDataURL is returned for data URLs that are not base64 images.
	ErrInvalidDataURL = errors.New("invalid image data URL")
)

// MaxImageBytes caps how much of a file or response is read.
const MaxImageBytes = 20 << 20

// Decode reads a PNG, JPEG, GIF or WebP image and returns it with its format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(io.LimitReader(r, MaxImageBytes))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedImage
		}
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// FromFile extracts k colors from the image at path.
func FromFile(ctx context.Context, path string, k int, seed uint64) ([]Swatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Dominant(ctx, img, k, seed)
}

// FromDataURL extracts k colors from a "data:image/...;base64," URL, the
// form an uploaded file takes in a browser.
func FromDataURL(ctx context.Context, dataURL string, k int, seed uint64) ([]Swatch, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	img, _, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Dominant(ctx, img, k, seed)
}

// FromURL downloads an image and extracts k colors. A nil client uses
// http.DefaultClient.
func FromURL(ctx context.Context, client *http.Client, url string, k int, seed uint64) ([]Swatch, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: %s returned %s", url, resp.Status)
	}

	img, _, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	return Dominant(ctx, img, k, seed)
}

// FromSource extracts k colors from a data URL, an http(s) URL or a file
// path, whichever src looks like.
func FromSource(ctx context.Context, client *http.Client, src string, k int, seed uint64) ([]Swatch, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return FromDataURL(ctx, src, k, seed)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return FromURL(ctx, client, src, k, seed)
	default:
		return FromFile(ctx, src, k, seed)
	}
}
