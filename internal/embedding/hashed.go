package embedding

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultDimensions is the vector size of the local provider.
const DefaultDimensions = 256

// ErrEmptyText is returned for text with no letters or digits.
var ErrEmptyText = errors.New("nothing to embed")

// HashedProvider embeds text locally by hashing words and their character
// trigrams into a fixed number of buckets. Vectors are unit length. It needs
// no network and is deterministic, so texts that share words or word stems
// land close together.
type HashedProvider struct {
	dims int
}

// NewHashed creates a local provider with dims buckets.
func NewHashed(dims int) *HashedProvider {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashedProvider{dims: dims}
}

// Embed generates an embedding for a single text string.
func (p *HashedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, p.dims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		p.add(vec, "w:"+w, 2)
		padded := []rune("^" + w + "$")
		for i := 0; i+3 <= len(padded); i++ {
			p.add(vec, "g:"+string(padded[i:i+3]), 1)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return nil, ErrEmptyText
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

// add hashes feature into a bucket. A second hash bit picks the sign so
// collisions tend to cancel rather than pile up.
func (p *HashedProvider) add(vec []float32, feature string, weight float32) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[sum%uint64(p.dims)] += weight
}

// EmbedBatch generates embeddings for multiple text strings.
func (p *HashedProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Name returns "hashed/<dims>".
func (p *HashedProvider) Name() string {
	return "hashed/" + strconv.Itoa(p.dims)
}
