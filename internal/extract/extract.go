// Package extract finds the dominant colors of an image.
package extract

import (
	"context"
	"errors"
	"image"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

var (
	// ErrNoPixels is returned when an image has no opaque pixels.
	ErrNoPixels = errors.New("image has no opaque pixels")

	// ErrInvalidCount is returned for k < 1.
	ErrInvalidCount = errors.New("color count must be at least 1")
)

const (
	// DefaultCount is the number of colors extracted when none is given.
	DefaultCount = 5

	maxSamples    = 10000
	mergeDistance = 2.3
	maxIterations = 24
	// Pixels with alpha below half are ignored.
	minAlpha = 0x8000
)

// Swatch is one extracted color and the share of sampled pixels it covers.
type Swatch struct {
	Hex   string  `json:"hex"`
	Share float64 `json:"share"`
}

type point struct {
	l, a, b float64
}

func (p point) dist2(q point) float64 {
	dl, da, db := p.l-q.l, p.a-q.a, p.b-q.b
	return dl*dl + da*da + db*db
}

// Dominant clusters up to k colors out of img with k-means in Lab space and
// returns them ordered by share, largest first. The same seed always yields
// the same result.
func Dominant(ctx context.Context, img image.Image, k int, seed uint64) ([]Swatch, error) {
	if k < 1 {
		return nil, ErrInvalidCount
	}

	points := sample(img)
	if len(points) == 0 {
		return nil, ErrNoPixels
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	centers := seedCenters(points, k, rng)
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !reassign(points, centers, assign) && iter > 0 {
			break
		}
		recenter(points, centers, assign)
	}

	counts := make([]int, len(centers))
	for _, c := range assign {
		counts[c]++
	}

	clusters := make([]cluster, 0, len(centers))
	for i, c := range centers {
		if counts[i] == 0 {
			continue
		}
		clusters = append(clusters, cluster{
			lab: color.Lab{L: c.l * 100, A: c.a * 100, B: c.b * 100},
			hex: strings.ToUpper(colorful.Lab(c.l, c.a, c.b).Clamped().Hex()),
			n:   counts[i],
		})
	}
	clusters = mergeSimilar(clusters)

	out := make([]Swatch, len(clusters))
	for i, c := range clusters {
		out[i] = Swatch{Hex: c.hex, Share: float64(c.n) / float64(len(points))}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Share != out[j].Share {
			return out[i].Share > out[j].Share
		}
		return out[i].Hex < out[j].Hex
	})
	return out, nil
}

type cluster struct {
	lab color.Lab
	hex string
	n   int
}

// mergeSimilar folds each cluster into a larger one less than mergeDistance
// away, keeping the larger cluster's color.
func mergeSimilar(clusters []cluster) []cluster {
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].n != clusters[j].n {
			return clusters[i].n > clusters[j].n
		}
		return clusters[i].hex < clusters[j].hex
	})

	kept := make([]cluster, 0, len(clusters))
next:
	for _, c := range clusters {
		for i := range kept {
			if color.DeltaE(kept[i].lab, c.lab) < mergeDistance {
				kept[i].n += c.n
				continue next
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// Hexes returns just the colors of swatches.
func Hexes(swatches []Swatch) []string {
	out := make([]string, len(swatches))
	for i, s := range swatches {
		out[i] = s.Hex
	}
	return out
}

// sample reads at most maxSamples opaque pixels on an even grid.
func sample(img image.Image) []point {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	step := 1
	if total := w * h; total > maxSamples {
		step = int(math.Ceil(math.Sqrt(float64(total) / maxSamples)))
	}

	points := make([]point, 0, (w/step+1)*(h/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a < minAlpha {
				continue
			}
			c := colorful.Color{
				R: float64(r) / float64(a),
				G: float64(g) / float64(a),
				B: float64(b) / float64(a),
			}
			l, la, lb := c.Lab()
			points = append(points, point{l, la, lb})
		}
	}
	return points
}

// seedCenters picks k starting centers with k-means++. It returns fewer
// when the image has fewer distinct colors.
func seedCenters(points []point, k int, rng *rand.Rand) []point {
	centers := []point{points[rng.IntN(len(points))]}
	d2 := make([]float64, len(points))

	for len(centers) < k {
		var sum float64
		for i, p := range points {
			best := math.MaxFloat64
			for _, c := range centers {
				if d := p.dist2(c); d < best {
					best = d
				}
			}
			d2[i] = best
			sum += best
		}
		if sum == 0 {
			break
		}

		target := rng.Float64() * sum
		next := len(points) - 1
		for i, d := range d2 {
			target -= d
			if target <= 0 && d > 0 {
				next = i
				break
			}
		}
		centers = append(centers, points[next])
	}
	return centers
}

// reassign moves each point to its nearest center and reports whether any
// assignment changed.
func reassign(points, centers []point, assign []int) bool {
	changed := false
	for i, p := range points {
		best, bestD := 0, math.MaxFloat64
		for j, c := range centers {
			if d := p.dist2(c); d < bestD {
				best, bestD = j, d
			}
		}
		if assign[i] != best {
			assign[i] = best
			changed = true
		}
	}
	return changed
}

func recenter(points, centers []point, assign []int) {
	sums := make([]point, len(centers))
	counts := make([]int, len(centers))
	for i, p := range points {
		c := assign[i]
		sums[c].l += p.l
		sums[c].a += p.a
		sums[c].b += p.b
		counts[c]++
	}
	for j := range centers {
		if counts[j] == 0 {
			continue
		}
		n := float64(counts[j])
		centers[j] = point{sums[j].l / n, sums[j].a / n, sums[j].b / n}
	}
}
