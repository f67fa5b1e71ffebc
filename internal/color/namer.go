package color

import (
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
)

type namedHue struct {
	hue    float64
	name   string
	family string
}

// namedHues is the fixed hue table NameColor matches against.
var namedHues = []namedHue{
	{0, "Red", "red"},
	{18, "Vermilion", "orange"},
	{30, "Orange", "orange"},
	{42, "Amber", "orange"},
	{55, "Yellow", "yellow"},
	{75, "Chartreuse", "green"},
	{100, "Lime", "green"},
	{130, "Green", "green"},
	{155, "Spring Green", "green"},
	{180, "Cyan", "cyan"},
	{205, "Azure", "blue"},
	{235, "Blue", "blue"},
	{258, "Indigo", "purple"},
	{275, "Violet", "purple"},
	{290, "Purple", "purple"},
	{310, "Magenta", "pink"},
	{330, "Pink", "pink"},
	{345, "Rose", "pink"},
}

// curatedNames maps a broad color family to hand-picked names.
var curatedNames = map[string][]string{
	"red":    {"Crimson", "Scarlet", "Ruby", "Cherry", "Carmine", "Garnet"},
	"orange": {"Tangerine", "Apricot", "Coral", "Persimmon", "Copper", "Marigold"},
	"yellow": {"Lemon", "Mustard", "Saffron", "Canary", "Honey", "Gold"},
	"green":  {"Emerald", "Jade", "Sage", "Olive", "Mint", "Fern"},
	"cyan":   {"Teal", "Aqua", "Turquoise", "Lagoon", "Seafoam", "Glacier"},
	"blue":   {"Cobalt", "Sapphire", "Cerulean", "Navy", "Denim", "Cornflower"},
	"purple": {"Amethyst", "Lavender", "Plum", "Orchid", "Iris", "Mulberry"},
	"pink":   {"Blush", "Fuchsia", "Flamingo", "Peony", "Raspberry", "Bubblegum"},
	"white":  {"Snow", "Ivory", "Pearl", "Linen", "Porcelain"},
	"black":  {"Onyx", "Ink", "Jet", "Obsidian", "Licorice"},
	"gray":   {"Slate", "Ash", "Pewter", "Stone", "Smoke", "Graphite"},
}

// achromaticSaturation is the saturation (percent) below which a color is
// named White, Black or Gray.
const achromaticSaturation = 5

// NameColor describes hex with a hue name and an optional lightness or
// saturation descriptor, e.g. "Deep Blue" or "Muted Green".
func NameColor(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	hsl := RGBToHSL(rgb)

	if family := achromaticFamily(hsl); family != "" {
		return achromaticName(family), nil
	}

	hue := nearestHue(hsl.H)
	if d := descriptor(hsl); d != "" {
		return d + " " + hue.name, nil
	}
	return hue.name, nil
}

// Family returns the broad color family of hex: red, orange, yellow, green,
// cyan, blue, purple, pink, white, black or gray.
func Family(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	hsl := RGBToHSL(rgb)
	if family := achromaticFamily(hsl); family != "" {
		return family, nil
	}
	return nearestHue(hsl.H).family, nil
}

func achromaticFamily(hsl HSL) string {
	if hsl.S >= achromaticSaturation {
		return ""
	}
	switch {
	case hsl.L >= 90:
		return "white"
	case hsl.L <= 10:
		return "black"
	default:
		return "gray"
	}
}

func achromaticName(family string) string {
	switch family {
	case "white":
		return "White"
	case "black":
		return "Black"
	default:
		return "Gray"
	}
}

func nearestHue(h float64) namedHue {
	best := namedHues[0]
	bestDist := math.Inf(1)
	for _, nh := range namedHues {
		d := math.Abs(h - nh.hue)
		if d > 180 {
			d = 360 - d
		}
		if d < bestDist {
			best, bestDist = nh, d
		}
	}
	return best
}

func descriptor(hsl HSL) string {
	switch {
	case hsl.L < 20:
		return "Deep"
	case hsl.L < 35:
		return "Dark"
	case hsl.L > 85:
		return "Pale"
	case hsl.L > 70:
		return "Light"
	case hsl.S < 30:
		return "Muted"
	case hsl.S > 90 && hsl.L >= 40 && hsl.L <= 60:
		return "Vivid"
	default:
		return ""
	}
}

// Namer hands out names that are unique within its lifetime.
type Namer struct {
	mu   sync.Mutex
	used map[string]bool
	rng  *rand.Rand
}

// NewNamer creates a Namer. With a nil rng names are picked in table order,
// which keeps output deterministic.
func NewNamer(rng *rand.Rand) *Namer {
	return &Namer{used: make(map[string]bool), rng: rng}
}

// Name picks an unused curated name for hex's family, then falls back to the
// NameColor description, then to numbered variants of it.
func (n *Namer) Name(hex string) (string, error) {
	family, err := Family(hex)
	if err != nil {
		return "", err
	}
	described, err := NameColor(hex)
	if err != nil {
		return "", err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	candidates := append([]string(nil), curatedNames[family]...)
	if n.rng != nil {
		n.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}
	for _, c := range candidates {
		if !n.used[c] {
			n.used[c] = true
			return c, nil
		}
	}

	name := described
	for i := 2; n.used[name]; i++ {
		name = described + " " + strconv.Itoa(i)
	}
	n.used[name] = true
	return name, nil
}

// Used reports whether name has been handed out.
func (n *Namer) Used(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.used[name]
}

// Reset forgets every name handed out so far.
func (n *Namer) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.used = make(map[string]bool)
}
