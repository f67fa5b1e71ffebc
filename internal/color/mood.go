package color

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrUnknownMood is returned for a mood that has no palette.
	ErrUnknownMood = errors.New("unknown mood")

	// ErrNoMood is returned when a description contains no mood words.
	ErrNoMood = errors.New("no mood found in description")
)

// Mood is a named emotional theme with an associated palette.
type Mood string

const (
	MoodCalm         Mood = "calm"
	MoodEnergetic    Mood = "energetic"
	MoodPlayful      Mood = "playful"
	MoodElegant      Mood = "elegant"
	MoodNatural      Mood = "natural"
	MoodRomantic     Mood = "romantic"
	MoodMysterious   Mood = "mysterious"
	MoodProfessional Mood = "professional"
	MoodWarm         Mood = "warm"
	MoodCool         Mood = "cool"
	MoodRetro        Mood = "retro"
	MoodMinimal      Mood = "minimal"
)

// moodWords maps description words to moods.
var moodWords = map[string]Mood{
	"calm": MoodCalm, "serene": MoodCalm, "peaceful": MoodCalm, "relaxing": MoodCalm,
	"tranquil": MoodCalm, "soothing": MoodCalm, "zen": MoodCalm,

	"energetic": MoodEnergetic, "vibrant": MoodEnergetic, "bold": MoodEnergetic,
	"exciting": MoodEnergetic, "dynamic": MoodEnergetic, "sporty": MoodEnergetic, "electric": MoodEnergetic,

	"playful": MoodPlayful, "fun": MoodPlayful, "cheerful": MoodPlayful, "happy": MoodPlayful,
	"whimsical": MoodPlayful, "kids": MoodPlayful, "candy": MoodPlayful,

	"elegant": MoodElegant, "luxurious": MoodElegant, "luxury": MoodElegant,
	"sophisticated": MoodElegant, "classy": MoodElegant, "refined": MoodElegant,

	"natural": MoodNatural, "organic": MoodNatural, "earthy": MoodNatural, "forest": MoodNatural,
	"botanical": MoodNatural, "eco": MoodNatural,

	"romantic": MoodRomantic, "love": MoodRomantic, "dreamy": MoodRomantic, "tender": MoodRomantic,
	"wedding": MoodRomantic, "soft": MoodRomantic,

	"mysterious": MoodMysterious, "dark": MoodMysterious, "moody": MoodMysterious,
	"gothic": MoodMysterious, "enigmatic": MoodMysterious, "night": MoodMysterious,

	"professional": MoodProfessional, "corporate": MoodProfessional, "trustworthy": MoodProfessional,
	"business": MoodProfessional, "finance": MoodProfessional, "serious": MoodProfessional,

	"warm": MoodWarm, "cozy": MoodWarm, "autumn": MoodWarm, "sunset": MoodWarm, "spicy": MoodWarm,

	"cool": MoodCool, "icy": MoodCool, "winter": MoodCool, "ocean": MoodCool, "fresh": MoodCool,
	"aquatic": MoodCool,

	"retro": MoodRetro, "vintage": MoodRetro, "nostalgic": MoodRetro, "70s": MoodRetro,
	"80s": MoodRetro, "classic": MoodRetro,

	"minimal": MoodMinimal, "simple": MoodMinimal, "clean": MoodMinimal, "modern": MoodMinimal,
	"neutral": MoodMinimal, "scandinavian": MoodMinimal,
}

// moodPalettes holds the seed colors for each mood.
var moodPalettes = map[Mood][]string{
	MoodCalm:         {"#A8DADC", "#457B9D", "#88B04B", "#B5D3E7", "#6B9AC4"},
	MoodEnergetic:    {"#FF3B30", "#FF9500", "#FFCC00", "#FF2D55", "#34C759"},
	MoodPlayful:      {"#FF6F91", "#FFC75F", "#845EC2", "#00C9A7", "#F9F871"},
	MoodElegant:      {"#2C2C54", "#B08D57", "#474787", "#6D214F", "#1B1B2F"},
	MoodNatural:      {"#606C38", "#283618", "#DDA15E", "#BC6C25", "#8A9A5B"},
	MoodRomantic:     {"#E8A0BF", "#BA90C6", "#C0DBEA", "#F7C8E0", "#D14D72"},
	MoodMysterious:   {"#2D033B", "#810CA8", "#1B262C", "#3F0071", "#150050"},
	MoodProfessional: {"#1F4E79", "#2E75B6", "#404040", "#00587A", "#0F3057"},
	MoodWarm:         {"#E76F51", "#F4A261", "#E9C46A", "#D62828", "#F77F00"},
	MoodCool:         {"#0077B6", "#00B4D8", "#48CAE4", "#023E8A", "#90E0EF"},
	MoodRetro:        {"#F2A541", "#D9594C", "#3C8D93", "#F4E1C1", "#8C5E58"},
	MoodMinimal:      {"#2B2D42", "#8D99AE", "#EDF2F4", "#5C677D", "#D90429"},
}

// moodKeywords returns every word that maps to m, sorted.
func moodKeywords(m Mood) []string {
	var words []string
	for w, mood := range moodWords {
		if mood == m {
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return words
}

// SpreadStyle is how a mood palette is spread out from its seed color.
type SpreadStyle string

const (
	SpreadMonochromatic SpreadStyle = "monochromatic"
	SpreadAnalogous     SpreadStyle = "analogous"
)

// MoodResult is a generated mood palette.
type MoodResult struct {
	Mood   Mood        `json:"mood"`
	Seed   string      `json:"seed"`
	Style  SpreadStyle `json:"style"`
	Colors []string    `json:"colors"`
}

// MoodInfo describes a mood for listings and indexing.
type MoodInfo struct {
	Mood     Mood     `json:"mood"`
	Keywords []string `json:"keywords"`
	Palette  []string `json:"palette"`
}

// Moods lists every mood, sorted by name.
func Moods() []Mood {
	out := make([]Mood, 0, len(moodPalettes))
	for m := range moodPalettes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DescribeMood returns the keywords and palette of m.
func DescribeMood(m Mood) (MoodInfo, error) {
	palette, ok := moodPalettes[m]
	if !ok {
		return MoodInfo{}, fmt.Errorf("%w: %q", ErrUnknownMood, m)
	}
	return MoodInfo{
		Mood:     m,
		Keywords: moodKeywords(m),
		Palette:  append([]string(nil), palette...),
	}, nil
}

// ParseMood matches a mood by name.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := moodPalettes[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
	return m, nil
}

// MoodForText returns the mood of the first word in text that has one.
func MoodForText(text string) (Mood, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if m, ok := moodWords[w]; ok {
			return m, true
		}
	}
	return "", false
}

// MoodPalette picks a random seed from mood's palette and spreads it into
// count colors. An empty style is chosen at random. A nil rng uses the global
// source.
func MoodPalette(mood Mood, count int, style SpreadStyle, rng *rand.Rand) (MoodResult, error) {
	palette, ok := moodPalettes[mood]
	if !ok {
		return MoodResult{}, fmt.Errorf("%w: %q", ErrUnknownMood, mood)
	}
	if count < 1 {
		return MoodResult{}, fmt.Errorf("palette size must be at least 1, got %d", count)
	}

	if style == "" {
		if intN(rng, 2) == 0 {
			style = SpreadMonochromatic
		} else {
			style = SpreadAnalogous
		}
	}

	seed := palette[intN(rng, len(palette))]
	hsl, err := HexToHSL(seed)
	if err != nil {
		return MoodResult{}, err
	}

	var colors []string
	switch style {
	case SpreadMonochromatic:
		colors = spreadMonochromatic(hsl, count)
	case SpreadAnalogous:
		colors = spreadAnalogous(hsl, count)
	default:
		return MoodResult{}, fmt.Errorf("unknown spread style %q", style)
	}

	return MoodResult{Mood: mood, Seed: seed, Style: style, Colors: colors}, nil
}

// PaletteForText resolves the mood of text and builds its palette.
func PaletteForText(text string, count int, rng *rand.Rand) (MoodResult, error) {
	mood, ok := MoodForText(text)
	if !ok {
		return MoodResult{}, fmt.Errorf("%w: %q", ErrNoMood, text)
	}
	return MoodPalette(mood, count, "", rng)
}

// spreadMonochromatic keeps the seed first and fills the rest with evenly
// spaced lightness steps between 15% and 90%.
func spreadMonochromatic(seed HSL, count int) []string {
	out := []string{HSLToHex(seed)}
	rest := count - 1
	for i := 0; i < rest; i++ {
		l := 90.0
		if rest > 1 {
			l = 90 - 75*float64(i)/float64(rest-1)
		}
		out = append(out, HSLToHex(HSL{H: seed.H, S: seed.S, L: l}))
	}
	return out
}

// spreadAnalogous keeps the seed first and alternates hue steps of 20
// degrees either side of it.
func spreadAnalogous(seed HSL, count int) []string {
	out := []string{HSLToHex(seed)}
	for i := 1; i < count; i++ {
		step := float64((i+1)/2) * 20
		if i%2 == 0 {
			step = -step
		}
		out = append(out, HSLToHex(HSL{H: seed.H + step, S: seed.S, L: seed.L}))
	}
	return out
}
