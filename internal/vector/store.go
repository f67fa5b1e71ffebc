// Package vector matches free-form descriptions to moods by embedding
// similarity, for descriptions that use none of the mood keywords.
package vector

import (
	"errors"
	"strings"

	"github.com/asteroid-belt/themebuddy/internal/color"
	"github.com/asteroid-belt/themebuddy/internal/hash"
)

// ErrNoMatch is returned when no mood is similar enough to the text.
var ErrNoMatch = errors.New("no mood close enough")

// Config holds mood index configuration.
type Config struct {
	// DataDir is where chromem-go persists vectors. Empty keeps the index
	// in memory.
	DataDir string

	// OpenAI settings for embeddings. Without a key the index embeds
	// locally.
	OpenAIKey string
	Model     string

	// MinSimilarity is the cosine similarity a match needs (0.0-1.0).
	MinSimilarity float32
}

// Match is a mood with its similarity to the query.
type Match struct {
	Mood       color.Mood `json:"mood"`
	Similarity float32    `json:"similarity"`
}

// MoodContent is the text embedded for a mood. The name is repeated for
// emphasis.
func MoodContent(info color.MoodInfo) string {
	parts := []string{string(info.Mood), string(info.Mood)}
	parts = append(parts, info.Keywords...)
	return strings.Join(parts, " ")
}

// ContentHash identifies embedded content so unchanged moods are not
// embedded again.
func ContentHash(content string) string {
	return hash.TruncatedSHA256(content)
}
