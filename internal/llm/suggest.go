package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

// ErrNoSuggestion is returned when a model answer contains no hex colors.
var ErrNoSuggestion = errors.New("model suggested no colors")

var suggestHex = regexp.MustCompile(`#[0-9A-Fa-f]{6}\b`)

const suggestSystemPrompt = `You are a color designer. Given a short description of a brand, product or feeling, answer with a palette of exactly %d colors as hex codes like #1F4E79, one per line, most important first, each followed by a short name. Then one sentence explaining the palette. Use only 6-digit hex codes.`

// Suggestion is a palette proposed by a model.
type Suggestion struct {
	Colors    []string `json:"colors"`
	Rationale string   `json:"rationale,omitempty"`
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
}

// Suggester asks a provider for palettes, at most perMinute times a minute.
type Suggester struct {
	provider Provider
	limiter  *rate.Limiter
	opts     ChatOptions
}

// NewSuggester creates a Suggester. perMinute below one means one.
func NewSuggester(p Provider, perMinute int) *Suggester {
	if perMinute < 1 {
		perMinute = 1
	}
	return &Suggester{
		provider: p,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		opts:     ChatOptions{Temperature: 0.7},
	}
}

// Suggest asks for count colors matching description. The answer's hex
// codes are normalized, de-duplicated and capped at count.
func (s *Suggester) Suggest(ctx context.Context, description string, count int) (*Suggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("description is required")
	}
	if count < 1 {
		return nil, fmt.Errorf("palette size must be at least 1, got %d", count)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := s.provider.ChatSync(ctx, []Message{
		NewSystemMessage(fmt.Sprintf(suggestSystemPrompt, count)),
		NewUserMessage(description),
	}, s.opts)
	if err != nil {
		return nil, err
	}

	colors := ParseHexes(resp.Content, count)
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSuggestion, truncate(resp.Content, 80))
	}

	return &Suggestion{
		Colors:    colors,
		Rationale: rationale(resp.Content),
		Provider:  s.provider.Name(),
		Model:     resp.Model,
	}, nil
}

// ParseHexes returns the distinct hex colors in text, upper-cased, in order
// of appearance. A limit above zero caps the result.
func ParseHexes(text string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range suggestHex.FindAllString(text, -1) {
		hex, err := color.Normalize(m)
		if err != nil || seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// rationale is the last non-empty line that carries no color.
func rationale(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line != "" && !suggestHex.MatchString(line) {
			return line
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
