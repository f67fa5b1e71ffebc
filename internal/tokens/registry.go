// Package tokens holds the in-memory design-token registry a session edits.
//
// A Registry is an owned value: whoever creates it passes it to the code that
// needs it. Nothing is persisted.
package tokens

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/asteroid-belt/themebuddy/internal/color"
)

var (
	// ErrTokenNotFound is returned when a token name is not registered.
	ErrTokenNotFound = errors.New("token not found")

	// ErrUnknownMode is returned when a value targets a mode the registry lacks.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrInvalidValue is returned when a value does not fit the token kind.
	ErrInvalidValue = errors.New("invalid token value")
)

// Kind is the type of value a token stores.
type Kind string

const (
	KindColor      Kind = "color"
	KindGradient   Kind = "gradient"
	KindDimension  Kind = "dimension"
	KindFontFamily Kind = "fontFamily"
	KindFontWeight Kind = "fontWeight"
	KindNumber     Kind = "number"
	KindString     Kind = "string"
)

// Kinds lists every token kind.
func Kinds() []Kind {
	return []Kind{KindColor, KindGradient, KindDimension, KindFontFamily, KindFontWeight, KindNumber, KindString}
}

// ParseKind matches a kind by name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown token kind %q", s)
}

// Token is a named design value with one entry per mode.
type Token struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        Kind              `json:"kind" yaml:"kind"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Values      map[string]string `json:"values" yaml:"values"`
}

// Value returns the token value for mode.
func (t Token) Value(mode string) (string, bool) {
	v, ok := t.Values[mode]
	return v, ok
}

func (t Token) clone() Token {
	values := make(map[string]string, len(t.Values))
	for k, v := range t.Values {
		values[k] = v
	}
	t.Values = values
	return t
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Kind   Kind
	Prefix string
}

func (f Filter) match(t Token) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	return strings.HasPrefix(t.Name, f.Prefix)
}

// Registry is a mode-aware map of tokens. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	modes  []string
	tokens map[string]Token
}

// DefaultModes are used when New is called without modes.
var DefaultModes = []string{string(color.ModeLight), string(color.ModeDark)}

// New creates an empty registry with the given modes.
func New(modes ...string) *Registry {
	if len(modes) == 0 {
		modes = DefaultModes
	}
	return &Registry{
		modes:  append([]string(nil), modes...),
		tokens: make(map[string]Token),
	}
}

// Register adds t, replacing any token with the same name. Values are
// validated and color values normalized.
func (r *Registry) Register(t Token) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("token name is required")
	}
	if t.Kind == "" {
		t.Kind = KindString
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t = t.clone()
	for mode, v := range t.Values {
		if !r.hasMode(mode) {
			return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
		}
		norm, err := validate(t.Kind, v)
		if err != nil {
			return fmt.Errorf("token %s (%s): %w", t.Name, mode, err)
		}
		t.Values[mode] = norm
	}

	r.tokens[t.Name] = t
	return nil
}

// Get returns a copy of the named token.
func (r *Registry) Get(name string) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[name]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrTokenNotFound, name)
	}
	return t.clone(), nil
}

// Set changes the value of an existing token in one mode and returns the
// stored (normalized) value.
func (r *Registry) Set(name, mode, value string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, name)
	}
	if !r.hasMode(mode) {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	norm, err := validate(t.Kind, value)
	if err != nil {
		return "", fmt.Errorf("token %s (%s): %w", name, mode, err)
	}

	t = t.clone()
	t.Values[mode] = norm
	r.tokens[name] = t
	return norm, nil
}

// Delete removes a token. Deleting a missing token is an error.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[name]; !ok {
		return fmt.Errorf("%w: %s", ErrTokenNotFound, name)
	}
	delete(r.tokens, name)
	return nil
}

// List returns copies of the tokens matching f, sorted by name.
func (r *Registry) List(f Filter) []Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		if f.match(t) {
			out = append(out, t.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every token name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tokens))
	for name := range r.tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modes returns the registry's modes in creation order.
func (r *Registry) Modes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.modes...)
}

// Len is the number of registered tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := New(r.modes...)
	for name, t := range r.tokens {
		c.tokens[name] = t.clone()
	}
	return c
}

func (r *Registry) hasMode(mode string) bool {
	for _, m := range r.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// NormalizeValue checks value against kind and returns its canonical form,
// such as an upper-case #RRGGBB for colors.
func NormalizeValue(kind Kind, value string) (string, error) {
	return validate(kind, value)
}

// InferKind guesses the kind of a value written without one. Colors need
// a leading '#' so that "100000" stays a number.
func InferKind(value string) Kind {
	value = strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(value, "#") && color.IsHex(value):
		return KindColor
	case strings.Contains(value, "gradient("):
		return KindGradient
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return KindNumber
	}
	if _, _, err := ParseDimension(value); err == nil {
		return KindDimension
	}
	return KindString
}

func validate(kind Kind, value string) (string, error) {
	value = strings.TrimSpace(value)

	switch kind {
	case KindColor:
		norm, err := color.Normalize(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return norm, nil
	case KindNumber, KindFontWeight:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", fmt.Errorf("%w: %q is not a number", ErrInvalidValue, value)
		}
	case KindDimension:
		if _, _, err := ParseDimension(value); err != nil {
			return "", err
		}
	case KindGradient, KindFontFamily, KindString:
		if value == "" && kind != KindString {
			return "", fmt.Errorf("%w: empty %s", ErrInvalidValue, kind)
		}
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidValue, kind)
	}
	return value, nil
}

var dimensionUnits = []string{"px", "rem", "em", "%", "pt"}

// ParseDimension splits a value such as "16px" or "1.5rem" into its number
// and unit. A bare number is treated as pixels.
func ParseDimension(value string) (float64, string, error) {
	value = strings.TrimSpace(value)
	unit := "px"
	num := value
	for _, u := range dimensionUnits {
		if strings.HasSuffix(value, u) {
			unit = u
			num = strings.TrimSuffix(value, u)
			break
		}
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q is not a dimension", ErrInvalidValue, value)
	}
	return n, unit, nil
}
