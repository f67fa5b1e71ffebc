package tokens

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *Registry {
	t.Helper()
	r := New()
	require.NoError(t, r.Register(Token{
		Name:   "color/primary/500",
		Kind:   KindColor,
		Values: map[string]string{"light": "#3366ff", "dark": "99BBFF"},
	}))
	require.NoError(t, r.Register(Token{
		Name:   "spacing/md",
		Kind:   KindDimension,
		Values: map[string]string{"light": "16px", "dark": "16px"},
	}))
	require.NoError(t, r.Register(Token{
		Name:   "font/body",
		Kind:   KindFontFamily,
		Values: map[string]string{"light": "Inter", "dark": "Inter"},
	}))
	return r
}

func TestNew_DefaultModes(t *testing.T) {
	r := New()
	assert.Equal(t, []string{"light", "dark"}, r.Modes())
	assert.Equal(t, 0, r.Len())

	r = New("day", "night", "contrast")
	assert.Equal(t, []string{"day", "night", "contrast"}, r.Modes())
}

func TestRegister_NormalizesColors(t *testing.T) {
	r := seeded(t)

	tok, err := r.Get("color/primary/500")
	require.NoError(t, err)
	assert.Equal(t, "#3366FF", tok.Values["light"])
	assert.Equal(t, "#99BBFF", tok.Values["dark"])
}

func TestRegister_Rejects(t *testing.T) {
	r := New()

	err := r.Register(Token{Name: "", Kind: KindColor})
	assert.Error(t, err)

	err = r.Register(Token{Name: "c", Kind: KindColor, Values: map[string]string{"light": "blue"}})
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = r.Register(Token{Name: "c", Kind: KindColor, Values: map[string]string{"sepia": "#000000"}})
	assert.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, 0, r.Len())
}

func TestRegister_DoesNotAliasCallerMap(t *testing.T) {
	r := New()
	values := map[string]string{"light": "#000000"}
	require.NoError(t, r.Register(Token{Name: "ink", Kind: KindColor, Values: values}))

	values["light"] = "#FFFFFF"

	tok, err := r.Get("ink")
	require.NoError(t, err)
	assert.Equal(t, "#000000", tok.Values["light"])
}

func TestSet(t *testing.T) {
	r := seeded(t)

	stored, err := r.Set("color/primary/500", "dark", "abcdef")
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", stored)

	tok, _ := r.Get("color/primary/500")
	v, ok := tok.Value("dark")
	require.True(t, ok)
	assert.Equal(t, "#ABCDEF", v)
	assert.Equal(t, "#3366FF", tok.Values["light"])
}

func TestSet_Errors(t *testing.T) {
	r := seeded(t)

	_, err := r.Set("missing", "light", "#000000")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = r.Set("color/primary/500", "sepia", "#000000")
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = r.Set("color/primary/500", "light", "#GGGGGG")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = r.Set("spacing/md", "light", "wide")
	assert.ErrorIs(t, err, ErrInvalidValue)

	// Failed sets leave the value alone.
	tok, _ := r.Get("color/primary/500")
	assert.Equal(t, "#3366FF", tok.Values["light"])
}

func TestDelete(t *testing.T) {
	r := seeded(t)

	require.NoError(t, r.Delete("font/body"))
	assert.Equal(t, 2, r.Len())

	_, err := r.Get("font/body")
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.ErrorIs(t, r.Delete("font/body"), ErrTokenNotFound)
}

func TestList(t *testing.T) {
	r := seeded(t)

	all := r.List(Filter{})
	require.Len(t, all, 3)
	assert.Equal(t, "color/primary/500", all[0].Name)
	assert.Equal(t, "font/body", all[1].Name)
	assert.Equal(t, "spacing/md", all[2].Name)

	colors := r.List(Filter{Kind: KindColor})
	require.Len(t, colors, 1)

	prefixed := r.List(Filter{Prefix: "spacing/"})
	require.Len(t, prefixed, 1)
	assert.Equal(t, "spacing/md", prefixed[0].Name)

	assert.Equal(t, []string{"color/primary/500", "font/body", "spacing/md"}, r.Names())
}

func TestClone_IsIndependent(t *testing.T) {
	r := seeded(t)
	c := r.Clone()

	_, err := c.Set("color/primary/500", "light", "#000000")
	require.NoError(t, err)
	require.NoError(t, c.Delete("font/body"))

	orig, _ := r.Get("color/primary/500")
	assert.Equal(t, "#3366FF", orig.Values["light"])
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, c.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("n/%02d", i)
			assert.NoError(t, r.Register(Token{Name: name, Kind: KindNumber, Values: map[string]string{"light": "1"}}))
			_, err := r.Set(name, "dark", fmt.Sprint(i))
			assert.NoError(t, err)
			_ = r.List(Filter{Kind: KindNumber})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, r.Len())
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		num  float64
		unit string
	}{
		{"16px", 16, "px"},
		{"1.5rem", 1.5, "rem"},
		{"2em", 2, "em"},
		{"50%", 50, "%"},
		{"8", 8, "px"},
	}
	for _, tt := range tests {
		n, u, err := ParseDimension(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.num, n)
		assert.Equal(t, tt.unit, u)
	}

	_, _, err := ParseDimension("big")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("fontfamily")
	require.NoError(t, err)
	assert.Equal(t, KindFontFamily, k)

	_, err = ParseKind("texture")
	assert.Error(t, err)
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"#3366ff", KindColor},
		{"100000", KindNumber},
		{"1.5rem", KindDimension},
		{"linear-gradient(90deg, #FFFFFF 0%, #000000 100%)", KindGradient},
		{"Inter", KindString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferKind(tt.in), tt.in)
	}
}

func TestNormalizeValue(t *testing.T) {
	v, err := NormalizeValue(KindColor, " #3366ff ")
	require.NoError(t, err)
	assert.Equal(t, "#3366FF", v)

	_, err = NormalizeValue(KindNumber, "heavy")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
