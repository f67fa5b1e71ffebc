package color

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RGB
		ok   bool
	}{
		{"with hash", "#3366FF", RGB{0x33, 0x66, 0xFF}, true},
		{"lower case", "#3366ff", RGB{0x33, 0x66, 0xFF}, true},
		{"without hash", "A1B2C3", RGB{0xA1, 0xB2, 0xC3}, true},
		{"surrounding space", "  #000000 ", RGB{}, true},
		{"short form", "#FFF", RGB{}, false},
		{"not a color", "not-a-color", RGB{}, false},
		{"bad digits", "#GG0000", RGB{}, false},
		{"too long", "#1234567", RGB{}, false},
		{"signed", "+12345", RGB{}, false},
		{"empty", "", RGB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HexToRGB(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseHex_WrapsErrInvalidHex(t *testing.T) {
	_, err := ParseHex("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#3366FF", "#a1b2c3", "#0F0F0F", "#DC143C"} {
		rgb, ok := HexToRGB(hex)
		require.True(t, ok, hex)
		assert.True(t, strings.EqualFold(hex, RGBToHex(rgb)), "%s -> %s", hex, RGBToHex(rgb))
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				in := RGB{uint8(r), uint8(g), uint8(b)}
				out := HSLToRGB(RGBToHSL(in))
				assert.InDelta(t, int(in.R), int(out.R), 1, "R for %v", in)
				assert.InDelta(t, int(in.G), int(out.G), 1, "G for %v", in)
				assert.InDelta(t, int(in.B), int(out.B), 1, "B for %v", in)
			}
		}
	}
}

func TestRGBToHSL_KnownValues(t *testing.T) {
	red := RGBToHSL(RGB{255, 0, 0})
	assert.InDelta(t, 0, red.H, 0.01)
	assert.InDelta(t, 100, red.S, 0.01)
	assert.InDelta(t, 50, red.L, 0.01)

	gray := RGBToHSL(RGB{128, 128, 128})
	assert.Equal(t, 0.0, gray.S)
	assert.InDelta(t, 50.2, gray.L, 0.1)

	blue := RGBToHSL(RGB{0, 0, 255})
	assert.InDelta(t, 240, blue.H, 0.01)
}

func TestLab_KnownValues(t *testing.T) {
	white := RGBToLab(RGB{255, 255, 255})
	assert.InDelta(t, 100, white.L, 0.5)
	assert.InDelta(t, 0, white.A, 0.5)
	assert.InDelta(t, 0, white.B, 0.5)

	black := RGBToLab(RGB{0, 0, 0})
	assert.InDelta(t, 0, black.L, 0.01)

	red := RGBToLab(RGB{255, 0, 0})
	assert.InDelta(t, 53.24, red.L, 0.5)
	assert.InDelta(t, 80.09, red.A, 0.5)
	assert.InDelta(t, 67.20, red.B, 0.5)
}

func TestLabRoundTrip(t *testing.T) {
	for _, hex := range []string{"#3366FF", "#DC143C", "#10B981", "#F59E0B", "#7F7F7F"} {
		rgb, _ := HexToRGB(hex)
		back := LabToRGB(RGBToLab(rgb))
		assert.InDelta(t, int(rgb.R), int(back.R), 1, hex)
		assert.InDelta(t, int(rgb.G), int(back.G), 1, hex)
		assert.InDelta(t, int(rgb.B), int(back.B), 1, hex)
	}
}

func TestLCHRoundTrip(t *testing.T) {
	lab, err := HexToLab("#3366FF")
	require.NoError(t, err)

	lch := LabToLCH(lab)
	assert.GreaterOrEqual(t, lch.H, 0.0)
	assert.Less(t, lch.H, 360.0)

	back := LCHToLab(lch)
	assert.InDelta(t, lab.L, back.L, 1e-9)
	assert.InDelta(t, lab.A, back.A, 1e-9)
	assert.InDelta(t, lab.B, back.B, 1e-9)

	rgb, ok := HexToRGB(LCHToHex(lch))
	require.True(t, ok)
	assert.InDelta(t, 0x33, int(rgb.R), 1)
	assert.InDelta(t, 0x66, int(rgb.G), 1)
	assert.InDelta(t, 0xFF, int(rgb.B), 1)
}

func TestDeltaE(t *testing.T) {
	a, _ := HexToLab("#3366FF")
	assert.Equal(t, 0.0, DeltaE(a, a))

	white, _ := HexToLab("#FFFFFF")
	black, _ := HexToLab("#000000")
	assert.InDelta(t, 100, DeltaE(white, black), 0.5)
}

func TestBlend(t *testing.T) {
	start, err := Blend("#000000", "#FFFFFF", 0)
	require.NoError(t, err)
	assert.Equal(t, "#000000", start)

	end, err := Blend("#000000", "#FFFFFF", 1)
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", end)

	mid, err := Blend("#000000", "#FFFFFF", 0.5)
	require.NoError(t, err)
	lab, _ := HexToLab(mid)
	assert.InDelta(t, 50, lab.L, 1)

	_, err = Blend("bad", "#FFFFFF", 0.5)
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("abcdef")
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", got)

	_, err = Normalize("#abc")
	assert.ErrorIs(t, err, ErrInvalidHex)
}
