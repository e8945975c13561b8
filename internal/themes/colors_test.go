// SPDX-License-Identifier: MIT
package themes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#ffffff", "0 0% 100%"},
		{"#000000", "0 0% 0%"},
		{"#FFFFFF", "0 0% 100%"},
		{"#ff0000", "0 100% 50%"},
		{"#00ff00", "120 100% 50%"},
		{"#0000ff", "240 100% 50%"},
		{"#FF69B4", "330 100% 71%"},
		{"#808080", "0 0% 50%"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := HexToHSL(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestHexToHSLRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "#fff", "ffffff", "#gggggg", "#1234567", " #ffffff", "#ffffff "} {
		_, err := HexToHSL(in)
		if !errors.Is(err, ErrInvalidHex) {
			t.Errorf("HexToHSL(%q) error = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestValidHex(t *testing.T) {
	assert.True(t, ValidHex("#abcdef"))
	assert.True(t, ValidHex("#ABCDEF"))
	assert.True(t, ValidHex("#aBc123"))
	assert.False(t, ValidHex("#abcde"))
	assert.False(t, ValidHex("abcdef"))
	assert.False(t, ValidHex("#abcdeg"))
}

func TestParseHSL(t *testing.T) {
	c, err := ParseHSL("346.8 77.2% 49.8%")
	require.NoError(t, err)
	assert.Equal(t, HSL{H: 346.8, S: 77.2, L: 49.8}, c)
	assert.Equal(t, "346.8 77.2% 49.8%", c.String())

	for _, bad := range []string{"", "0 0 0", "0 0%", "x 0% 0%", "0 y% 0%", "0 0% 0% 0%"} {
		_, err := ParseHSL(bad)
		assert.ErrorIs(t, err, ErrInvalidHSL, "input %q", bad)
	}
}

func TestAdjustLightnessClamps(t *testing.T) {
	base := HSL{H: 200, S: 50, L: 40}
	for _, delta := range []float64{-1e9, -400, -41, -40, -1, 0, 1, 59, 60, 61, 400, 1e9} {
		got := AdjustLightness(base, delta)
		if got.L < 0 || got.L > 100 {
			t.Errorf("AdjustLightness(%v, %v).L = %v, outside [0,100]", base, delta, got.L)
		}
		assert.Equal(t, base.H, got.H)
		assert.Equal(t, base.S, got.S)
	}

	assert.Equal(t, "200 50% 0%", AdjustLightness(base, -1e9).String())
	assert.Equal(t, "200 50% 100%", AdjustLightness(base, 1e9).String())
	assert.Equal(t, "200 50% 25%", AdjustLightness(base, -15).String())
}

func TestAdjustLightnessDropsFloatNoise(t *testing.T) {
	c, err := ParseHSL("0 84.2% 60.2%")
	require.NoError(t, err)
	assert.Equal(t, "0 84.2% 10.2%", AdjustLightness(c, -50).String())
}

func TestAdjustLightnessKeepsInputPrecision(t *testing.T) {
	c, err := ParseHSL("210 40% 33.33%")
	require.NoError(t, err)
	assert.Equal(t, "210 40% 33.33%", AdjustLightness(c, 0).String())
	assert.Equal(t, "210 40% 43.33%", AdjustLightness(c, 10).String())
	assert.Equal(t, "210 40% 100%", AdjustLightness(c, 80).String())
}

func TestHSLToHex(t *testing.T) {
	c, err := HexToHSL("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.ToHex())
	assert.Equal(t, "#ffffff", HSL{L: 100}.ToHex())
}
