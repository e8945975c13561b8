// SPDX-License-Identifier: MIT
package themes

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidHex is returned for anything other than #RRGGBB
	ErrInvalidHex = errors.New("invalid hex color")
	// ErrInvalidHSL is returned when a triplet is not "H S% L%"
	ErrInvalidHSL = errors.New("invalid hsl triplet")
)

var hexPattern = regexp.MustCompile(`(?i)^#[0-9A-F]{6}$`)

// ValidHex reports whether s is a #RRGGBB color, in either case
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// HSL is a color in the "H S% L%" notation used by the legacy palettes.
// H is in degrees, S and L in percent.
type HSL struct {
	H float64
	S float64
	L float64
}

// String formats the color as a CSS variable value, e.g. "346.8 77.2% 49.8%"
func (c HSL) String() string {
	return formatNumber(c.H) + " " + formatNumber(c.S) + "% " + formatNumber(c.L) + "%"
}

// HexToHSL converts #RRGGBB to HSL with every component rounded to the
// nearest integer
func HexToHSL(hex string) (HSL, error) {
	if !ValidHex(hex) {
		return HSL{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return HSL{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}

	h, s, l := c.Hsl()
	return HSL{
		H: math.Round(h),
		S: math.Round(s * 100),
		L: math.Round(l * 100),
	}, nil
}

// ParseHSL parses a "H S% L%" triplet
func ParseHSL(s string) (HSL, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return HSL{}, fmt.Errorf("%w: %q", ErrInvalidHSL, s)
	}

	h, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return HSL{}, fmt.Errorf("%w: hue %q", ErrInvalidHSL, fields[0])
	}

	var pct [2]float64
	for i, f := range fields[1:] {
		if !strings.HasSuffix(f, "%") {
			return HSL{}, fmt.Errorf("%w: %q is not a percentage", ErrInvalidHSL, f)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: %q", ErrInvalidHSL, f)
		}
		pct[i] = v
	}

	return HSL{H: h, S: pct[0], L: pct[1]}, nil
}

// AdjustLightness shifts lightness by delta percentage points, clamped to
// [0,100]. Float noise from the addition (60.2-50 giving 10.200000000000003)
// is rounded away at 1e-9; input precision such as 33.33 is kept.
func AdjustLightness(c HSL, delta float64) HSL {
	l := c.L + delta
	if l < 0 {
		l = 0
	}
	if l > 100 {
		l = 100
	}
	c.L = math.Round(l*1e9) / 1e9
	return c
}

// ToHex converts back to #rrggbb, used for terminal swatches
func (c HSL) ToHex() string {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped().Hex()
}

// formatNumber prints the shortest decimal form: 1 not 1.0, 0.75 not 0.750
func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
