// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"strings"
)

// Destructive colors do not follow the user's input
var (
	customDestructiveLight = HSL{H: 0, S: 84.2, L: 60.2}
	customDestructiveDark  = HSL{H: 0, S: 62.8, L: 30.6}
)

// CustomStyleID identifies the style override holding a custom theme
const CustomStyleID = "theme-custom-style"

type colorSource int

const (
	fromBase colorSource = iota
	fromPrimary
	fromDestructive
)

// shade derives one role from a source color and a lightness delta
type shade struct {
	role   string
	source colorSource
	delta  float64
}

var customLight = []shade{
	{"background", fromBase, 0},
	{"foreground", fromBase, -85},
	{"card", fromBase, 0},
	{"card-foreground", fromBase, -85},
	{"popover", fromBase, 0},
	{"popover-foreground", fromBase, -85},
	{"primary", fromPrimary, 0},
	{"primary-foreground", fromBase, -2},
	{"secondary", fromBase, -4},
	{"secondary-foreground", fromBase, -85},
	{"muted", fromBase, -4},
	{"muted-foreground", fromBase, -50},
	{"accent", fromBase, -4},
	{"accent-foreground", fromBase, -85},
	{"destructive", fromDestructive, 0},
	{"destructive-foreground", fromBase, -2},
	{"border", fromBase, -10},
	{"input", fromBase, -10},
	{"ring", fromPrimary, 0},
}

var customDark = []shade{
	{"background", fromBase, -90},
	{"foreground", fromBase, -2},
	{"card", fromBase, -90},
	{"card-foreground", fromBase, -2},
	{"popover", fromBase, -90},
	{"popover-foreground", fromBase, -2},
	{"primary", fromPrimary, 0},
	{"primary-foreground", fromBase, -90},
	{"secondary", fromBase, -80},
	{"secondary-foreground", fromBase, -2},
	{"muted", fromBase, -80},
	{"muted-foreground", fromBase, -35},
	{"accent", fromBase, -80},
	{"accent-foreground", fromBase, -2},
	{"destructive", fromDestructive, 0},
	{"destructive-foreground", fromBase, -2},
	{"border", fromBase, -80},
	{"input", fromBase, -80},
	{"ring", fromPrimary, 10},
}

// GenerateCustomPalette derives light and dark palettes covering the core
// roles from a base and a primary hex color
func GenerateCustomPalette(baseHex, primaryHex string) (Variants, error) {
	base, err := HexToHSL(baseHex)
	if err != nil {
		return Variants{}, fmt.Errorf("base color: %w", err)
	}
	primary, err := HexToHSL(primaryHex)
	if err != nil {
		return Variants{}, fmt.Errorf("primary color: %w", err)
	}

	build := func(shades []shade, destructive HSL) *Palette {
		p := &Palette{}
		for _, s := range shades {
			var c HSL
			switch s.source {
			case fromPrimary:
				c = AdjustLightness(primary, s.delta)
			case fromDestructive:
				c = destructive
			default:
				c = AdjustLightness(base, s.delta)
			}
			p.set(s.role, c.String())
		}
		return p
	}

	return Variants{
		Light: build(customLight, customDestructiveLight),
		Dark:  build(customDark, customDestructiveDark),
	}, nil
}

// CustomTheme wraps a derived palette as a Theme so every emitter can use it
func CustomTheme(baseHex, primaryHex string) (*Theme, error) {
	vars, err := GenerateCustomPalette(baseHex, primaryHex)
	if err != nil {
		return nil, err
	}
	return &Theme{
		Name:  CustomThemeName,
		Label: "Custom",
		ActiveColor: ActiveColor{
			Light: vars.Light.Value("primary"),
			Dark:  vars.Dark.Value("primary"),
		},
		CSSVars: vars,
	}, nil
}

// GenerateCustomThemeCSS renders the .theme-custom rule blocks for a pair of
// hex colors
func GenerateCustomThemeCSS(baseHex, primaryHex string) (string, error) {
	vars, err := GenerateCustomPalette(baseHex, primaryHex)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeRule(&b, ".theme-custom", vars.Light)
	b.WriteString("\n")
	writeRule(&b, ".dark .theme-custom", vars.Dark)
	return b.String(), nil
}

func writeRule(b *strings.Builder, selector string, p *Palette) {
	b.WriteString(selector + " {\n")
	for _, key := range p.Keys() {
		fmt.Fprintf(b, "  --%s: %s;\n", key, p.Value(key))
	}
	b.WriteString("}\n")
}
