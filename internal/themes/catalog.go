// SPDX-License-Identifier: MIT
package themes

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/base_colors.yaml
var baseColorsYAML []byte

//go:embed data/base_colors_oklch.yaml
var baseColorsOKLCHYAML []byte

// DefaultTheme is the theme a fresh customizer starts with
const DefaultTheme = "zinc"

// CustomThemeName selects the palette derived from user supplied hex colors
const CustomThemeName = "custom"

// neutralThemes are grayscale palettes hidden from the color picker
var neutralThemes = map[string]bool{
	"slate":   true,
	"stone":   true,
	"gray":    true,
	"neutral": true,
}

type catalog struct {
	themes []*Theme
	byName map[string]*Theme
	oklch  map[string]*ThemeOKLCH
}

var loadCatalog = sync.OnceValues(func() (*catalog, error) {
	return parseCatalog(baseColorsYAML, baseColorsOKLCHYAML)
})

func parseCatalog(legacy, oklch []byte) (*catalog, error) {
	c := &catalog{
		byName: make(map[string]*Theme),
		oklch:  make(map[string]*ThemeOKLCH),
	}

	if err := yaml.Unmarshal(legacy, &c.themes); err != nil {
		return nil, fmt.Errorf("failed to parse base colors: %w", err)
	}
	for _, t := range c.themes {
		if t.Name == "" {
			return nil, fmt.Errorf("base colors: theme without a name")
		}
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("base colors: duplicate theme %q", t.Name)
		}
		c.byName[t.Name] = t
	}

	if err := yaml.Unmarshal(oklch, &c.oklch); err != nil {
		return nil, fmt.Errorf("failed to parse oklch colors: %w", err)
	}
	for name, t := range c.oklch {
		t.Name = name
	}

	return c, nil
}

func mustCatalog() *catalog {
	c, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// GetTheme returns a legacy HSL theme by name, or nil if unknown
func GetTheme(name string) *Theme {
	return mustCatalog().byName[name]
}

// GetThemeOKLCH returns the OKLCH variant of a theme by name, or nil if unknown
func GetThemeOKLCH(name string) *ThemeOKLCH {
	return mustCatalog().oklch[name]
}

// ListThemes returns every catalog theme in catalog order
func ListThemes() []*Theme {
	c := mustCatalog()
	out := make([]*Theme, len(c.themes))
	copy(out, c.themes)
	return out
}

// ColorThemes returns the themes offered by the color picker, which leaves
// out the grayscale palettes
func ColorThemes() []*Theme {
	var out []*Theme
	for _, t := range mustCatalog().themes {
		if !neutralThemes[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

// IsNeutral reports whether a theme is one of the grayscale palettes
func IsNeutral(name string) bool {
	return neutralThemes[name]
}

// DisplayLabel is the picker label; zinc is presented as the default theme
func (t *Theme) DisplayLabel() string {
	if t.Name == DefaultTheme {
		return "Default"
	}
	return t.Label
}
