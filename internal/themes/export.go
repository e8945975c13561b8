// SPDX-License-Identifier: MIT
package themes

import "math"

// Default custom colors: white base, zinc-900 primary
const (
	DefaultBaseColor    = "#ffffff"
	DefaultPrimaryColor = "#18181b"
	DefaultRadius       = 0.5
)

// ExportConfig is the customizer state: the selected theme, the radius and,
// for the custom theme, the two hex inputs
type ExportConfig struct {
	Theme        string  `json:"theme"`
	Radius       float64 `json:"radius"`
	BaseColor    string  `json:"base_color,omitempty"`
	PrimaryColor string  `json:"primary_color,omitempty"`
}

// DefaultExportConfig returns the configuration a new visitor starts with
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Theme:        DefaultTheme,
		Radius:       DefaultRadius,
		BaseColor:    DefaultBaseColor,
		PrimaryColor: DefaultPrimaryColor,
	}
}

// IsCustom reports whether the configuration uses derived colors
func (c ExportConfig) IsCustom() bool {
	return c.Theme == CustomThemeName
}

// WithTheme selects a catalog theme or the custom theme. Unknown names leave
// the configuration unchanged.
func (c ExportConfig) WithTheme(name string) ExportConfig {
	if name == CustomThemeName || GetTheme(name) != nil {
		c.Theme = name
	}
	return c
}

// WithRadius sets the radius. Any finite number is accepted.
func (c ExportConfig) WithRadius(r float64) ExportConfig {
	if !math.IsNaN(r) && !math.IsInf(r, 0) {
		c.Radius = r
	}
	return c
}

// WithBaseColor accepts a #RRGGBB value; anything else keeps the previous one
func (c ExportConfig) WithBaseColor(hex string) ExportConfig {
	if ValidHex(hex) {
		c.BaseColor = hex
	}
	return c
}

// WithPrimaryColor accepts a #RRGGBB value; anything else keeps the previous one
func (c ExportConfig) WithPrimaryColor(hex string) ExportConfig {
	if ValidHex(hex) {
		c.PrimaryColor = hex
	}
	return c
}

// Resolve returns the legacy palette for the configuration: a catalog lookup,
// or a derived palette for the custom theme. nil when nothing resolves.
func (c ExportConfig) Resolve() *Theme {
	if c.IsCustom() {
		t, err := CustomTheme(c.BaseColor, c.PrimaryColor)
		if err != nil {
			return nil
		}
		return t
	}
	return GetTheme(c.Theme)
}

// ResolveOKLCH returns the OKLCH palette. Custom themes have none.
func (c ExportConfig) ResolveOKLCH() *ThemeOKLCH {
	if c.IsCustom() {
		return nil
	}
	return GetThemeOKLCH(c.Theme)
}
