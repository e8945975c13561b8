// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Palette maps role names to color values and remembers insertion order
type Palette struct {
	keys   []string
	values map[string]string
}

// NewPalette builds a palette from alternating key/value pairs
func NewPalette(pairs ...string) *Palette {
	if len(pairs)%2 != 0 {
		panic("themes: NewPalette needs key/value pairs")
	}
	p := &Palette{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		p.set(pairs[i], pairs[i+1])
	}
	return p
}

func (p *Palette) set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for a role and whether the palette defines it
func (p *Palette) Get(role string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[role]
	return v, ok
}

// Value returns the value for a role, or "" when the role is missing
func (p *Palette) Value(role string) string {
	v, _ := p.Get(role)
	return v
}

// Keys returns role names in insertion order
func (p *Palette) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of roles defined
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// UnmarshalYAML decodes a mapping node while keeping key order
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("palette: expected mapping, got node kind %d at line %d", node.Kind, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("palette: role %q at line %d is not a scalar", key.Value, key.Line)
		}
		p.set(key.Value, val.Value)
	}
	return nil
}

// Variants holds the light and dark palettes of one theme
type Variants struct {
	Light *Palette `yaml:"light"`
	Dark  *Palette `yaml:"dark"`
}

// ActiveColor is the swatch shown for a theme in the picker, per mode
type ActiveColor struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// Theme is a named palette in the legacy HSL triplet encoding
type Theme struct {
	Name        string      `yaml:"name"`
	Label       string      `yaml:"label"`
	ActiveColor ActiveColor `yaml:"activeColor"`
	CSSVars     Variants    `yaml:"cssVars"`
}

// ThemeOKLCH is a named palette in the OKLCH encoding
type ThemeOKLCH struct {
	Name  string
	Light *Palette `yaml:"light"`
	Dark  *Palette `yaml:"dark"`
}
