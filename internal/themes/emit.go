// SPDX-License-Identifier: MIT
package themes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported output dialects
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects an output dialect
type Format string

const (
	FormatV4       Format = "v4"
	FormatV3       Format = "v3"
	FormatRegistry Format = "registry"
	FormatCursor   Format = "cursor"
	FormatWindsurf Format = "windsurf"
)

// Formats lists every dialect in the order the export tabs show them
var Formats = []Format{FormatV4, FormatV3, FormatCursor, FormatWindsurf, FormatRegistry}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Label is the human readable tab name
func (f Format) Label() string {
	switch f {
	case FormatV4:
		return "Tailwind v4"
	case FormatV3:
		return "Tailwind v3"
	case FormatCursor:
		return "Cursor"
	case FormatWindsurf:
		return "Windsurf"
	case FormatRegistry:
		return "Registry item"
	}
	return string(f)
}

// FormatRadius prints a radius the way it appears in CSS and URLs
func FormatRadius(r float64) string {
	return formatNumber(r)
}

type dialect func(cfg ExportConfig, baseURL string) string

var dialects = map[Format]dialect{
	FormatV3: func(cfg ExportConfig, _ string) string {
		return ThemeCode(cfg.Resolve(), cfg.Radius)
	},
	FormatV4: func(cfg ExportConfig, _ string) string {
		return ThemeCodeOKLCH(cfg.ResolveOKLCH(), cfg.Radius)
	},
	FormatRegistry: func(cfg ExportConfig, _ string) string {
		return RegistryItem(cfg.Resolve(), cfg.Radius)
	},
	FormatCursor:   mcpDialect,
	FormatWindsurf: mcpDialect,
}

// mcpDialect points the editor at the registry endpoint, so only the
// pre-built (theme, radius) pairs have an MCP config
func mcpDialect(cfg ExportConfig, baseURL string) string {
	if !IsStaticParam(cfg.Theme, FormatRadius(cfg.Radius)) {
		return ""
	}
	return MCPConfig(baseURL, cfg.Theme, cfg.Radius)
}

// Render produces the export payload for a configuration in the requested
// dialect. An unresolvable theme yields "".
func Render(format Format, cfg ExportConfig, baseURL string) string {
	d, ok := dialects[format]
	if !ok {
		return ""
	}
	return d(cfg, baseURL)
}

// The Tailwind v3 block lists core roles then charts; in :root, --radius
// sits between the two
var (
	v3Core   = RolesIn(GroupCore)
	v3Charts = RolesIn(GroupChart)
)

// ThemeCode renders the Tailwind v3 @layer base block
func ThemeCode(theme *Theme, radius float64) string {
	if theme == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n@layer base {\n  :root {\n")
	writeDecls(&b, "    ", v3Core, theme.CSSVars.Light)
	fmt.Fprintf(&b, "    --radius: %srem;\n", FormatRadius(radius))
	writeDecls(&b, "    ", v3Charts, theme.CSSVars.Light)
	b.WriteString("  }\n\n  .dark {\n")
	writeDecls(&b, "    ", v3Core, theme.CSSVars.Dark)
	writeDecls(&b, "    ", v3Charts, theme.CSSVars.Dark)
	b.WriteString("  }\n}\n")
	return b.String()
}

func writeDecls(b *strings.Builder, indent string, roles []Role, p *Palette) {
	for _, r := range roles {
		fmt.Fprintf(b, "%s%s: %s;\n", indent, r.Var(), p.Value(r.Name))
	}
}

// ThemeCodeOKLCH renders the Tailwind v4 :root and .dark blocks. Keys follow
// the palette's own order so roles outside the legacy set come through too.
func ThemeCodeOKLCH(theme *ThemeOKLCH, radius float64) string {
	if theme == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, ":root {\n  --radius: %srem;\n", FormatRadius(radius))
	b.WriteString(joinDecls(theme.Light))
	b.WriteString("\n}\n\n.dark {\n")
	b.WriteString(joinDecls(theme.Dark))
	b.WriteString("\n}\n")
	return b.String()
}

func joinDecls(p *Palette) string {
	keys := p.Keys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  --"+k+": "+p.Value(k)+";")
	}
	return strings.Join(lines, "\n")
}

// Registry item envelope
const (
	RegistrySchemaURL = "https://ui.shadcn.com/schema/registry-item.json"
	registryItemName  = "shadcn-registry"
	registryItemType  = "registry:style"
)

var registryRoles = RolesIn(GroupCore, GroupChart, GroupSidebar)

// RegistryItem renders the registry:style JSON document for a theme
func RegistryItem(theme *Theme, radius float64) string {
	if theme == nil {
		return ""
	}

	themeVars := make(orderedObject, 0, len(registryRoles))
	light := make(orderedObject, 0, len(registryRoles)+1)
	dark := make(orderedObject, 0, len(registryRoles))
	for _, r := range registryRoles {
		themeVars = append(themeVars, jsonField{r.Name, "var(" + r.Var() + ")"})
		light = append(light, jsonField{r.Name, theme.CSSVars.Light.Value(r.Name)})
		dark = append(dark, jsonField{r.Name, theme.CSSVars.Dark.Value(r.Name)})
	}
	light = append(light, jsonField{"radius", FormatRadius(radius) + "rem"})

	doc := orderedObject{
		{"$schema", RegistrySchemaURL},
		{"name", registryItemName},
		{"type", registryItemType},
		{"cssVars", orderedObject{
			{"theme", themeVars},
			{"light", light},
			{"dark", dark},
		}},
	}

	out, err := marshalIndent(doc)
	if err != nil {
		return ""
	}
	return out
}

type jsonField struct {
	Key   string
	Value any
}

// orderedObject marshals as a JSON object with fields in slice order
type orderedObject []jsonField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalCompact(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalCompact(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalIndent encodes with two space indentation and without HTML escaping
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
