// SPDX-License-Identifier: MIT
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/thatcatcamp/themery/internal/themes"
)

var (
	labelStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// swatchRoles are the roles previewed in the terminal
var swatchRoles = []string{"background", "foreground", "primary", "secondary", "accent", "muted", "border", "destructive"}

// Swatch is one previewed role
type Swatch struct {
	Role string
	Hex  string
}

// Swatches converts a palette's HSL values to hex for display. Roles the
// palette lacks are skipped.
func Swatches(p *themes.Palette) []Swatch {
	if p == nil {
		return nil
	}
	var out []Swatch
	for _, role := range swatchRoles {
		v, ok := p.Get(role)
		if !ok {
			continue
		}
		c, err := themes.ParseHSL(v)
		if err != nil {
			continue
		}
		out = append(out, Swatch{Role: role, Hex: c.ToHex()})
	}
	return out
}

// RenderSwatches draws one colored block per role
func RenderSwatches(swatches []Swatch) string {
	var b strings.Builder
	for _, s := range swatches {
		block := lipgloss.NewStyle().Background(lipgloss.Color(s.Hex)).Render("      ")
		b.WriteString(labelStyle.Render(s.Role) + block + " " + s.Hex + "\n")
	}
	return b.String()
}

// Summary describes a configuration with light and dark swatches
func Summary(cfg themes.ExportConfig, format themes.Format) string {
	theme := cfg.Resolve()
	if theme == nil {
		return errorStyle.Render("colors are not valid yet")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(theme.DisplayLabel()) + "  radius " + themes.FormatRadius(cfg.Radius) + "rem  " + format.Label() + "\n\n")
	if format == themes.FormatV4 && cfg.IsCustom() {
		b.WriteString(errorStyle.Render("custom colors have no Tailwind v4 palette") + "\n\n")
	}
	if _, mcp := themes.MCPClientFor(format); mcp && !themes.IsStaticParam(cfg.Theme, themes.FormatRadius(cfg.Radius)) {
		b.WriteString(errorStyle.Render("no registry endpoint is served for this theme and radius") + "\n\n")
	}
	light := RenderSwatches(Swatches(theme.CSSVars.Light))
	dark := RenderSwatches(Swatches(theme.CSSVars.Dark))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render("Light\n"+light),
		"Dark\n"+dark,
	))
	return b.String()
}
