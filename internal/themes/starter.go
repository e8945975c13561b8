// SPDX-License-Identifier: MIT
package themes

import _ "embed"

//go:embed data/starters/tailwind.config.ts
var starterTailwindConfig string

//go:embed data/starters/root-layout.tsx
var starterRootLayout string

const tailwindDirectives = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n\n"

// RegistryFile is one file shipped inside a registry item
type RegistryFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Target  string `json:"target"`
}

// ThemeStarter is the registry:theme item served as theme.json
type ThemeStarter struct {
	Schema      string         `json:"$schema"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Files       []RegistryFile `json:"files"`
}

// NewThemeStarter builds the starter project item: a globals.css holding the
// Tailwind v3 theme block plus a Tailwind config and a root layout
func NewThemeStarter(theme *Theme, radius float64) *ThemeStarter {
	if theme == nil {
		return nil
	}
	return &ThemeStarter{
		Schema:      RegistrySchemaURL,
		Name:        "theme",
		Type:        "registry:theme",
		Title:       "Shadcn Theme",
		Description: "Shadcn themed styles using Tailwind v3",
		Files: []RegistryFile{
			{
				Path:    "src/app/globals.css",
				Content: tailwindDirectives + ThemeCode(theme, radius),
				Type:    "registry:file",
				Target:  "app/globals.css",
			},
			{
				Path:    "src/app/starters/tailwind.config.ts",
				Content: starterTailwindConfig,
				Type:    "registry:file",
				Target:  "tailwind.config.ts",
			},
			{
				Path:    "src/app/starters/root-layout.tsx",
				Content: starterRootLayout,
				Type:    "registry:file",
				Target:  "app/layout.tsx",
			},
		},
	}
}

// ThemeStarterJSON renders the theme.json document, or "" for an unknown theme
func ThemeStarterJSON(theme *Theme, radius float64) string {
	starter := NewThemeStarter(theme, radius)
	if starter == nil {
		return ""
	}
	out, err := marshalIndent(starter)
	if err != nil {
		return ""
	}
	return out
}
