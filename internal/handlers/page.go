// SPDX-License-Identifier: MIT
package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/themery/internal/middleware"
	"github.com/thatcatcamp/themery/internal/themes"
)

const previewStyleID = "theme-preview"

// CustomizerPage renders the theme picker, a live preview and the export
// panel for the session configuration
func (h *Handler) CustomizerPage(c *gin.Context) {
	cfg := h.config(c)
	dark := c.Query("mode") == "dark"

	theme := cfg.Resolve()
	if theme == nil {
		// a session naming a retired theme falls back to the defaults
		cfg = h.Sessions.Defaults()
		theme = cfg.Resolve()
	}

	sheet := themes.NewStyleSheet()
	releasePreview := sheet.Install(previewStyleID, themes.ThemeCode(theme, cfg.Radius))
	defer releasePreview()

	previewClass := "preview"
	if cfg.IsCustom() {
		css, err := themes.GenerateCustomThemeCSS(cfg.BaseColor, cfg.PrimaryColor)
		if err == nil {
			releaseCustom := sheet.Install(themes.CustomStyleID, css)
			defer releaseCustom()
			previewClass += " theme-custom"
		}
	}

	csrf := middleware.GetCSRFTokenHTML(c)

	var b strings.Builder
	htmlClass := ""
	if dark {
		htmlClass = ` class="dark"`
	}
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en"%s>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Themes</title>
	<link rel="stylesheet" href="/themes/styles.css">
%s</head>
<body>
<div class="container">
	<header>
		<h1>Add colors. Make it yours.</h1>
		<small>Hand-picked themes that you can copy and paste into your apps.</small>
	</header>
`, htmlClass, sheet.Render())

	h.writePicker(&b, cfg, dark, csrf)
	h.writeCustomForm(&b, cfg, csrf)
	writePreview(&b, previewClass)
	h.writeExportPanel(&b, cfg)

	b.WriteString("</div>\n</body>\n</html>\n")

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func (h *Handler) writePicker(b *strings.Builder, cfg themes.ExportConfig, dark bool, csrf string) {
	b.WriteString(`	<section class="card">
		<h2>Color</h2>
		<div class="picker">
`)
	for _, t := range themes.ColorThemes() {
		swatch := t.ActiveColor.Light
		if dark {
			swatch = t.ActiveColor.Dark
		}
		fmt.Fprintf(b, `			<form method="POST" action="/themes/config">%s<input type="hidden" name="theme" value="%s"><button type="submit" aria-pressed="%t"><span class="swatch" style="background: hsl(%s)"></span>%s</button></form>
`, csrf, html.EscapeString(t.Name), cfg.Theme == t.Name, html.EscapeString(swatch), html.EscapeString(t.DisplayLabel()))
	}
	fmt.Fprintf(b, `			<form method="POST" action="/themes/config">%s<input type="hidden" name="theme" value="%s"><button type="submit" aria-pressed="%t">Custom</button></form>
		</div>
		<h2>Radius</h2>
		<div class="picker">
`, csrf, themes.CustomThemeName, cfg.IsCustom())
	for _, r := range themes.Radii {
		v := themes.FormatRadius(r)
		fmt.Fprintf(b, `			<form method="POST" action="/themes/config">%s<input type="hidden" name="radius" value="%s"><button type="submit" aria-pressed="%t">%s</button></form>
`, csrf, v, cfg.Radius == r, v)
	}
	b.WriteString("\t\t</div>\n\t</section>\n")
}

func (h *Handler) writeCustomForm(b *strings.Builder, cfg themes.ExportConfig, csrf string) {
	if !cfg.IsCustom() {
		return
	}
	fmt.Fprintf(b, `	<section class="card">
		<h2>Custom colors</h2>
		<form class="custom-form" method="POST" action="/themes/config">%s
			<label>Base <input type="color" name="base_color" value="%s"></label>
			<label>Primary <input type="color" name="primary_color" value="%s"></label>
			<button type="submit">Apply</button>
		</form>
	</section>
`, csrf, html.EscapeString(cfg.BaseColor), html.EscapeString(cfg.PrimaryColor))
}

func writePreview(b *strings.Builder, class string) {
	fmt.Fprintf(b, `	<section class="%s">
		<h2>Preview</h2>
		<div class="muted">Muted surface with muted foreground text.</div>
		<input type="text" placeholder="Email address">
		<div>
			<button class="btn">Primary</button>
			<button class="btn btn-secondary">Secondary</button>
			<button class="btn btn-destructive">Destructive</button>
		</div>
	</section>
`, class)
}

func (h *Handler) writeExportPanel(b *strings.Builder, cfg themes.ExportConfig) {
	b.WriteString(`	<section class="card export">
		<h2>Theme</h2>
		<small>Copy and paste the following code into your CSS file.</small>
`)
	for _, f := range themes.Formats {
		body := themes.Render(f, cfg, h.BaseURL)
		if body == "" {
			continue
		}
		hint := ""
		if client, ok := themes.MCPClientFor(f); ok {
			hint = fmt.Sprintf(" <small>Add to %s</small>", html.EscapeString(client.ConfigPath))
		}
		open := ""
		if f == themes.FormatV4 {
			open = " open"
		}
		fmt.Fprintf(b, `		<details%s>
			<summary>%s%s</summary>
			<p><a href="/themes/export?format=%s">Copy</a></p>
			<pre><code>%s</code></pre>
		</details>
`, open, html.EscapeString(f.Label()), hint, f, html.EscapeString(body))
	}

	b.WriteString("\t\t<div class=\"links\">\n")
	if !cfg.IsCustom() && themes.IsStaticParam(cfg.Theme, themes.FormatRadius(cfg.Radius)) {
		fmt.Fprintf(b, "\t\t\t<a href=\"%s\">registry.json</a>\n",
			html.EscapeString(themes.RegistryURL("", cfg.Theme, cfg.Radius)))
		fmt.Fprintf(b, "\t\t\t<a href=\"%s\" target=\"_blank\" rel=\"noreferrer\">Open in v0</a>\n",
			html.EscapeString(themes.V0URL(h.BaseURL, cfg.Theme)))
	}
	b.WriteString("\t\t</div>\n\t</section>\n")
}
