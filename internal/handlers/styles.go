// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Chrome colors for the page frame. The preview area uses the selected
// theme's variables instead.
const (
	ColorChromeBg     = "#FAFAFA"
	ColorChromeCard   = "#FFFFFF"
	ColorChromeText   = "#18181B"
	ColorChromeMuted  = "#71717A"
	ColorChromeBorder = "#E4E4E7"
	ColorChromeFocus  = "#A1A1AA"
)

// GetDesignSystemCSS returns the customizer page stylesheet
func GetDesignSystemCSS() string {
	return `
:root {
	--chrome-bg: ` + ColorChromeBg + `;
	--chrome-card: ` + ColorChromeCard + `;
	--chrome-text: ` + ColorChromeText + `;
	--chrome-muted: ` + ColorChromeMuted + `;
	--chrome-border: ` + ColorChromeBorder + `;
	--chrome-focus: ` + ColorChromeFocus + `;
	--font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
	--font-mono: ui-monospace, SFMono-Regular, Menlo, monospace;
	--spacing-xs: 4px;
	--spacing-sm: 8px;
	--spacing-base: 16px;
	--spacing-md: 24px;
	--spacing-lg: 40px;
	--transition: 150ms ease;
}

* { box-sizing: border-box; }

body {
	font-family: var(--font-family);
	background: var(--chrome-bg);
	color: var(--chrome-text);
	margin: 0;
	line-height: 1.5;
}

h1 { font-size: 28px; font-weight: 700; margin: 0; }
h2 { font-size: 16px; font-weight: 600; margin: 0 0 var(--spacing-sm); }
small { font-size: 12px; color: var(--chrome-muted); }

.container {
	max-width: 1100px;
	margin: 0 auto;
	padding: var(--spacing-lg) var(--spacing-md);
	display: grid;
	gap: var(--spacing-md);
}

.card {
	background: var(--chrome-card);
	border: 1px solid var(--chrome-border);
	border-radius: 12px;
	padding: var(--spacing-md);
}

.picker {
	display: flex;
	flex-wrap: wrap;
	gap: var(--spacing-sm);
}

.picker form { margin: 0; }

.picker button {
	font: inherit;
	font-size: 13px;
	display: inline-flex;
	align-items: center;
	gap: var(--spacing-sm);
	padding: 6px 12px;
	background: var(--chrome-card);
	color: var(--chrome-text);
	border: 1px solid var(--chrome-border);
	border-radius: 6px;
	cursor: pointer;
	transition: border-color var(--transition);
}

.picker button:hover { border-color: var(--chrome-focus); }
.picker button[aria-pressed="true"] { border-color: var(--chrome-text); border-width: 2px; }

.swatch {
	width: 16px;
	height: 16px;
	border-radius: 999px;
	display: inline-block;
}

.custom-form {
	display: flex;
	gap: var(--spacing-base);
	align-items: end;
	flex-wrap: wrap;
}

.custom-form label { display: grid; gap: var(--spacing-xs); font-size: 13px; }

/* Preview: driven by the selected theme variables */
.preview {
	background: hsl(var(--background));
	color: hsl(var(--foreground));
	border: 1px solid hsl(var(--border));
	border-radius: calc(var(--radius) + 4px);
	padding: var(--spacing-md);
	display: grid;
	gap: var(--spacing-base);
}

.preview .btn {
	background: hsl(var(--primary));
	color: hsl(var(--primary-foreground));
	border: none;
	border-radius: var(--radius);
	padding: 8px 16px;
	font-weight: 600;
}

.preview .btn-secondary {
	background: hsl(var(--secondary));
	color: hsl(var(--secondary-foreground));
}

.preview .btn-destructive {
	background: hsl(var(--destructive));
	color: hsl(var(--destructive-foreground, 0 0% 98%));
}

.preview .muted {
	background: hsl(var(--muted));
	color: hsl(var(--muted-foreground));
	border-radius: var(--radius);
	padding: var(--spacing-sm) var(--spacing-base);
}

.preview input {
	font: inherit;
	background: hsl(var(--background));
	color: hsl(var(--foreground));
	border: 1px solid hsl(var(--input));
	border-radius: var(--radius);
	padding: 8px 12px;
}

.preview input:focus { outline: 2px solid hsl(var(--ring)); }

/* Export panel */
.export details {
	border-top: 1px solid var(--chrome-border);
	padding: var(--spacing-sm) 0;
}

.export summary { cursor: pointer; font-weight: 600; }

.export pre {
	font-family: var(--font-mono);
	font-size: 12px;
	background: #09090B;
	color: #FAFAFA;
	border-radius: 8px;
	padding: var(--spacing-base);
	max-height: 420px;
	overflow: auto;
}

.links { display: flex; gap: var(--spacing-base); font-size: 14px; }
.links a { color: var(--chrome-text); }
`
}

// ServeDesignSystemCSS serves the page stylesheet
func ServeDesignSystemCSS(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(GetDesignSystemCSS()))
}
