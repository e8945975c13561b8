// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/themes"
)

// configForm is the customizer form. Every field is optional; unset fields
// keep the session value.
type configForm struct {
	Theme        string   `form:"theme" json:"theme" binding:"omitempty,max=32"`
	Radius       *float64 `form:"radius" json:"radius" binding:"omitempty,min=0,max=4"`
	BaseColor    string   `form:"base_color" json:"base_color" binding:"omitempty,hexcolor6"`
	PrimaryColor string   `form:"primary_color" json:"primary_color" binding:"omitempty,hexcolor6"`
}

func (f configForm) apply(cfg themes.ExportConfig) themes.ExportConfig {
	if f.Theme != "" {
		cfg = cfg.WithTheme(f.Theme)
	}
	if f.Radius != nil {
		cfg = cfg.WithRadius(*f.Radius)
	}
	if f.BaseColor != "" {
		cfg = cfg.WithBaseColor(f.BaseColor)
	}
	if f.PrimaryColor != "" {
		cfg = cfg.WithPrimaryColor(f.PrimaryColor)
	}
	return cfg
}

// UpdateConfig applies the customizer form to the session configuration.
// Browsers are redirected back to the page; API clients get the new state.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var form configForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid configuration",
			"fields": validationMessage(err),
		})
		return
	}

	cfg := form.apply(h.config(c))
	if err := h.Sessions.Save(c, cfg); err != nil {
		h.Log.Error(err, "failed to save session")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save configuration"})
		return
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, cfg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/themes")
}

type exportQuery struct {
	Format string   `form:"format" binding:"required,themeformat"`
	Theme  string   `form:"theme" binding:"omitempty,max=32"`
	Radius *float64 `form:"radius" binding:"omitempty,min=0,max=4"`
}

var exportContentTypes = map[themes.Format]string{
	themes.FormatV3:       "text/css; charset=utf-8",
	themes.FormatV4:       "text/css; charset=utf-8",
	themes.FormatRegistry: "application/json; charset=utf-8",
	themes.FormatCursor:   "application/json; charset=utf-8",
	themes.FormatWindsurf: "application/json; charset=utf-8",
}

// Export returns the payload the copy button puts on the clipboard and
// records a copy event. theme and radius query params override the session.
func (h *Handler) Export(c *gin.Context) {
	var q exportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid export request",
			"fields": validationMessage(err),
		})
		return
	}
	format, err := themes.ParseFormat(q.Format)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid export request",
			"fields": map[string]string{"format": "must be one of v4, v3, registry, cursor, windsurf"},
		})
		return
	}

	cfg := configForm{Theme: q.Theme, Radius: q.Radius}.apply(h.config(c))
	body := themes.Render(format, cfg, h.BaseURL)
	if body == "" {
		notFound(c, "Theme not found")
		return
	}

	if err := h.Recorder.RecordCopy(c.Request.Context(), cfg.Theme, cfg.Radius, string(format), analytics.SourceWeb); err != nil {
		// the export itself succeeded
		h.Log.Error(err, "failed to record copy event")
	}
	h.Metrics.ObserveExport(string(format), cfg.Theme)

	c.Header("X-Theme", cfg.Theme)
	c.Header("X-Theme-Radius", strconv.FormatFloat(cfg.Radius, 'f', -1, 64))
	if client, ok := themes.MCPClientFor(format); ok {
		c.Header("X-Config-Path", client.ConfigPath)
	}
	c.Data(http.StatusOK, exportContentTypes[format], []byte(body))
}

// CustomCSS serves the .theme-custom rules derived from the session colors
func (h *Handler) CustomCSS(c *gin.Context) {
	cfg := h.config(c)
	css, err := themes.GenerateCustomThemeCSS(cfg.BaseColor, cfg.PrimaryColor)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
