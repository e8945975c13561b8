// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/themery/internal/themes"
)

// staticParam resolves the :theme and :radius params. Only the pre-built
// combinations are served.
func staticParam(c *gin.Context) (*themes.Theme, float64, bool) {
	name, radius := c.Param("theme"), c.Param("radius")
	if !themes.IsStaticParam(name, radius) {
		return nil, 0, false
	}
	r, ok := themes.ParseStaticRadius(radius)
	if !ok {
		return nil, 0, false
	}
	return themes.GetTheme(name), r, true
}

// RegistryJSON serves the registry:style item for a theme and radius
func (h *Handler) RegistryJSON(c *gin.Context) {
	theme, radius, ok := staticParam(c)
	if !ok {
		notFound(c, "Theme not found")
		return
	}

	body := themes.RegistryItem(theme, radius)
	if body == "" {
		notFound(c, "Theme not found")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
}

// ThemeJSON serves the registry:theme starter for a theme and radius
func (h *Handler) ThemeJSON(c *gin.Context) {
	theme, radius, ok := staticParam(c)
	if !ok {
		notFound(c, "Theme not found")
		return
	}
	h.writeStarter(c, theme, radius)
}

// ThemeJSONDefault serves the starter at the default radius. This is the
// target of the "Open in v0" link, which carries no radius.
func (h *Handler) ThemeJSONDefault(c *gin.Context) {
	name := c.Param("theme")
	if !themes.IsStaticParam(name, themes.FormatRadius(h.DefaultRadius)) {
		notFound(c, "Theme not found")
		return
	}
	h.writeStarter(c, themes.GetTheme(name), h.DefaultRadius)
}

func (h *Handler) writeStarter(c *gin.Context, theme *themes.Theme, radius float64) {
	body := themes.ThemeStarterJSON(theme, radius)
	if body == "" {
		notFound(c, "Theme not found")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
}
