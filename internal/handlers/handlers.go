// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/logger"
	"github.com/thatcatcamp/themery/internal/metrics"
	"github.com/thatcatcamp/themery/internal/session"
	"github.com/thatcatcamp/themery/internal/themes"
)

// Handler carries what the theme routes need. Recorder, Metrics and Log may
// be nil.
type Handler struct {
	Sessions *session.Store
	Recorder *analytics.Recorder
	Metrics  *metrics.Metrics
	Log      *logger.Logger

	// BaseURL prefixes registry and v0 links, e.g. https://ui.shadcn.com
	BaseURL string
	// DefaultRadius is used by the radius-less theme.json route
	DefaultRadius float64
	// PageMiddleware runs ahead of the session on the /themes group
	PageMiddleware []gin.HandlerFunc
}

// New returns a Handler and registers the custom validation tags
func New(sessions *session.Store, recorder *analytics.Recorder, m *metrics.Metrics, log *logger.Logger, baseURL string) (*Handler, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}
	return &Handler{
		Sessions:      sessions,
		Recorder:      recorder,
		Metrics:       m,
		Log:           log,
		BaseURL:       baseURL,
		DefaultRadius: themes.DefaultRadius,
	}, nil
}

// Register mounts the theme routes on r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/themes/:theme/:radius/r/registry.json", h.RegistryJSON)
	r.GET("/themes/:theme/:radius/r/theme.json", h.ThemeJSON)
	r.GET("/themes/:theme/r/theme.json", h.ThemeJSONDefault)

	page := r.Group("/themes")
	page.Use(h.PageMiddleware...)
	page.Use(h.Sessions.Middleware())
	{
		page.GET("", h.CustomizerPage)
		page.POST("/config", h.UpdateConfig)
		page.GET("/export", h.Export)
		page.GET("/custom.css", h.CustomCSS)
		page.GET("/styles.css", ServeDesignSystemCSS)
	}
}

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "themery",
		"themes":  len(themes.ListThemes()),
	})
}

func (h *Handler) config(c *gin.Context) themes.ExportConfig {
	if cfg, ok := session.FromContext(c); ok {
		return cfg
	}
	return h.Sessions.Load(c)
}

func notFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msg})
}
