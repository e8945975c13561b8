// SPDX-License-Identifier: MIT
package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/themes/:theme", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/themes/zinc", "/themes/rose", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/themes/:theme", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveExport(t *testing.T) {
	m := New()
	m.ObserveExport("v4", "zinc")
	m.ObserveExport("v4", "zinc")
	m.ObservePublished("dir", 80)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.exports.WithLabelValues("v4", "zinc")))
	assert.Equal(t, 80.0, testutil.ToFloat64(m.publishedFile.WithLabelValues("dir")))

	var nilMetrics *Metrics
	nilMetrics.ObserveExport("v3", "red")
}

func TestHandlerServesText(t *testing.T) {
	m := New()
	m.ObserveExport("registry", "blue")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `themery_exports_total{format="registry",theme="blue"} 1`))
}
