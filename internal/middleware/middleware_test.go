// SPDX-License-Identifier: MIT
package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/themery/internal/logger"
)

func newCSRFRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRFMiddleware(false))
	r.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFTokenHTML(c))
	})
	r.POST("/submit", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestCSRFIssuesToken(t *testing.T) {
	r := newCSRFRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "csrf_token", cookies[0].Name)
	assert.Contains(t, w.Body.String(), `name="csrf_token"`)
	assert.Contains(t, w.Body.String(), cookies[0].Value)
}

func TestCSRFRejectsMissingToken(t *testing.T) {
	r := newCSRFRouter()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "abc"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFAcceptsHeaderAndForm(t *testing.T) {
	r := newCSRFRouter()

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "abc"})
	req.Header.Set("X-CSRF-Token", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	form := url.Values{"csrf_token": {"abc"}}
	req = httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "abc"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, hsts := range []bool{false, true} {
		r := gin.New()
		r.Use(SecurityHeadersMiddleware(hsts))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "style-src 'self' 'unsafe-inline'")
		assert.Equal(t, hsts, w.Header().Get("Strict-Transport-Security") != "")
	}
}

func TestHTTPSRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		port, host, path, want string
	}{
		{"443", "themes.example.com", "/themes?x=1", "https://themes.example.com/themes?x=1"},
		{"8443", "themes.example.com:8080", "/themes", "https://themes.example.com:8443/themes"},
		{"", "localhost:8080", "/", "https://localhost/"},
	}
	for _, tt := range tests {
		r := gin.New()
		r.Use(HTTPSRedirectMiddleware(tt.port))
		r.GET("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Host = tt.host
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, tt.want, w.Header().Get("Location"))
	}
}

func TestHTTPSRedirectSkipsACME(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(HTTPSRedirectMiddleware("443"))
	r.GET("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/.well-known/acme-challenge/token", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/themes/:theme", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/themes/nope?format=v3", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/themes/nope?format=v3", entry["path"])
	assert.Equal(t, float64(404), entry["status"])
}
