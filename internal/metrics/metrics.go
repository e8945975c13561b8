// SPDX-License-Identifier: MIT
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	exports       *prometheus.CounterVec
	publishedFile *prometheus.CounterVec
}

// New registers the themery collectors plus the Go runtime collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "themery",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "themery",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "themery",
			Name:      "exports_total",
			Help:      "Theme exports by output format and theme.",
		}, []string{"format", "theme"}),
		publishedFile: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "themery",
			Name:      "published_files_total",
			Help:      "Files written by the static publisher, by target kind.",
		}, []string{"target"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.exports,
		m.publishedFile,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes every request. Routes are labelled by their pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveExport counts one export of a theme in a format
func (m *Metrics) ObserveExport(format, theme string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, theme).Inc()
}

// ObservePublished counts files written to a publish target kind
func (m *Metrics) ObservePublished(target string, files int) {
	if m == nil {
		return
	}
	m.publishedFile.WithLabelValues(target).Add(float64(files))
}
