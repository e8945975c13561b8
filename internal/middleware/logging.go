// SPDX-License-Identifier: MIT
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/themery/internal/logger"
)

// RequestLogger writes one structured entry per request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	zl := log.Zerolog()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := zl.Info()
		switch {
		case status >= 500:
			event = zl.Error()
		case status >= 400:
			event = zl.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("bytes", c.Writer.Size()).
			Msg("request")
	}
}
