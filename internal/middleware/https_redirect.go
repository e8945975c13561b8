// SPDX-License-Identifier: MIT
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HTTPSRedirectMiddleware sends plain HTTP requests to the HTTPS listener.
// ACME HTTP-01 challenges are let through. A non-default httpsPort is kept in
// the redirect target.
func HTTPSRedirectMiddleware(httpsPort string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.TLS != nil {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/.well-known/acme-challenge/") {
			c.Next()
			return
		}

		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if httpsPort != "" && httpsPort != "443" {
			host = net.JoinHostPort(host, httpsPort)
		}

		c.Redirect(http.StatusMovedPermanently, "https://"+host+c.Request.RequestURI)
		c.Abort()
	}
}
