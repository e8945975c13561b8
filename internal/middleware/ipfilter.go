// SPDX-License-Identifier: MIT
package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseBlocklist turns CIDR ranges and bare addresses into networks. Entries
// that parse as neither are returned separately so callers can log them.
func ParseBlocklist(entries []string) ([]*net.IPNet, []string) {
	nets := make([]*net.IPNet, 0, len(entries))
	var invalid []string
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				if ip.To4() != nil {
					entry += "/32"
				} else {
					entry += "/128"
				}
			}
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			invalid = append(invalid, entry)
			continue
		}
		nets = append(nets, ipNet)
	}
	return nets, invalid
}

// IPFilterMiddleware refuses clients inside any blocked network
func IPFilterMiddleware(blocked []*net.IPNet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(blocked) == 0 {
			c.Next()
			return
		}

		ip := net.ParseIP(clientIP(c))
		if ip == nil {
			c.AbortWithStatus(403)
			return
		}

		for _, ipNet := range blocked {
			if ipNet.Contains(ip) {
				c.AbortWithStatus(403)
				return
			}
		}

		c.Next()
	}
}
