// SPDX-License-Identifier: MIT
package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	csrfFormField  = "csrf_token"
	csrfTokenLen   = 32
	csrfContextKey = "csrf_token"
)

// CSRFMiddleware implements double-submit cookie protection. Safe methods
// pass through and receive a token; state-changing methods must echo it back
// in the X-CSRF-Token header or the csrf_token form field.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(csrfCookieName)
		if err != nil || token == "" {
			token, err = generateCSRFToken()
			if err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			// readable by the page script that posts the customizer form
			c.SetCookie(csrfCookieName, token, 3600*8, "/", "", secure, false)
		}

		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			clientToken := c.GetHeader(csrfHeaderName)
			if clientToken == "" {
				clientToken = c.PostForm(csrfFormField)
			}

			if subtle.ConstantTimeCompare([]byte(clientToken), []byte(token)) != 1 {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Invalid CSRF token",
				})
				return
			}
		}

		c.Next()
	}
}

func generateCSRFToken() (string, error) {
	bytes := make([]byte, csrfTokenLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GetCSRFToken retrieves the CSRF token from the context
func GetCSRFToken(c *gin.Context) string {
	token, exists := c.Get(csrfContextKey)
	if !exists {
		return ""
	}
	s, _ := token.(string)
	return s
}

// GetCSRFTokenHTML returns a hidden input carrying the request's CSRF token,
// or "" when the middleware did not run
func GetCSRFTokenHTML(c *gin.Context) string {
	token := GetCSRFToken(c)
	if token == "" {
		return ""
	}
	return `<input type="hidden" name="` + csrfFormField + `" value="` + html.EscapeString(token) + `">`
}
