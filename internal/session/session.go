// SPDX-License-Identifier: MIT
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/thatcatcamp/themery/internal/themes"
)

// ErrNoSession is returned when the request carries no session cookie
var ErrNoSession = errors.New("no session")

const contextKey = "export_config"

// Claims carries the customizer state inside the signed cookie
type Claims struct {
	Config themes.ExportConfig `json:"cfg"`
	jwt.RegisteredClaims
}

// Options configures a Store
type Options struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
	Defaults   themes.ExportConfig
}

// Store reads and writes the export configuration cookie
type Store struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	defaults   themes.ExportConfig
}

// NewStore creates a Store. Zero values fall back to sane defaults.
func NewStore(opts Options) *Store {
	s := &Store{
		secret:     []byte(opts.Secret),
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
		defaults:   opts.Defaults,
	}
	if s.cookieName == "" {
		s.cookieName = "themery_config"
	}
	if s.ttl <= 0 {
		s.ttl = 30 * 24 * time.Hour
	}
	if s.defaults.Theme == "" {
		s.defaults = themes.DefaultExportConfig()
	}
	return s
}

// Defaults returns the configuration used when no session exists
func (s *Store) Defaults() themes.ExportConfig {
	return s.defaults
}

// CookieName returns the cookie the store reads and writes
func (s *Store) CookieName() string {
	return s.cookieName
}

// Encode signs a configuration into a token
func (s *Store) Encode(cfg themes.ExportConfig) (string, error) {
	now := time.Now()
	claims := Claims{
		Config: cfg,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the configuration it carries. Values
// are re-applied over the defaults so an old cookie cannot smuggle in a theme
// or color that no longer validates.
func (s *Store) Decode(tokenString string) (themes.ExportConfig, error) {
	if tokenString == "" {
		return s.defaults, ErrNoSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return s.defaults, err
	}
	if !token.Valid {
		return s.defaults, errors.New("invalid session")
	}

	return s.sanitize(claims.Config), nil
}

func (s *Store) sanitize(cfg themes.ExportConfig) themes.ExportConfig {
	return s.defaults.
		WithTheme(cfg.Theme).
		WithRadius(cfg.Radius).
		WithBaseColor(cfg.BaseColor).
		WithPrimaryColor(cfg.PrimaryColor)
}

// Load reads the configuration from the request cookie, falling back to the
// defaults when it is missing or invalid
func (s *Store) Load(c *gin.Context) themes.ExportConfig {
	cookie, err := c.Cookie(s.cookieName)
	if err != nil {
		return s.defaults
	}
	cfg, err := s.Decode(cookie)
	if err != nil {
		return s.defaults
	}
	return cfg
}

// Save writes the configuration cookie and updates the request context
func (s *Store) Save(c *gin.Context, cfg themes.ExportConfig) error {
	token, err := s.Encode(cfg)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, token, int(s.ttl.Seconds()), "/", "", s.secure, true)
	c.Set(contextKey, cfg)
	return nil
}

// Middleware loads the configuration into the gin context for handlers
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, s.Load(c))
		c.Next()
	}
}

// FromContext returns the configuration set by Middleware or Save
func FromContext(c *gin.Context) (themes.ExportConfig, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return themes.ExportConfig{}, false
	}
	cfg, ok := v.(themes.ExportConfig)
	return cfg, ok
}
