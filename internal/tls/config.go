// SPDX-License-Identifier: MIT
package tls

import (
	"fmt"
	"os"
	"strings"

	"github.com/thatcatcamp/themery/internal/config"
)

// Config holds TLS configuration
type Config struct {
	Email   string
	CertDir string
	Staging bool
	Domains []string
	Enabled bool
}

// LoadConfig loads TLS configuration from config system
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Email:   config.GetString("tls.email"),
		CertDir: config.GetString("tls.cert_dir"),
		Staging: config.GetBool("tls.staging"),
		Domains: cleanDomains(config.GetStringSlice("tls.domains")),
		Enabled: config.GetBool("tls.enabled"),
	}

	if cfg.Enabled {
		if cfg.Email == "" {
			return nil, fmt.Errorf("tls.email is required when TLS is enabled")
		}
		if len(cfg.Domains) == 0 {
			return nil, fmt.Errorf("tls.domains is required when TLS is enabled")
		}
	}

	if cfg.CertDir != "" {
		if err := os.MkdirAll(cfg.CertDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create cert directory: %w", err)
		}
	}

	return cfg, nil
}

// cleanDomains lowercases, trims and de-duplicates, keeping first-seen order
func cleanDomains(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, d := range in {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
