// SPDX-License-Identifier: MIT
package tls

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/caddyserver/certmagic"
	"github.com/thatcatcamp/themery/internal/logger"
)

// Manager handles certificate provisioning for the configured domains
type Manager struct {
	cfg       *Config
	cache     *certmagic.Cache
	certmagic *certmagic.Config
	issuer    *certmagic.ACMEIssuer
	log       *logger.Logger
}

// NewManager creates a TLS manager. Nothing is requested from the CA until
// Start is called.
func NewManager(cfg *Config, log *logger.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CertDir == "" {
		return nil, fmt.Errorf("tls.cert_dir is required")
	}

	m := &Manager{cfg: cfg, log: log}

	m.cache = certmagic.NewCache(certmagic.CacheOptions{
		GetConfigForCert: func(certmagic.Certificate) (*certmagic.Config, error) {
			return m.certmagic, nil
		},
	})
	m.certmagic = certmagic.New(m.cache, certmagic.Config{
		Storage: &certmagic.FileStorage{Path: cfg.CertDir},
	})

	ca := certmagic.LetsEncryptProductionCA
	if cfg.Staging {
		ca = certmagic.LetsEncryptStagingCA
	}
	m.issuer = certmagic.NewACMEIssuer(m.certmagic, certmagic.ACMEIssuer{
		CA:     ca,
		Email:  cfg.Email,
		Agreed: true,
	})
	m.certmagic.Issuers = []certmagic.Issuer{m.issuer}

	return m, nil
}

// Domains returns the names certificates are managed for
func (m *Manager) Domains() []string {
	return append([]string(nil), m.cfg.Domains...)
}

// Start begins obtaining and renewing certificates in the background
func (m *Manager) Start(ctx context.Context) error {
	domains := m.Domains()
	m.log.WithFields(map[string]any{"domains": domains}).Info("managing TLS certificates")

	if err := m.certmagic.ManageAsync(ctx, domains); err != nil {
		return fmt.Errorf("failed to manage domains: %w", err)
	}
	return nil
}

// Stop halts certificate maintenance
func (m *Manager) Stop() {
	m.cache.Stop()
}

// GetTLSConfig returns TLS config for HTTPS server
func (m *Manager) GetTLSConfig() *tls.Config {
	return m.certmagic.TLSConfig()
}
