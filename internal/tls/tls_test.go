// SPDX-License-Identifier: MIT
package tls

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/caddyserver/certmagic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/logger"
)

func selfSigned(t *testing.T, domain string, notAfter time.Time) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: domain},
		Issuer:       pkix.Name{CommonName: domain},
		DNSNames:     []string{domain},
		NotBefore:    notAfter.Add(-90 * 24 * time.Hour),
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func TestLoadConfigValidation(t *testing.T) {
	require.NoError(t, config.InitConfig(filepath.Join(t.TempDir(), "config.yaml")))
	certDir := filepath.Join(t.TempDir(), "certs")
	require.NoError(t, config.Set("tls.cert_dir", certDir))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.DirExists(t, certDir)

	require.NoError(t, config.Set("tls.enabled", true))
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "tls.email")

	require.NoError(t, config.Set("tls.email", "ops@example.com"))
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "tls.domains")

	require.NoError(t, config.Set("tls.domains", []string{" Themes.Example.com ", "themes.example.com", "", "www.example.com"}))
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"themes.example.com", "www.example.com"}, cfg.Domains)
}

func TestNewManagerRequiresCertDir(t *testing.T) {
	_, err := NewManager(nil, logger.Nop())
	assert.Error(t, err)

	_, err = NewManager(&Config{Email: "ops@example.com"}, logger.Nop())
	assert.ErrorContains(t, err, "cert_dir")
}

func TestGetCertificateStatus(t *testing.T) {
	cfg := &Config{
		Email:   "ops@example.com",
		CertDir: t.TempDir(),
		Staging: true,
		Domains: []string{"themes.example.com", "pending.example.com"},
	}
	m, err := NewManager(cfg, logger.Nop())
	require.NoError(t, err)
	defer m.Stop()

	assert.Equal(t, cfg.Domains, m.Domains())
	assert.NotNil(t, m.GetTLSConfig())

	expiry := time.Now().Add(30*24*time.Hour + time.Hour)
	key := certmagic.StorageKeys.SiteCert(m.issuer.IssuerKey(), "themes.example.com")
	storage := &certmagic.FileStorage{Path: cfg.CertDir}
	require.NoError(t, storage.Store(context.Background(), key, selfSigned(t, "themes.example.com", expiry)))

	statuses, err := m.GetCertificateStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "themes.example.com", statuses[0].Domain)
	assert.Equal(t, "themes.example.com", statuses[0].Issuer)
	assert.Equal(t, 30, statuses[0].DaysUntilExpiry)
}

func TestParseCertificateRejectsGarbage(t *testing.T) {
	_, err := parseCertificate("x", []byte("not a cert"), time.Now())
	assert.Error(t, err)

	bad := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("junk")})
	_, err = parseCertificate("x", bad, time.Now())
	assert.Error(t, err)
}
