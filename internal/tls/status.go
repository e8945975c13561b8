// SPDX-License-Identifier: MIT
package tls

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caddyserver/certmagic"
)

// CertificateStatus represents the status of a managed certificate
type CertificateStatus struct {
	Domain          string
	Issuer          string
	NotBefore       time.Time
	NotAfter        time.Time
	DaysUntilExpiry int
}

// GetCertificateStatus reports every domain that already has a certificate
// in storage. Domains not yet provisioned are left out.
func (m *Manager) GetCertificateStatus(ctx context.Context) ([]CertificateStatus, error) {
	var statuses []CertificateStatus
	now := time.Now()

	for _, domain := range m.cfg.Domains {
		key := certmagic.StorageKeys.SiteCert(m.issuer.IssuerKey(), domain)
		certPEM, err := m.certmagic.Storage.Load(ctx, key)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate for %s: %w", domain, err)
		}

		status, err := parseCertificate(domain, certPEM, now)
		if err != nil {
			m.log.WithFields(map[string]any{"domain": domain}).Error(err, "skipping unreadable certificate")
			continue
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func parseCertificate(domain string, certPEM []byte, now time.Time) (CertificateStatus, error) {
	block, _ := pem.Decode(certPEM)
	if block == nil {
		return CertificateStatus{}, fmt.Errorf("no PEM block found")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return CertificateStatus{}, fmt.Errorf("failed to parse certificate: %w", err)
	}

	return CertificateStatus{
		Domain:          domain,
		Issuer:          cert.Issuer.CommonName,
		NotBefore:       cert.NotBefore,
		NotAfter:        cert.NotAfter,
		DaysUntilExpiry: int(cert.NotAfter.Sub(now).Hours() / 24),
	}, nil
}
