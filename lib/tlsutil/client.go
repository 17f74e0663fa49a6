package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"software.sslmate.com/src/go-pkcs12"
)

// Config holds the TLS options for connections to upstream servers (FHIR server, ICE).
type Config struct {
	CertFile string `koanf:"certfile"`
	KeyFile  string `koanf:"keyfile"`
	// Password decrypts a PKCS#12 CertFile.
	Password string `koanf:"password"`
	CAFile   string `koanf:"cafile"`
}

// Enabled returns true if a client certificate or CA is configured.
func (c Config) Enabled() bool {
	return c.CertFile != "" || c.CAFile != ""
}

// LoadClientCertificate loads the client certificate for upstream mTLS. A .p12 or .pfx CertFile is read as PKCS#12
// (decrypted with Password, KeyFile ignored); any other CertFile is PEM and needs a PEM KeyFile.
func LoadClientCertificate(config Config) (tls.Certificate, error) {
	if config.CertFile == "" {
		return tls.Certificate{}, fmt.Errorf("certificate file not specified")
	}
	switch strings.ToLower(filepath.Ext(config.CertFile)) {
	case ".p12", ".pfx":
		cert, err := loadPKCS12(config.CertFile, config.Password)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to load PKCS#12: %w", err)
		}
		log.Info().Str("cert_file", config.CertFile).Msg("Loaded upstream client certificate (PKCS#12)")
		return cert, nil
	}
	if config.KeyFile == "" {
		return tls.Certificate{}, fmt.Errorf("key file required when using PEM certificate")
	}
	cert, err := tls.LoadX509KeyPair(config.CertFile, config.KeyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load certificate: %w", err)
	}
	log.Info().Str("cert_file", config.CertFile).Msg("Loaded upstream client certificate (PEM)")
	return cert, nil
}

// LoadCACertPool reads the PEM bundle of CAs trusted for upstream server certificates.
// The pool replaces the system roots, so it must contain every CA the FHIR server and ICE chain to.
func LoadCACertPool(caFile string) (*x509.CertPool, error) {
	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}
	log.Info().Str("ca_file", caFile).Msg("Loaded upstream CA certificates")
	return pool, nil
}

// CreateTLSConfig creates a TLS configuration with optional client certificate and optional CA.
func CreateTLSConfig(config Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	if config.CertFile != "" {
		cert, err := LoadClientCertificate(config)
		if err != nil {
			return nil, err
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	if config.CAFile != "" {
		caCertPool, err := LoadCACertPool(config.CAFile)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = caCertPool
	}
	return tlsConfig, nil
}

func loadPKCS12(p12File, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(p12File)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read PKCS#12 file: %w", err)
	}

	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to decode PKCS#12: %w", err)
	}

	var certPEM, keyPEM []byte
	for _, block := range blocks {
		pemBytes := pem.EncodeToMemory(block)
		if block.Type == "CERTIFICATE" {
			certPEM = append(certPEM, pemBytes...)
		} else if strings.Contains(block.Type, "PRIVATE KEY") {
			keyPEM = pemBytes
		}
	}

	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return tls.Certificate{}, fmt.Errorf("certificate or key not found in PKCS#12")
	}

	return tls.X509KeyPair(certPEM, keyPEM)
}
