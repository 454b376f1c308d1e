// Package auth verifies certificate chains, signs and verifies handshake
// transcripts, and answers CertificateRequest compatibility questions.
// Certificates and signing keys come from a CertificateProvider; the
// cryptographic operations go through the crypto adapter.
package auth

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCryptoRuntime is the failure class for certificate loading and chain
// verification; a handshake step hitting it aborts.
var ErrCryptoRuntime = errors.New("crypto runtime error")

var errNoCertificate = errors.New("no certificate found")

// CertificateProvider is the opaque certificate/key-store boundary.
// Labels are deployment-defined names, not file paths.
type CertificateProvider interface {
	// LoadCertificate returns the DER certificate a label names.
	LoadCertificate(label string) ([]byte, error)
	// RootOfTrust returns the verified root certificate.
	RootOfTrust() (*x509.Certificate, error)
	// SigningKey returns the private key paired with a certificate label.
	SigningKey(label string) (crypto.PrivateKey, error)
}

// FileCertificateProvider maps labels onto PEM files on disk.
type FileCertificateProvider struct {
	certificatePaths map[string]string
	keys             map[string]crypto.PrivateKey
	rootPath         string
}

func NewFileCertificateProvider(rootPath string) *FileCertificateProvider {
	return &FileCertificateProvider{
		certificatePaths: make(map[string]string),
		keys:             make(map[string]crypto.PrivateKey),
		rootPath:         rootPath,
	}
}

// AddCertificate registers the PEM file a label resolves to.
func (p *FileCertificateProvider) AddCertificate(label, path string) {
	p.certificatePaths[label] = path
}

// AddSigningKey registers an in-memory private key for a label.
func (p *FileCertificateProvider) AddSigningKey(label string, key crypto.PrivateKey) {
	p.keys[label] = key
}

func (p *FileCertificateProvider) LoadCertificate(label string) ([]byte, error) {
	path, ok := p.certificatePaths[label]
	if !ok {
		return nil, fmt.Errorf("%w: unknown certificate label %q", ErrCryptoRuntime, label)
	}
	ders, err := loadPEMCertificates(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	return ders[0], nil
}

func (p *FileCertificateProvider) RootOfTrust() (*x509.Certificate, error) {
	ders, err := loadPEMCertificates(p.rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	root, err := x509.ParseCertificate(ders[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	return root, nil
}

func (p *FileCertificateProvider) SigningKey(label string) (crypto.PrivateKey, error) {
	key, ok := p.keys[label]
	if !ok {
		return nil, fmt.Errorf("%w: unknown signing key label %q", ErrCryptoRuntime, label)
	}
	return key, nil
}

// loadPEMCertificates reads every CERTIFICATE block of a PEM file.
func loadPEMCertificates(path string) ([][]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var ders [][]byte
	for {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			return nil, errors.New("file " + path + " is not a certificate")
		}
		ders = append(ders, block.Bytes)
		data = rest
	}

	if len(ders) == 0 {
		return nil, errNoCertificate
	}
	return ders, nil
}
