package auth

import (
	"crypto"
	"crypto/x509"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

// Ecdsa is the certificate-based authentication concretion. One instance
// serves one handshake attempt.
type Ecdsa struct {
	provider CertificateProvider
	adapter  cryptoadapter.Adapter

	peerPublicKey crypto.PublicKey
	peerChain     []*x509.Certificate
}

func NewEcdsa(provider CertificateProvider, adapter cryptoadapter.Adapter) *Ecdsa {
	return &Ecdsa{provider: provider, adapter: adapter}
}

// PrepareCertificateMessage loads the chain the labels name, leaf first.
func (e *Ecdsa) PrepareCertificateMessage(labels []string) (*layer.MessageCertificate, error) {
	chain := make([][]byte, 0, len(labels))
	for _, label := range labels {
		der, err := e.provider.LoadCertificate(label)
		if err != nil {
			return nil, fmt.Errorf("%w: loading %q: %w", ErrCryptoRuntime, label, err)
		}
		chain = append(chain, der)
	}
	return &layer.MessageCertificate{Certificate: chain}, nil
}

// OnServerCertificateMessageReceived verifies the presented chain against
// the root of trust and keeps the leaf public key for the parameter
// signature check.
func (e *Ecdsa) OnServerCertificateMessageReceived(msg *layer.MessageCertificate) error {
	certs, err := parseCertificates(msg.Certificate)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}

	root, err := e.provider.RootOfTrust()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	roots := x509.NewCertPool()
	roots.AddCert(root)

	if _, err := verifyChain(certs, roots, false); err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}

	e.peerChain = certs
	e.peerPublicKey = certs[0].PublicKey
	return nil
}

// PeerPublicKey is the verified leaf key; nil before a chain was accepted.
func (e *Ecdsa) PeerPublicKey() crypto.PublicKey {
	return e.peerPublicKey
}

// OnCertificateRequestMessageReceived answers a certificate request. When
// no local certificate satisfies the request the answer is an empty
// Certificate message (RFC 5246 §7.4.6), not an error.
func (e *Ecdsa) OnCertificateRequestMessageReceived(req *layer.MessageCertificateRequest, localLabels []string) (*layer.MessageCertificate, error) {
	chain := make([][]byte, 0, len(localLabels))
	for _, label := range localLabels {
		der, err := e.provider.LoadCertificate(label)
		if err != nil {
			return nil, fmt.Errorf("%w: loading %q: %w", ErrCryptoRuntime, label, err)
		}
		chain = append(chain, der)
	}

	certs, err := parseCertificates(chain)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}

	if !IsCompatible(req, certs) {
		log.Debug("certificate request not satisfiable, answering with empty chain")
		return &layer.MessageCertificate{}, nil
	}
	return &layer.MessageCertificate{Certificate: chain}, nil
}

// SignTranscript signs handshake transcript bytes with the key a label
// names.
func (e *Ecdsa) SignTranscript(label string, transcript []byte) ([]byte, error) {
	key, err := e.provider.SigningKey(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	signer, err := e.adapter.CreateSigner(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	return signer.Sign(transcript)
}

// VerifyTranscript checks a transcript signature against the verified
// peer key.
func (e *Ecdsa) VerifyTranscript(transcript, signature []byte) error {
	if e.peerPublicKey == nil {
		return fmt.Errorf("%w: no verified peer certificate", ErrCryptoRuntime)
	}
	verifier, err := e.adapter.CreateSignatureVerifier(e.peerPublicKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoRuntime, err)
	}
	return verifier.Verify(transcript, signature)
}
