package auth

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"

	"github.com/pion/dtls/v2/pkg/crypto/clientcertificate"
	"github.com/pion/dtls/v2/pkg/crypto/signature"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

// IsCompatible reports whether at least one local certificate can answer
// the request: its type must be among the advertised certificate types,
// a signature algorithm the local key can produce must be advertised, and
// the issuer check below must pass.
//
// The certificate-authority check is a deliberate partial validation: it
// byte-compares the advertised DNs against the local issuers' RawSubject
// and accepts an empty advertised list, rather than implementing the full
// RFC 5246 §7.4.4 matching rules. Widening it would change which
// certificates get offered on the wire.
func IsCompatible(req *layer.MessageCertificateRequest, localCerts []*x509.Certificate) bool {
	for _, cert := range localCerts {
		certType, sigAlg, ok := classifyKey(cert)
		if !ok {
			continue
		}
		if !containsCertificateType(req.CertificateTypes(), certType) {
			continue
		}
		if !advertisesSignature(req, sigAlg) {
			continue
		}
		if !issuerAccepted(req.CertificateAuthorities(), cert) {
			continue
		}
		return true
	}
	return false
}

// classifyKey maps a certificate's key onto the wire enumerants the
// provider supports.
func classifyKey(cert *x509.Certificate) (clientcertificate.Type, signature.Algorithm, bool) {
	switch cert.PublicKey.(type) {
	case *ecdsa.PublicKey:
		return clientcertificate.ECDSASign, signature.ECDSA, true
	case ed25519.PublicKey:
		return clientcertificate.ECDSASign, signature.Ed25519, true
	case *rsa.PublicKey:
		return clientcertificate.RSASign, signature.RSA, true
	default:
		return 0, 0, false
	}
}

func containsCertificateType(types []clientcertificate.Type, want clientcertificate.Type) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func advertisesSignature(req *layer.MessageCertificateRequest, want signature.Algorithm) bool {
	for _, a := range req.SupportedSignatureAlgorithms() {
		if a.Signature == want {
			return true
		}
	}
	return false
}

// issuerAccepted does the partial DN validation: empty advertised list
// accepts everything, otherwise the certificate's raw issuer must equal
// one advertised name.
func issuerAccepted(advertised [][]byte, cert *x509.Certificate) bool {
	if len(advertised) == 0 {
		return true
	}
	for _, dn := range advertised {
		if bytes.Equal(dn, cert.RawIssuer) {
			return true
		}
	}
	return false
}
