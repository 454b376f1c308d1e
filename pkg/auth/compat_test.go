package auth

import (
	"crypto/x509"
	"testing"

	"github.com/pion/dtls/v2/pkg/crypto/clientcertificate"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/signature"
	"github.com/pion/dtls/v2/pkg/crypto/signaturehash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

func compatRequest(t *testing.T, types []clientcertificate.Type, algorithms []signaturehash.Algorithm, cas [][]byte) *layer.MessageCertificateRequest {
	t.Helper()
	req := &layer.MessageCertificateRequest{}
	require.NoError(t, req.SetCertificateTypes(types))
	require.NoError(t, req.SetSupportedSignatureAlgorithms(algorithms))
	require.NoError(t, req.SetCertificateAuthorities(cas))
	return req
}

func localCerts(t *testing.T) []*x509.Certificate {
	t.Helper()
	provider, _ := testPKI(t)
	cert, err := x509.ParseCertificate(provider.certs["server"])
	require.NoError(t, err)
	return []*x509.Certificate{cert}
}

func TestIsCompatible(t *testing.T) {
	certs := localCerts(t)
	ecdsaAlgorithms := []signaturehash.Algorithm{{Hash: hash.SHA256, Signature: signature.ECDSA}}
	rsaAlgorithms := []signaturehash.Algorithm{{Hash: hash.SHA256, Signature: signature.RSA}}

	tests := []struct {
		name string
		req  *layer.MessageCertificateRequest
		want bool
	}{
		{
			name: "matching type and signature",
			req:  compatRequest(t, []clientcertificate.Type{clientcertificate.ECDSASign}, ecdsaAlgorithms, nil),
			want: true,
		},
		{
			name: "certificate type not advertised",
			req:  compatRequest(t, []clientcertificate.Type{clientcertificate.RSASign}, ecdsaAlgorithms, nil),
			want: false,
		},
		{
			name: "signature algorithm not advertised",
			req:  compatRequest(t, []clientcertificate.Type{clientcertificate.ECDSASign}, rsaAlgorithms, nil),
			want: false,
		},
		{
			name: "issuer advertised",
			req: compatRequest(t, []clientcertificate.Type{clientcertificate.ECDSASign}, ecdsaAlgorithms,
				[][]byte{certs[0].RawIssuer}),
			want: true,
		},
		{
			name: "issuer not among advertised names",
			req: compatRequest(t, []clientcertificate.Type{clientcertificate.ECDSASign}, ecdsaAlgorithms,
				[][]byte{[]byte("someone else")}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompatible(tt.req, certs))
		})
	}
}

func TestIsCompatibleNoLocalCertificates(t *testing.T) {
	req := compatRequest(t, []clientcertificate.Type{clientcertificate.ECDSASign},
		[]signaturehash.Algorithm{{Hash: hash.SHA256, Signature: signature.ECDSA}}, nil)
	assert.False(t, IsCompatible(req, nil))
}

func TestOnCertificateRequestMessageReceived(t *testing.T) {
	provider, _ := testPKI(t)
	e := NewEcdsa(provider, cryptoadapter.NewPerformanceCryptoAdapter(nil))

	satisfiable := compatRequest(t, []clientcertificate.Type{clientcertificate.ECDSASign},
		[]signaturehash.Algorithm{{Hash: hash.SHA256, Signature: signature.ECDSA}}, nil)
	msg, err := e.OnCertificateRequestMessageReceived(satisfiable, []string{"server"})
	require.NoError(t, err)
	assert.Len(t, msg.Certificate, 1)

	// an unsatisfiable request answers with an empty chain, not an error
	unsatisfiable := compatRequest(t, []clientcertificate.Type{clientcertificate.RSASign},
		[]signaturehash.Algorithm{{Hash: hash.SHA256, Signature: signature.RSA}}, nil)
	msg, err = e.OnCertificateRequestMessageReceived(unsatisfiable, []string{"server"})
	require.NoError(t, err)
	assert.Empty(t, msg.Certificate)

	// only a broken request errors
	_, err = e.OnCertificateRequestMessageReceived(satisfiable, []string{"missing"})
	require.ErrorIs(t, err, ErrCryptoRuntime)
}
