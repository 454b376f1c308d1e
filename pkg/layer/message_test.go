package layer

import (
	"testing"

	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/signature"
	"github.com/pion/dtls/v2/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerHelloRoundTrip(t *testing.T) {
	original := &MessageServerHello{
		Version:           VersionDTLS12,
		SessionID:         []byte{1, 2, 3},
		CipherSuite:       0xc02b,
		CompressionMethod: *protocol.CompressionMethods()[0],
		Extensions:        []byte{0x00, 0x0a, 0x00, 0x04, 0x00, 0x02, 0x00, 0x1d},
	}
	for i := range original.Random {
		original.Random[i] = byte(0xff - i)
	}

	raw, err := original.Marshal()
	require.NoError(t, err)

	parsed := &MessageServerHello{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, original.Version, parsed.Version)
	assert.Equal(t, original.Random, parsed.Random)
	assert.Equal(t, original.SessionID, parsed.SessionID)
	assert.Equal(t, original.CipherSuite, parsed.CipherSuite)
	assert.Equal(t, original.Extensions, parsed.Extensions)

	require.ErrorIs(t, parsed.Unmarshal(append(raw, 0x00)), ErrDeserialize)
}

func TestHelloVerifyRequestRoundTrip(t *testing.T) {
	original := &MessageHelloVerifyRequest{
		Version: VersionDTLS12,
		Cookie:  []byte{9, 8, 7, 6, 5},
	}
	raw, err := original.Marshal()
	require.NoError(t, err)

	parsed := &MessageHelloVerifyRequest{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, original.Version, parsed.Version)
	assert.Equal(t, original.Cookie, parsed.Cookie)
}

func TestHelloVerifyRequestCookieTooLong(t *testing.T) {
	msg := &MessageHelloVerifyRequest{
		Version: VersionDTLS12,
		Cookie:  make([]byte, 256),
	}
	_, err := msg.Marshal()
	require.ErrorIs(t, err, ErrSerialize)
}

func TestCertificateRoundTrip(t *testing.T) {
	original := &MessageCertificate{
		Certificate: [][]byte{{0x30, 0x82, 0x01, 0x00}, {0x30, 0x81, 0xff}},
	}
	raw, err := original.Marshal()
	require.NoError(t, err)

	parsed := &MessageCertificate{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, original.Certificate, parsed.Certificate)
}

func TestCertificateEmptyChain(t *testing.T) {
	// the answer to an unsatisfiable CertificateRequest
	raw, err := (&MessageCertificate{}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, raw)

	parsed := &MessageCertificate{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Empty(t, parsed.Certificate)
}

func TestCertificateTruncated(t *testing.T) {
	original := &MessageCertificate{Certificate: [][]byte{{1, 2, 3, 4}}}
	raw, err := original.Marshal()
	require.NoError(t, err)

	parsed := &MessageCertificate{}
	require.ErrorIs(t, parsed.Unmarshal(raw[:len(raw)-1]), ErrDeserialize)
}

func TestCertificateVerifyRoundTrip(t *testing.T) {
	original := &MessageCertificateVerify{
		HashAlgorithm:      hash.SHA256,
		SignatureAlgorithm: signature.ECDSA,
		Signature:          []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}
	raw, err := original.Marshal()
	require.NoError(t, err)

	parsed := &MessageCertificateVerify{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, original.HashAlgorithm, parsed.HashAlgorithm)
	assert.Equal(t, original.SignatureAlgorithm, parsed.SignatureAlgorithm)
	assert.Equal(t, original.Signature, parsed.Signature)

	require.ErrorIs(t, parsed.Unmarshal(raw[:len(raw)-2]), ErrDeserialize)
}

func TestServerHelloDoneRejectsTrailingBytes(t *testing.T) {
	msg := &MessageServerHelloDone{}
	require.NoError(t, msg.Unmarshal(nil))
	require.ErrorIs(t, msg.Unmarshal([]byte{0x00}), ErrDeserialize)
}

func TestPskKeyExchangeRoundTrip(t *testing.T) {
	server := &MessageServerKeyExchangePsk{IdentityHint: []byte("gateway")}
	raw, err := server.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x07}, raw[:2])

	parsedServer := &MessageServerKeyExchangePsk{}
	require.NoError(t, parsedServer.Unmarshal(raw))
	assert.Equal(t, server.IdentityHint, parsedServer.IdentityHint)

	client := &MessageClientKeyExchangePsk{Identity: []byte("ecu-17")}
	raw, err = client.Marshal()
	require.NoError(t, err)

	parsedClient := &MessageClientKeyExchangePsk{}
	require.NoError(t, parsedClient.Unmarshal(raw))
	assert.Equal(t, client.Identity, parsedClient.Identity)

	require.ErrorIs(t, parsedClient.Unmarshal(raw[:len(raw)-1]), ErrDeserialize)
}

func TestServerKeyExchangeDhRoundTrip(t *testing.T) {
	original := &MessageServerKeyExchangeDh{
		HashAlgorithm:      hash.Ed25519,
		SignatureAlgorithm: signature.Ed25519,
		Signature:          make([]byte, Ed25519SignatureSize),
	}
	for i := range original.PublicKey {
		original.PublicKey[i] = byte(i)
	}
	for i := range original.Signature {
		original.Signature[i] = byte(0x40 + i)
	}

	raw, err := original.Marshal()
	require.NoError(t, err)

	// ServerECDHParams prefix: named_curve, x25519, point length
	assert.Equal(t, []byte{0x03, 0x00, 0x1d, 0x20}, raw[:4])

	parsed := &MessageServerKeyExchangeDh{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, original.PublicKey, parsed.PublicKey)
	assert.Equal(t, original.Signature, parsed.Signature)
	assert.Equal(t, raw[:dhParamsSize], parsed.Params())
}

func TestServerKeyExchangeDhRejectsBadParams(t *testing.T) {
	original := &MessageServerKeyExchangeDh{
		HashAlgorithm:      hash.Ed25519,
		SignatureAlgorithm: signature.Ed25519,
		Signature:          make([]byte, Ed25519SignatureSize),
	}
	good, err := original.Marshal()
	require.NoError(t, err)

	badCurveType := append([]byte{}, good...)
	badCurveType[0] = 0x01 // explicit_prime
	require.ErrorIs(t, (&MessageServerKeyExchangeDh{}).Unmarshal(badCurveType), ErrDeserialize)

	badCurve := append([]byte{}, good...)
	badCurve[2] = 0x17 // secp256r1, outside the profile
	require.ErrorIs(t, (&MessageServerKeyExchangeDh{}).Unmarshal(badCurve), ErrDeserialize)

	truncated := good[:len(good)-1]
	require.ErrorIs(t, (&MessageServerKeyExchangeDh{}).Unmarshal(truncated), ErrDeserialize)
}

func TestClientKeyExchangeDhRoundTrip(t *testing.T) {
	original := &MessageClientKeyExchangeDh{}
	for i := range original.PublicKey {
		original.PublicKey[i] = byte(i * 3)
	}

	raw, err := original.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, 1+X25519PublicKeySize)
	assert.Equal(t, byte(X25519PublicKeySize), raw[0])

	parsed := &MessageClientKeyExchangeDh{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, original.PublicKey, parsed.PublicKey)

	require.ErrorIs(t, parsed.Unmarshal(append(raw, 0x00)), ErrDeserialize)
}
