package layer

import (
	"encoding/binary"

	"github.com/pion/dtls/v2/pkg/crypto/elliptic"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/signature"
)

const (
	// X25519PublicKeySize is the only point size this profile exchanges.
	X25519PublicKeySize = 32
	// Ed25519SignatureSize is the fixed parameter-signature size.
	Ed25519SignatureSize = 64

	dhParamsSize = 4 + X25519PublicKeySize // curve_type + named_curve + pubkey_len + point
)

// MessageServerKeyExchangeDh is the ECDHE form of ServerKeyExchange:
// ServerECDHParams{curve_type=named_curve, named_curve=x25519} plus the
// Ed25519 signature over the handshake randoms and the params
// (RFC 4492 §5.4).
type MessageServerKeyExchangeDh struct {
	PublicKey          [X25519PublicKeySize]byte
	HashAlgorithm      hash.Algorithm
	SignatureAlgorithm signature.Algorithm
	Signature          []byte
}

// Params returns the ServerECDHParams block exactly as serialized, the
// input of the parameter signature.
func (m *MessageServerKeyExchangeDh) Params() []byte {
	out := make([]byte, dhParamsSize)
	out[0] = byte(elliptic.CurveTypeNamedCurve)
	binary.BigEndian.PutUint16(out[1:], uint16(elliptic.X25519))
	out[3] = X25519PublicKeySize
	copy(out[4:], m.PublicKey[:])
	return out
}

func (m *MessageServerKeyExchangeDh) Marshal() ([]byte, error) {
	if len(m.Signature) != Ed25519SignatureSize {
		return nil, serializeErr(errInvalidSignatureAlgorithm)
	}

	out := m.Params()
	out = append(out, byte(m.HashAlgorithm), byte(m.SignatureAlgorithm))
	out = binary.BigEndian.AppendUint16(out, uint16(len(m.Signature)))
	out = append(out, m.Signature...)
	return out, nil
}

func (m *MessageServerKeyExchangeDh) Unmarshal(data []byte) error {
	if len(data) < dhParamsSize+4 {
		return deserializeErr(errBufferTooSmall)
	}
	if elliptic.CurveType(data[0]) != elliptic.CurveTypeNamedCurve {
		return deserializeErr(errInvalidCurveType)
	}
	if elliptic.Curve(binary.BigEndian.Uint16(data[1:])) != elliptic.X25519 {
		return deserializeErr(errInvalidNamedCurve)
	}
	if int(data[3]) != X25519PublicKeySize {
		return deserializeErr(errLengthMismatch)
	}

	offset := dhParamsSize
	hashAlgorithm := hash.Algorithm(data[offset])
	if _, ok := hash.Algorithms()[hashAlgorithm]; !ok {
		return deserializeErr(errInvalidHashAlgorithm)
	}
	signatureAlgorithm := signature.Algorithm(data[offset+1])
	if _, ok := signature.Algorithms()[signatureAlgorithm]; !ok {
		return deserializeErr(errInvalidSignatureAlgorithm)
	}
	signatureLen := int(binary.BigEndian.Uint16(data[offset+2:]))
	if signatureLen != Ed25519SignatureSize || len(data) != offset+4+signatureLen {
		return deserializeErr(errLengthMismatch)
	}

	copy(m.PublicKey[:], data[4:4+X25519PublicKeySize])
	m.HashAlgorithm = hashAlgorithm
	m.SignatureAlgorithm = signatureAlgorithm
	m.Signature = append([]byte{}, data[offset+4:]...)
	return nil
}

func (m *MessageServerKeyExchangeDh) MessageType() MessageType {
	return TypeServerKeyExchange
}

// MessageClientKeyExchangeDh carries the client's ephemeral X25519 point:
// a 1-byte length followed by the point (RFC 4492 §5.7).
type MessageClientKeyExchangeDh struct {
	PublicKey [X25519PublicKeySize]byte
}

func (m *MessageClientKeyExchangeDh) Marshal() ([]byte, error) {
	out := make([]byte, 1+X25519PublicKeySize)
	out[0] = X25519PublicKeySize
	copy(out[1:], m.PublicKey[:])
	return out, nil
}

func (m *MessageClientKeyExchangeDh) Unmarshal(data []byte) error {
	if len(data) < 1 {
		return deserializeErr(errBufferTooSmall)
	}
	if int(data[0]) != X25519PublicKeySize || len(data) != 1+X25519PublicKeySize {
		return deserializeErr(errLengthMismatch)
	}
	copy(m.PublicKey[:], data[1:])
	return nil
}

func (m *MessageClientKeyExchangeDh) MessageType() MessageType {
	return TypeClientKeyExchange
}
