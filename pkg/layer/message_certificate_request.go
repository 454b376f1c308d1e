package layer

import (
	"encoding/binary"

	"github.com/pion/dtls/v2/pkg/crypto/clientcertificate"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/signature"
	"github.com/pion/dtls/v2/pkg/crypto/signaturehash"
)

// RFC 5246 §7.4.4 byte-length bounds of the three variable-length lists.
const (
	CertificateTypesMinLength            = 1
	CertificateTypesMaxLength            = 255
	SupportedSignatureAlgorithmsMinBytes = 2
	SupportedSignatureAlgorithmsMaxBytes = 65534
	CertificateAuthoritiesMaxLength      = 65535
)

// MessageCertificateRequest owns three bounded lists. The setters are
// validate-then-commit: on any invalid entry the whole collection is
// rejected and the existing state stays unchanged.
type MessageCertificateRequest struct {
	certificateTypes             []clientcertificate.Type
	supportedSignatureAlgorithms []signaturehash.Algorithm
	certificateAuthorities       [][]byte
}

func (m *MessageCertificateRequest) CertificateTypes() []clientcertificate.Type {
	return m.certificateTypes
}

func (m *MessageCertificateRequest) SupportedSignatureAlgorithms() []signaturehash.Algorithm {
	return m.supportedSignatureAlgorithms
}

func (m *MessageCertificateRequest) CertificateAuthorities() [][]byte {
	return m.certificateAuthorities
}

// SetCertificateTypes validates every entry against the registry and the
// 1..255 byte bound before committing.
func (m *MessageCertificateRequest) SetCertificateTypes(types []clientcertificate.Type) error {
	if len(types) < CertificateTypesMinLength || len(types) > CertificateTypesMaxLength {
		return serializeErr(errLengthMismatch)
	}
	for _, t := range types {
		if _, ok := clientcertificate.Types()[t]; !ok {
			return serializeErr(errInvalidCertificateType)
		}
	}
	m.certificateTypes = append([]clientcertificate.Type{}, types...)
	return nil
}

// SetSupportedSignatureAlgorithms validates the pair registry membership
// and the 2..65534 byte bound (two bytes per pair) before committing.
func (m *MessageCertificateRequest) SetSupportedSignatureAlgorithms(algorithms []signaturehash.Algorithm) error {
	byteLen := len(algorithms) * 2
	if byteLen < SupportedSignatureAlgorithmsMinBytes || byteLen > SupportedSignatureAlgorithmsMaxBytes {
		return serializeErr(errLengthMismatch)
	}
	for _, a := range algorithms {
		if _, ok := hash.Algorithms()[a.Hash]; !ok {
			return serializeErr(errInvalidHashAlgorithm)
		}
		if _, ok := signature.Algorithms()[a.Signature]; !ok {
			return serializeErr(errInvalidSignatureAlgorithm)
		}
	}
	m.supportedSignatureAlgorithms = append([]signaturehash.Algorithm{}, algorithms...)
	return nil
}

// SetCertificateAuthorities bounds the encoded list (2-byte length prefix
// plus content per entry) to 0..65535 bytes before committing.
func (m *MessageCertificateRequest) SetCertificateAuthorities(names [][]byte) error {
	if distinguishedNamesTotalSize(names) > CertificateAuthoritiesMaxLength {
		return serializeErr(errLengthMismatch)
	}
	committed := make([][]byte, 0, len(names))
	for _, dn := range names {
		committed = append(committed, append([]byte{}, dn...))
	}
	m.certificateAuthorities = committed
	return nil
}

// distinguishedNamesTotalSize sums the 2-byte length prefix plus content
// length per entry.
func distinguishedNamesTotalSize(names [][]byte) int {
	total := 0
	for _, dn := range names {
		total += 2 + len(dn)
	}
	return total
}

func (m *MessageCertificateRequest) Marshal() ([]byte, error) {
	if len(m.certificateTypes) < CertificateTypesMinLength {
		return nil, serializeErr(errInvalidCertificateType)
	}
	if len(m.supportedSignatureAlgorithms)*2 < SupportedSignatureAlgorithmsMinBytes {
		return nil, serializeErr(errInvalidSignatureAlgorithm)
	}
	casLength := distinguishedNamesTotalSize(m.certificateAuthorities)
	if casLength > CertificateAuthoritiesMaxLength {
		return nil, serializeErr(errLengthMismatch)
	}

	out := []byte{byte(len(m.certificateTypes))}
	for _, v := range m.certificateTypes {
		out = append(out, byte(v))
	}

	out = binary.BigEndian.AppendUint16(out, uint16(len(m.supportedSignatureAlgorithms)<<1))
	for _, v := range m.supportedSignatureAlgorithms {
		out = append(out, byte(v.Hash), byte(v.Signature))
	}

	out = binary.BigEndian.AppendUint16(out, uint16(casLength))
	for _, ca := range m.certificateAuthorities {
		out = binary.BigEndian.AppendUint16(out, uint16(len(ca)))
		out = append(out, ca...)
	}

	return out, nil
}

func (m *MessageCertificateRequest) Unmarshal(data []byte) error {
	if len(data) < 5 {
		return deserializeErr(errBufferTooSmall)
	}

	// certificate types
	offset := 0
	n := int(data[0])
	offset++
	if n < CertificateTypesMinLength {
		return deserializeErr(errInvalidCertificateType)
	}
	if len(data) < offset+n+2 {
		return deserializeErr(errBufferTooSmall)
	}
	certificateTypes := make([]clientcertificate.Type, 0, n)
	for i := 0; i < n; i++ {
		certType := clientcertificate.Type(data[offset+i])
		if _, ok := clientcertificate.Types()[certType]; !ok {
			return deserializeErr(errInvalidCertificateType)
		}
		certificateTypes = append(certificateTypes, certType)
	}
	offset += n

	// signature-hash algorithm pairs
	n = int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2
	if n < SupportedSignatureAlgorithmsMinBytes || n%2 != 0 {
		return deserializeErr(errInvalidSignatureAlgorithm)
	}
	if len(data) < offset+n+2 {
		return deserializeErr(errBufferTooSmall)
	}
	var signatureAlgorithms []signaturehash.Algorithm
	for i := offset; i < offset+n; i += 2 {
		h := hash.Algorithm(data[i])
		s := signature.Algorithm(data[i+1])
		if _, ok := hash.Algorithms()[h]; !ok {
			return deserializeErr(errInvalidHashAlgorithm)
		}
		if _, ok := signature.Algorithms()[s]; !ok {
			return deserializeErr(errInvalidSignatureAlgorithm)
		}
		signatureAlgorithms = append(signatureAlgorithms, signaturehash.Algorithm{Hash: h, Signature: s})
	}
	offset += n

	// certificate-authority distinguished names
	n = int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2
	if len(data) != offset+n {
		return deserializeErr(errLengthMismatch)
	}
	cas := data[offset : offset+n]
	var certificateAuthorities [][]byte
	for len(cas) > 0 {
		if len(cas) < 2 {
			return deserializeErr(errBufferTooSmall)
		}
		caLen := binary.BigEndian.Uint16(cas)
		cas = cas[2:]
		if len(cas) < int(caLen) {
			return deserializeErr(errBufferTooSmall)
		}
		certificateAuthorities = append(certificateAuthorities, append([]byte{}, cas[:caLen]...))
		cas = cas[caLen:]
	}

	m.certificateTypes = certificateTypes
	m.supportedSignatureAlgorithms = signatureAlgorithms
	m.certificateAuthorities = certificateAuthorities
	return nil
}

func (m *MessageCertificateRequest) MessageType() MessageType {
	return TypeCertificateRequest
}
