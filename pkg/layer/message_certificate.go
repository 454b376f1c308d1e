package layer

import (
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/util"
)

const certificateLengthFieldSize = 3

// MessageCertificate carries a DER certificate chain, leaf first. An empty
// chain is valid on the wire: a client answers an unsatisfiable
// CertificateRequest with it (RFC 5246 §7.4.6).
type MessageCertificate struct {
	Certificate [][]byte
}

func (m *MessageCertificate) Marshal() ([]byte, error) {
	out := make([]byte, certificateLengthFieldSize)

	for _, r := range m.Certificate {
		out = util.BigEndian.AppendUint24(out, uint32(len(r)))
		out = append(out, r...)
	}

	util.BigEndian.PutUint24(out[0:3], uint32(len(out)-certificateLengthFieldSize))
	return out, nil
}

func (m *MessageCertificate) Unmarshal(data []byte) error {
	if len(data) < certificateLengthFieldSize {
		return deserializeErr(errBufferTooSmall)
	}
	if certificateBodyLen := int(util.BigEndian.Uint24(data)); certificateBodyLen+certificateLengthFieldSize != len(data) {
		return deserializeErr(errLengthMismatch)
	}

	var chain [][]byte
	offset := certificateLengthFieldSize
	for offset < len(data) {
		if offset+certificateLengthFieldSize > len(data) {
			return deserializeErr(errBufferTooSmall)
		}
		certificateLen := int(util.BigEndian.Uint24(data[offset:]))
		offset += certificateLengthFieldSize

		if offset+certificateLen > len(data) {
			return deserializeErr(errLengthMismatch)
		}

		chain = append(chain, append([]byte{}, data[offset:offset+certificateLen]...))
		offset += certificateLen
	}

	m.Certificate = chain
	return nil
}

func (m *MessageCertificate) MessageType() MessageType {
	return TypeCertificate
}
