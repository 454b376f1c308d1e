package layer

import (
	"encoding/binary"

	"github.com/pion/dtls/v2/pkg/protocol"
)

const (
	helloFixedSize = 34 // version + random
	RandomLength   = 32
)

// MessageClientHello uses the DTLS form of ClientHello (RFC 6347 §4.2.1),
// cookie included. Extensions stay opaque here; EcExtension decodes the
// supported-groups body on demand.
type MessageClientHello struct {
	Version            ProtocolVersion
	Random             [RandomLength]byte
	Cookie             []byte
	SessionID          []byte
	CipherSuites       []uint16
	CompressionMethods []*protocol.CompressionMethod
	Extensions         []byte
}

func (m *MessageClientHello) Marshal() ([]byte, error) {
	if len(m.Cookie) > 255 {
		return nil, serializeErr(errCookieTooLong)
	}

	out := make([]byte, helloFixedSize)
	binary.BigEndian.PutUint16(out, uint16(m.Version))
	copy(out[2:], m.Random[:])
	out = append(out, byte(len(m.SessionID)))
	out = append(out, m.SessionID...)
	out = append(out, byte(len(m.Cookie)))
	out = append(out, m.Cookie...)
	out = append(out, encodeCipherSuiteIDs(m.CipherSuites)...)
	out = append(out, protocol.EncodeCompressionMethods(m.CompressionMethods)...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(m.Extensions)))
	out = append(out, m.Extensions...)

	return out, nil
}

func (m *MessageClientHello) Unmarshal(data []byte) error {
	if len(data) < helloFixedSize+2 {
		return deserializeErr(errBufferTooSmall)
	}
	version := ProtocolVersion(binary.BigEndian.Uint16(data))
	var random [RandomLength]byte
	copy(random[:], data[2:])

	offset := helloFixedSize

	// SessionID
	n := int(data[offset])
	offset++
	if len(data) < offset+n+1 {
		return deserializeErr(errBufferTooSmall)
	}
	sessionID := append([]byte{}, data[offset:offset+n]...)
	offset += n

	// Cookie
	n = int(data[offset])
	offset++
	if len(data) < offset+n {
		return deserializeErr(errBufferTooSmall)
	}
	cookie := append([]byte{}, data[offset:offset+n]...)
	offset += n

	// CipherSuites
	cipherSuites, err := decodeCipherSuiteIDs(data[offset:])
	if err != nil {
		return deserializeErr(err)
	}
	offset += len(cipherSuites)*2 + 2

	// CompressionMethods
	if len(data) < offset+1 {
		return deserializeErr(errBufferTooSmall)
	}
	compressionMethods, err := protocol.DecodeCompressionMethods(data[offset:])
	if err != nil {
		return deserializeErr(err)
	}
	offset += int(data[offset]) + 1

	// Extensions
	if len(data) < offset+2 {
		return deserializeErr(errBufferTooSmall)
	}
	n = int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2
	if len(data) != offset+n {
		return deserializeErr(errLengthMismatch)
	}
	extensions := append([]byte{}, data[offset:offset+n]...)

	m.Version = version
	m.Random = random
	m.SessionID = sessionID
	m.Cookie = cookie
	m.CipherSuites = cipherSuites
	m.CompressionMethods = compressionMethods
	m.Extensions = extensions
	return nil
}

func (m *MessageClientHello) MessageType() MessageType {
	return TypeClientHello
}
