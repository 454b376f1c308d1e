package layer

import (
	"encoding/binary"

	"github.com/pion/dtls/v2/pkg/protocol"
)

type MessageServerHello struct {
	Version           ProtocolVersion
	Random            [RandomLength]byte
	SessionID         []byte
	CipherSuite       uint16
	CompressionMethod protocol.CompressionMethod
	Extensions        []byte
}

func (m *MessageServerHello) Marshal() ([]byte, error) {
	out := make([]byte, helloFixedSize)
	binary.BigEndian.PutUint16(out, uint16(m.Version))
	copy(out[2:], m.Random[:])
	out = append(out, byte(len(m.SessionID)))
	out = append(out, m.SessionID...)
	out = binary.BigEndian.AppendUint16(out, m.CipherSuite)
	out = append(out, byte(m.CompressionMethod.ID))
	out = binary.BigEndian.AppendUint16(out, uint16(len(m.Extensions)))
	out = append(out, m.Extensions...)

	return out, nil
}

func (m *MessageServerHello) Unmarshal(data []byte) error {
	if len(data) < helloFixedSize+1 {
		return deserializeErr(errBufferTooSmall)
	}
	version := ProtocolVersion(binary.BigEndian.Uint16(data))
	var random [RandomLength]byte
	copy(random[:], data[2:])

	offset := helloFixedSize
	n := int(data[offset])
	offset++
	if len(data) < offset+n+3 {
		return deserializeErr(errBufferTooSmall)
	}
	sessionID := append([]byte{}, data[offset:offset+n]...)
	offset += n

	cipherSuite := binary.BigEndian.Uint16(data[offset:])
	offset += 2

	compressionMethod, ok := protocol.CompressionMethods()[protocol.CompressionMethodID(data[offset])]
	if !ok {
		return deserializeErr(errInvalidCompressionMethod)
	}
	offset++

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
	m.CipherSuite = cipherSuite
	m.CompressionMethod = *compressionMethod
	m.Extensions = extensions
	return nil
}

func (m *MessageServerHello) MessageType() MessageType {
	return TypeServerHello
}
