package layer

import "encoding/binary"

type MessageHelloVerifyRequest struct {
	Version ProtocolVersion
	Cookie  []byte
}

func (m *MessageHelloVerifyRequest) Marshal() ([]byte, error) {
	if len(m.Cookie) > 255 {
		return nil, serializeErr(errCookieTooLong)
	}

	out := make([]byte, 3+len(m.Cookie))
	binary.BigEndian.PutUint16(out, uint16(m.Version))
	out[2] = byte(len(m.Cookie))
	copy(out[3:], m.Cookie)

	return out, nil
}

func (m *MessageHelloVerifyRequest) Unmarshal(data []byte) error {
	if len(data) < 3 {
		return deserializeErr(errBufferTooSmall)
	}

	cookieLength := int(data[2])
	if len(data) != 3+cookieLength {
		return deserializeErr(errLengthMismatch)
	}
	m.Version = ProtocolVersion(binary.BigEndian.Uint16(data))
	m.Cookie = append([]byte{}, data[3:]...)

	return nil
}

func (m *MessageHelloVerifyRequest) MessageType() MessageType {
	return TypeHelloVerifyRequest
}
