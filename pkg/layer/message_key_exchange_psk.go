package layer

import "encoding/binary"

// PSK key-exchange payloads, RFC 4279 §2: a single 2-byte length prefixed
// opaque string (the identity hint on the server side, the identity on
// the client side).

type MessageServerKeyExchangePsk struct {
	IdentityHint []byte
}

func (m *MessageServerKeyExchangePsk) Marshal() ([]byte, error) {
	out := make([]byte, 2, 2+len(m.IdentityHint))
	binary.BigEndian.PutUint16(out, uint16(len(m.IdentityHint)))
	return append(out, m.IdentityHint...), nil
}

func (m *MessageServerKeyExchangePsk) Unmarshal(data []byte) error {
	hint, err := decodeOpaque16(data)
	if err != nil {
		return err
	}
	m.IdentityHint = hint
	return nil
}

func (m *MessageServerKeyExchangePsk) MessageType() MessageType {
	return TypeServerKeyExchange
}

type MessageClientKeyExchangePsk struct {
	Identity []byte
}

func (m *MessageClientKeyExchangePsk) Marshal() ([]byte, error) {
	out := make([]byte, 2, 2+len(m.Identity))
	binary.BigEndian.PutUint16(out, uint16(len(m.Identity)))
	return append(out, m.Identity...), nil
}

func (m *MessageClientKeyExchangePsk) Unmarshal(data []byte) error {
	identity, err := decodeOpaque16(data)
	if err != nil {
		return err
	}
	m.Identity = identity
	return nil
}

func (m *MessageClientKeyExchangePsk) MessageType() MessageType {
	return TypeClientKeyExchange
}

func decodeOpaque16(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, deserializeErr(errBufferTooSmall)
	}
	n := int(binary.BigEndian.Uint16(data))
	if len(data) != 2+n {
		return nil, deserializeErr(errLengthMismatch)
	}
	return append([]byte{}, data[2:]...), nil
}
