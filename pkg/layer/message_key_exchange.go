package layer

// The key-exchange payload layout depends on the negotiated algorithm,
// which the framing layer does not know. Handshake.Unmarshal therefore
// keeps the payload opaque; the key-exchange strategy decodes the typed
// form (MessageServerKeyExchangeDh, MessageClientKeyExchangePsk, ...)
// from Raw.

type MessageServerKeyExchange struct {
	Raw []byte
}

func (m *MessageServerKeyExchange) Marshal() ([]byte, error) {
	return append([]byte{}, m.Raw...), nil
}

func (m *MessageServerKeyExchange) Unmarshal(data []byte) error {
	m.Raw = append([]byte{}, data...)
	return nil
}

func (m *MessageServerKeyExchange) MessageType() MessageType {
	return TypeServerKeyExchange
}

type MessageClientKeyExchange struct {
	Raw []byte
}

func (m *MessageClientKeyExchange) Marshal() ([]byte, error) {
	return append([]byte{}, m.Raw...), nil
}

func (m *MessageClientKeyExchange) Unmarshal(data []byte) error {
	m.Raw = append([]byte{}, data...)
	return nil
}

func (m *MessageClientKeyExchange) MessageType() MessageType {
	return TypeClientKeyExchange
}
