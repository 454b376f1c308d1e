package layer

type MessageServerHelloDone struct{}

func (m *MessageServerHelloDone) Marshal() ([]byte, error) {
	return []byte{}, nil
}

func (m *MessageServerHelloDone) Unmarshal(data []byte) error {
	if len(data) != 0 {
		return deserializeErr(errLengthMismatch)
	}
	return nil
}

func (m *MessageServerHelloDone) MessageType() MessageType {
	return TypeServerHelloDone
}
