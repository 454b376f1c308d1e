package layer

// MessageType discriminates the handshake messages, RFC 5246 §7.4 and
// RFC 6347 §4.3.2 values.
type MessageType uint8

const (
	TypeClientHello        MessageType = 1
	TypeServerHello        MessageType = 2
	TypeHelloVerifyRequest MessageType = 3
	TypeCertificate        MessageType = 11
	TypeServerKeyExchange  MessageType = 12
	TypeCertificateRequest MessageType = 13
	TypeServerHelloDone    MessageType = 14
	TypeCertificateVerify  MessageType = 15
	TypeClientKeyExchange  MessageType = 16
	TypeFinished           MessageType = 20
)

func (t MessageType) String() string {
	switch t {
	case TypeClientHello:
		return "ClientHello"
	case TypeServerHello:
		return "ServerHello"
	case TypeHelloVerifyRequest:
		return "HelloVerifyRequest"
	case TypeCertificate:
		return "Certificate"
	case TypeServerKeyExchange:
		return "ServerKeyExchange"
	case TypeCertificateRequest:
		return "CertificateRequest"
	case TypeServerHelloDone:
		return "ServerHelloDone"
	case TypeCertificateVerify:
		return "CertificateVerify"
	case TypeClientKeyExchange:
		return "ClientKeyExchange"
	case TypeFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Message is one handshake message body. Marshal fails with ErrSerialize
// when required fields are missing or out of bounds; Unmarshal fails with
// ErrDeserialize before mutating any state it can avoid mutating.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	MessageType() MessageType
}
