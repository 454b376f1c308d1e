package layer

// ProtocolVersion is the wire encoding of the protocol version field.
// DTLS versions are the one's complement of their TLS counterparts.
type ProtocolVersion uint16

const (
	VersionTLS12  ProtocolVersion = 0x0303
	VersionDTLS10 ProtocolVersion = 0xfeff
	VersionDTLS12 ProtocolVersion = 0xfefd
)

func (v ProtocolVersion) isSupported() bool {
	switch v {
	case VersionTLS12, VersionDTLS10, VersionDTLS12:
		return true
	}
	return false
}

func (v ProtocolVersion) String() string {
	switch v {
	case VersionTLS12:
		return "TLS 1.2"
	case VersionDTLS10:
		return "DTLS 1.0"
	case VersionDTLS12:
		return "DTLS 1.2"
	default:
		return "Unknown"
	}
}
