package layer

// Role selects the wire flavor of the record and handshake headers. The
// datagram roles carry epoch/sequence fields in the record header and the
// message_seq/fragment fields in the handshake header; the stream roles
// do not.
type Role uint8

const (
	RoleTLSClient Role = iota
	RoleTLSServer
	RoleDTLSClient
	RoleDTLSServer
)

// IsDatagram reports whether the role uses the DTLS header layout.
func (r Role) IsDatagram() bool {
	return r == RoleDTLSClient || r == RoleDTLSServer
}

func (r Role) String() string {
	switch r {
	case RoleTLSClient:
		return "TLSClient"
	case RoleTLSServer:
		return "TLSServer"
	case RoleDTLSClient:
		return "DTLSClient"
	case RoleDTLSServer:
		return "DTLSServer"
	default:
		return "Unknown"
	}
}

type ContentType uint8

const (
	ContentTypeChangeCipherSpec ContentType = 20
	ContentTypeAlert            ContentType = 21
	ContentTypeHandshake        ContentType = 22
	ContentTypeApplicationData  ContentType = 23
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeChangeCipherSpec:
		return "ChangeCipherSpec"
	case ContentTypeAlert:
		return "Alert"
	case ContentTypeHandshake:
		return "Handshake"
	case ContentTypeApplicationData:
		return "ApplicationData"
	default:
		return "Unknown"
	}
}

// Content is one record-layer payload.
type Content interface {
	ContentType() ContentType
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}
