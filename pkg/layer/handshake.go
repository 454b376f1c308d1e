package layer

import (
	"encoding/binary"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/util"
)

const (
	TLSHandshakeHeaderSize  = 4
	DTLSHandshakeHeaderSize = 12
)

// HandshakeHeader is the per-message framing. MessageSequence and the
// fragment fields are only present on the wire for datagram roles.
type HandshakeHeader struct {
	MessageType     MessageType
	MessageLength   uint32 // uint24
	MessageSequence uint16
	FragmentOffset  uint32 // uint24
	FragmentLength  uint32 // uint24
}

func (h *HandshakeHeader) marshal(role Role) []byte {
	if !role.IsDatagram() {
		out := make([]byte, TLSHandshakeHeaderSize)
		out[0] = byte(h.MessageType)
		util.BigEndian.PutUint24(out[1:], h.MessageLength)
		return out
	}

	out := make([]byte, DTLSHandshakeHeaderSize)
	out[0] = byte(h.MessageType)
	util.BigEndian.PutUint24(out[1:], h.MessageLength)
	binary.BigEndian.PutUint16(out[4:], h.MessageSequence)
	util.BigEndian.PutUint24(out[6:], h.FragmentOffset)
	util.BigEndian.PutUint24(out[9:], h.FragmentLength)
	return out
}

func (h *HandshakeHeader) unmarshal(role Role, data []byte) error {
	if !role.IsDatagram() {
		if len(data) < TLSHandshakeHeaderSize {
			return errBufferTooSmall
		}
		h.MessageType = MessageType(data[0])
		h.MessageLength = util.BigEndian.Uint24(data[1:])
		return nil
	}

	if len(data) < DTLSHandshakeHeaderSize {
		return errBufferTooSmall
	}
	h.MessageType = MessageType(data[0])
	h.MessageLength = util.BigEndian.Uint24(data[1:])
	h.MessageSequence = binary.BigEndian.Uint16(data[4:])
	h.FragmentOffset = util.BigEndian.Uint24(data[6:])
	h.FragmentLength = util.BigEndian.Uint24(data[9:])
	return nil
}

// Handshake frames a single handshake message for the record layer. The
// Role fixes the header size; PayloadLength is recorded by Unmarshal.
type Handshake struct {
	Role    Role
	Header  HandshakeHeader
	Message Message

	// PayloadLength is the message body length observed by the last
	// Unmarshal, before any field extraction.
	PayloadLength int
}

// HeaderSize returns the handshake header size for the configured role.
func (h *Handshake) HeaderSize() int {
	if h.Role.IsDatagram() {
		return DTLSHandshakeHeaderSize
	}
	return TLSHandshakeHeaderSize
}

// IncludedInFinishCalc reports whether the raw bytes of this message feed
// the transcript hash for the Finished computation. HelloVerifyRequest is
// excluded per RFC 6347 §4.2.1.
func (h *Handshake) IncludedInFinishCalc() bool {
	return h.Header.MessageType != TypeHelloVerifyRequest
}

func (h *Handshake) Marshal() ([]byte, error) {
	if h.Message == nil {
		return nil, serializeErr(errHandshakeMessageUnset)
	} else if h.Header.FragmentOffset != 0 {
		return nil, serializeErr(errUnableToMarshalFragmented)
	}

	message, err := h.Message.Marshal()
	if err != nil {
		return nil, err
	}

	// messageSequence is filled in by the state machine on send
	h.Header.MessageType = h.Message.MessageType()
	h.Header.MessageLength = uint32(len(message))
	h.Header.FragmentLength = h.Header.MessageLength
	return append(h.Header.marshal(h.Role), message...), nil
}

// Unmarshal validates the header-declared length against the actual buffer
// before any field extraction, then dispatches on the message type.
func (h *Handshake) Unmarshal(data []byte) error {
	if err := h.Header.unmarshal(h.Role, data); err != nil {
		return deserializeErr(err)
	}

	headerSize := h.HeaderSize()
	if uint32(len(data)-headerSize) != h.Header.MessageLength {
		return deserializeErr(errLengthMismatch)
	}
	if h.Role.IsDatagram() && h.Header.FragmentLength != h.Header.MessageLength {
		return deserializeErr(errLengthMismatch)
	}

	switch h.Header.MessageType {
	case TypeClientHello:
		h.Message = &MessageClientHello{}
	case TypeServerHello:
		h.Message = &MessageServerHello{}
	case TypeHelloVerifyRequest:
		h.Message = &MessageHelloVerifyRequest{}
	case TypeCertificate:
		h.Message = &MessageCertificate{}
	case TypeServerKeyExchange:
		h.Message = &MessageServerKeyExchange{}
	case TypeCertificateRequest:
		h.Message = &MessageCertificateRequest{}
	case TypeServerHelloDone:
		h.Message = &MessageServerHelloDone{}
	case TypeCertificateVerify:
		h.Message = &MessageCertificateVerify{}
	case TypeClientKeyExchange:
		h.Message = &MessageClientKeyExchange{}
	case TypeFinished:
		h.Message = &MessageFinished{}
	default:
		return deserializeErr(errInvalidHandshakeType)
	}

	h.PayloadLength = len(data) - headerSize
	return h.Message.Unmarshal(data[headerSize:])
}

func (h *Handshake) ContentType() ContentType {
	return ContentTypeHandshake
}
