package layer

import (
	"encoding/binary"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/util"
)

const (
	TLSRecordHeaderSize  = 5
	DTLSRecordHeaderSize = 13
	MaxSequenceNumber    = 0x0000FFFFFFFFFFFF
)

// RecordHeader is the record-layer framing shared by TLS and DTLS. The
// Epoch and SequenceNumber fields only exist on the wire for datagram
// roles.
type RecordHeader struct {
	Role           Role
	ContentType    ContentType
	Version        ProtocolVersion
	Epoch          uint16
	SequenceNumber uint64 // uint48
	ContentLength  uint16
}

// Size returns the header size the role dictates.
func (r *RecordHeader) Size() int {
	if r.Role.IsDatagram() {
		return DTLSRecordHeaderSize
	}
	return TLSRecordHeaderSize
}

func (r *RecordHeader) Marshal() ([]byte, error) {
	if r.SequenceNumber > MaxSequenceNumber {
		return nil, serializeErr(errSequenceNumberOverflow)
	}

	out := make([]byte, r.Size())
	out[0] = byte(r.ContentType)
	binary.BigEndian.PutUint16(out[1:], uint16(r.Version))
	if r.Role.IsDatagram() {
		binary.BigEndian.PutUint16(out[3:], r.Epoch)
		util.BigEndian.PutUint48(out[5:], r.SequenceNumber)
		binary.BigEndian.PutUint16(out[11:], r.ContentLength)
	} else {
		binary.BigEndian.PutUint16(out[3:], r.ContentLength)
	}

	return out, nil
}

func (r *RecordHeader) Unmarshal(data []byte) error {
	if len(data) < r.Size() {
		return deserializeErr(errBufferTooSmall)
	}

	r.ContentType = ContentType(data[0])
	r.Version = ProtocolVersion(binary.BigEndian.Uint16(data[1:]))
	if !r.Version.isSupported() {
		return deserializeErr(errUnsupportedVersion)
	}

	if r.Role.IsDatagram() {
		r.Epoch = binary.BigEndian.Uint16(data[3:])
		r.SequenceNumber = util.BigEndian.Uint48(data[5:])
		r.ContentLength = binary.BigEndian.Uint16(data[11:])
	} else {
		r.ContentLength = binary.BigEndian.Uint16(data[3:])
	}

	return nil
}

// Record is one record-layer unit: header plus a single content.
type Record struct {
	Header  RecordHeader
	Content Content
}

func (r *Record) Marshal() ([]byte, error) {
	content, err := r.Content.Marshal()
	if err != nil {
		return nil, err
	}

	// sequence number is the sender's to fill in
	r.Header.ContentType = r.Content.ContentType()
	r.Header.ContentLength = uint16(len(content))

	header, err := r.Header.Marshal()
	if err != nil {
		return nil, err
	}

	return append(header, content...), nil
}

func (r *Record) Unmarshal(data []byte) error {
	if err := r.Header.Unmarshal(data); err != nil {
		return err
	}
	headerSize := r.Header.Size()
	if len(data)-headerSize != int(r.Header.ContentLength) {
		return deserializeErr(errLengthMismatch)
	}

	switch r.Header.ContentType {
	case ContentTypeHandshake:
		r.Content = &Handshake{Role: r.Header.Role}
	case ContentTypeChangeCipherSpec:
		r.Content = &ChangeCipherSpec{}
	case ContentTypeAlert:
		r.Content = &Alert{}
	default:
		return deserializeErr(errInvalidContentType)
	}

	return r.Content.Unmarshal(data[headerSize:])
}
