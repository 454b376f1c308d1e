package layer

import (
	"encoding/binary"

	"github.com/pion/dtls/v2/pkg/crypto/elliptic"
)

// EcExtension holds the supported-groups extension body: a de-duplicated
// list of named-group identifiers. Wire format is a 2-byte list byte
// length followed by 2-byte group IDs.
type EcExtension struct {
	groups []elliptic.Curve
}

// Groups returns the groups in insertion order.
func (e *EcExtension) Groups() []elliptic.Curve {
	return e.groups
}

// AddGroup appends a group; a group already present is ignored.
func (e *EcExtension) AddGroup(group elliptic.Curve) {
	if e.contains(group) {
		return
	}
	e.groups = append(e.groups, group)
}

func (e *EcExtension) contains(group elliptic.Curve) bool {
	for _, g := range e.groups {
		if g == group {
			return true
		}
	}
	return false
}

func (e *EcExtension) Marshal() ([]byte, error) {
	out := make([]byte, 2, 2+2*len(e.groups))
	binary.BigEndian.PutUint16(out, uint16(2*len(e.groups)))
	for _, g := range e.groups {
		out = binary.BigEndian.AppendUint16(out, uint16(g))
	}
	return out, nil
}

// Unmarshal rejects a size field that does not match the encoded list and
// any duplicate entry.
func (e *EcExtension) Unmarshal(data []byte) error {
	if len(data) < 2 {
		return deserializeErr(errBufferTooSmall)
	}
	byteLen := int(binary.BigEndian.Uint16(data))
	if byteLen%2 != 0 || len(data) != 2+byteLen {
		return deserializeErr(errLengthMismatch)
	}

	groups := make([]elliptic.Curve, 0, byteLen/2)
	for offset := 2; offset < len(data); offset += 2 {
		group := elliptic.Curve(binary.BigEndian.Uint16(data[offset:]))
		for _, g := range groups {
			if g == group {
				return deserializeErr(errDuplicateNamedGroup)
			}
		}
		groups = append(groups, group)
	}

	e.groups = groups
	return nil
}
