package cryptoadapter

import (
	"errors"

	"github.com/google/uuid"
)

// PrivateKey is a move-only handle to an ephemeral X25519 scalar. The
// scalar either lives in this process or stays inside the remote crypto
// daemon, in which case only the UUID reference is held here. Ownership
// transfers into the derive call that consumes it; a second use fails.
type PrivateKey struct {
	scalar   []byte
	remoteID uuid.UUID
	consumed bool
}

var errKeyConsumed = errors.New("private key already consumed")

// IsRemote reports whether the scalar is daemon-resident.
func (k *PrivateKey) IsRemote() bool {
	return k.remoteID != uuid.Nil
}

// consume hands out the local scalar exactly once and zeroizes it.
func (k *PrivateKey) consume() ([]byte, error) {
	if k.consumed {
		return nil, errKeyConsumed
	}
	k.consumed = true
	scalar := append([]byte{}, k.scalar...)
	for i := range k.scalar {
		k.scalar[i] = 0
	}
	k.scalar = nil
	return scalar, nil
}

// consumeRemote hands out the daemon-side reference exactly once.
func (k *PrivateKey) consumeRemote() (uuid.UUID, error) {
	if k.consumed {
		return uuid.Nil, errKeyConsumed
	}
	k.consumed = true
	return k.remoteID, nil
}

// X25519KeyPair is one freshly generated ephemeral key pair.
type X25519KeyPair struct {
	PublicKey  [32]byte
	PrivateKey *PrivateKey
}
