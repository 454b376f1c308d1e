package keyexchange

import (
	"errors"

	"github.com/google/uuid"
)

// PskConfig maps the wire-visible PSK names onto key-storage references:
// hint → identity tells the server which client is connecting, identity →
// UUID resolves to the crypto-adapter key storage. A UUID association is
// immutable once made.
type PskConfig struct {
	hintToIdentity map[string]string
	identityToUUID map[string]uuid.UUID
}

var errIdentityRebound = errors.New("PSK identity already bound to a different UUID")

func NewPskConfig() *PskConfig {
	return &PskConfig{
		hintToIdentity: make(map[string]string),
		identityToUUID: make(map[string]uuid.UUID),
	}
}

// SetHintIdentity records which identity a hint selects.
func (c *PskConfig) SetHintIdentity(hint, identity string) {
	c.hintToIdentity[hint] = identity
}

// AssociateIdentity binds an identity to its key-storage UUID. Rebinding
// to a different UUID fails; binding the same UUID again is a no-op.
func (c *PskConfig) AssociateIdentity(identity string, id uuid.UUID) error {
	if existing, ok := c.identityToUUID[identity]; ok {
		if existing != id {
			return errIdentityRebound
		}
		return nil
	}
	c.identityToUUID[identity] = id
	return nil
}

// IdentityForHint resolves the identity a hint selects.
func (c *PskConfig) IdentityForHint(hint string) (string, bool) {
	identity, ok := c.hintToIdentity[hint]
	return identity, ok
}

// GetPskUUID resolves an identity to its key-storage UUID; uuid.Nil when
// the identity is unknown. On the server side the hint lookup must agree
// with the presented identity.
func (c *PskConfig) GetPskUUID(identity, hint string, isServer bool) uuid.UUID {
	if isServer && hint != "" {
		if expected, ok := c.hintToIdentity[hint]; !ok || expected != identity {
			return uuid.Nil
		}
	}
	id, ok := c.identityToUUID[identity]
	if !ok {
		return uuid.Nil
	}
	return id
}
