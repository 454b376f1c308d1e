// Package keyexchange implements the key-exchange side of the handshake
// as interchangeable strategies: the state machine picks one per
// negotiated cipher suite and drives it through the four exchange steps
// without knowing which algorithm is underneath.
package keyexchange

import (
	"errors"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

var (
	ErrInvalidArgument      = errors.New("invalid key exchange argument")
	ErrPskIdentityNotFound  = errors.New("PSK identity not found")
	ErrCryptoAdapterFailure = errors.New("crypto adapter failure")
	errNoPreMasterSecret    = errors.New("pre-master secret not derived yet")
)

// Context carries the handshake randoms the exchange messages are bound
// to. Both randoms must be populated before any exchange step runs.
type Context struct {
	ClientRandom []byte
	ServerRandom []byte
}

// Algorithm is one key-exchange strategy. Message payloads cross this
// boundary in their opaque layer form; the strategy owns the typed
// decoding because the payload layout depends on the algorithm.
type Algorithm interface {
	// PrepareServerKeyExchangeMessage builds the ServerKeyExchange body.
	PrepareServerKeyExchangeMessage(ctx *Context) (layer.Message, error)
	// OnServerKeyExchangeMessageReceived consumes the peer's
	// ServerKeyExchange payload.
	OnServerKeyExchangeMessageReceived(ctx *Context, payload []byte) error
	// PrepareClientKeyExchangeMessage builds the ClientKeyExchange body.
	PrepareClientKeyExchangeMessage(ctx *Context) (layer.Message, error)
	// OnClientKeyExchangeMessageReceived consumes the peer's
	// ClientKeyExchange payload.
	OnClientKeyExchangeMessageReceived(ctx *Context, payload []byte) error
	// PreMasterSecret hands out the derived secret once the exchange
	// completed.
	PreMasterSecret() ([]byte, error)
}
