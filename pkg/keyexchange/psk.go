package keyexchange

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pion/dtls/v2/pkg/crypto/prf"
	log "github.com/sirupsen/logrus"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

// PSK is the pre-shared-key strategy, RFC 4279 plain PSK. No certificates
// move; authentication is possession of the key the identity resolves to.
type PSK struct {
	adapter  cryptoadapter.Adapter
	config   *PskConfig
	isServer bool

	// hint is configured on the server and learned from the wire on the
	// client.
	hint            string
	preMasterSecret []byte
}

func NewPSK(adapter cryptoadapter.Adapter, config *PskConfig, hint string, isServer bool) *PSK {
	return &PSK{
		adapter:  adapter,
		config:   config,
		hint:     hint,
		isServer: isServer,
	}
}

func (p *PSK) PrepareServerKeyExchangeMessage(_ *Context) (layer.Message, error) {
	if p.hint == "" {
		return nil, fmt.Errorf("%w: empty PSK identity hint", ErrInvalidArgument)
	}
	return &layer.MessageServerKeyExchangePsk{IdentityHint: []byte(p.hint)}, nil
}

func (p *PSK) OnServerKeyExchangeMessageReceived(_ *Context, payload []byte) error {
	msg := &layer.MessageServerKeyExchangePsk{}
	if err := msg.Unmarshal(payload); err != nil {
		return err
	}
	p.hint = string(msg.IdentityHint)
	log.Debugf("PSK hint received: %q", p.hint)
	return nil
}

func (p *PSK) PrepareClientKeyExchangeMessage(_ *Context) (layer.Message, error) {
	identity, ok := p.config.IdentityForHint(p.hint)
	if !ok {
		return nil, fmt.Errorf("%w: no identity for hint %q", ErrPskIdentityNotFound, p.hint)
	}
	if err := p.derive(identity, false); err != nil {
		return nil, err
	}
	return &layer.MessageClientKeyExchangePsk{Identity: []byte(identity)}, nil
}

func (p *PSK) OnClientKeyExchangeMessageReceived(_ *Context, payload []byte) error {
	msg := &layer.MessageClientKeyExchangePsk{}
	if err := msg.Unmarshal(payload); err != nil {
		return err
	}
	return p.derive(string(msg.Identity), true)
}

func (p *PSK) derive(identity string, isServer bool) error {
	id := p.config.GetPskUUID(identity, p.hint, isServer)
	if id == uuid.Nil {
		return fmt.Errorf("%w: identity %q", ErrPskIdentityNotFound, identity)
	}

	psk, err := p.adapter.LoadPreSharedKey(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}

	p.preMasterSecret = prf.PSKPreMasterSecret(psk)
	return nil
}

func (p *PSK) PreMasterSecret() ([]byte, error) {
	if p.preMasterSecret == nil {
		return nil, errNoPreMasterSecret
	}
	return p.preMasterSecret, nil
}
