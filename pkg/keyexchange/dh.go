package keyexchange

import (
	"crypto"
	"fmt"

	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/signature"
	log "github.com/sirupsen/logrus"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

// DH is the ECDHE strategy: X25519 key agreement with Ed25519-signed
// server parameters. The signature covers
// client_random ‖ server_random ‖ ServerECDHParams (RFC 4492 §5.4).
type DH struct {
	adapter cryptoadapter.Adapter

	// signer signs the server parameters; set on the server side.
	signer cryptoadapter.Signer
	// peerPublicKey verifies the parameter signature; set on the client
	// side after certificate verification.
	peerPublicKey crypto.PublicKey

	// ownKeyPair's private half is consumed by the derive step.
	ownKeyPair      *cryptoadapter.X25519KeyPair
	peerPoint       [layer.X25519PublicKeySize]byte
	havePeerPoint   bool
	preMasterSecret []byte
}

func NewDH(adapter cryptoadapter.Adapter) *DH {
	return &DH{adapter: adapter}
}

// SetSigner installs the server's parameter-signing key context.
func (d *DH) SetSigner(signer cryptoadapter.Signer) {
	d.signer = signer
}

// SetPeerPublicKey installs the verification key extracted from the
// verified server certificate.
func (d *DH) SetPeerPublicKey(publicKey crypto.PublicKey) {
	d.peerPublicKey = publicKey
}

func (d *DH) PrepareServerKeyExchangeMessage(ctx *Context) (layer.Message, error) {
	if d.signer == nil {
		return nil, fmt.Errorf("%w: no signer configured", ErrInvalidArgument)
	}

	keyPair, err := d.adapter.GenerateX25519KeyPair()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}
	d.ownKeyPair = keyPair

	msg := &layer.MessageServerKeyExchangeDh{
		PublicKey:          keyPair.PublicKey,
		HashAlgorithm:      hash.Ed25519,
		SignatureAlgorithm: signature.Ed25519,
	}

	signed, err := d.signer.Sign(signedParams(ctx, msg.Params()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}
	msg.Signature = signed
	return msg, nil
}

func (d *DH) OnServerKeyExchangeMessageReceived(ctx *Context, payload []byte) error {
	msg := &layer.MessageServerKeyExchangeDh{}
	if err := msg.Unmarshal(payload); err != nil {
		return err
	}

	verifier, err := d.adapter.CreateSignatureVerifier(d.peerPublicKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}
	if err := verifier.Verify(signedParams(ctx, msg.Params()), msg.Signature); err != nil {
		log.Debug("ServerKeyExchange parameter signature rejected")
		return fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}

	d.peerPoint = msg.PublicKey
	d.havePeerPoint = true
	return nil
}

func (d *DH) PrepareClientKeyExchangeMessage(_ *Context) (layer.Message, error) {
	if !d.havePeerPoint {
		return nil, fmt.Errorf("%w: ServerKeyExchange not received", ErrInvalidArgument)
	}

	keyPair, err := d.adapter.GenerateX25519KeyPair()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}

	// private half transfers into the adapter here
	d.preMasterSecret, err = d.adapter.DerivePreMasterSecretECDHE(keyPair.PrivateKey, d.peerPoint[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}

	return &layer.MessageClientKeyExchangeDh{PublicKey: keyPair.PublicKey}, nil
}

func (d *DH) OnClientKeyExchangeMessageReceived(_ *Context, payload []byte) error {
	msg := &layer.MessageClientKeyExchangeDh{}
	if err := msg.Unmarshal(payload); err != nil {
		return err
	}
	if d.ownKeyPair == nil {
		return fmt.Errorf("%w: ServerKeyExchange not prepared", ErrInvalidArgument)
	}

	preMasterSecret, err := d.adapter.DerivePreMasterSecretECDHE(d.ownKeyPair.PrivateKey, msg.PublicKey[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCryptoAdapterFailure, err)
	}
	d.preMasterSecret = preMasterSecret
	return nil
}

func (d *DH) PreMasterSecret() ([]byte, error) {
	if d.preMasterSecret == nil {
		return nil, errNoPreMasterSecret
	}
	return d.preMasterSecret, nil
}

// signedParams assembles the byte string the parameter signature covers.
func signedParams(ctx *Context, params []byte) []byte {
	plaintext := make([]byte, 0, len(ctx.ClientRandom)+len(ctx.ServerRandom)+len(params))
	plaintext = append(plaintext, ctx.ClientRandom...)
	plaintext = append(plaintext, ctx.ServerRandom...)
	return append(plaintext, params...)
}
