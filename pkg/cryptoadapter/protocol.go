package cryptoadapter

// Wire frames between RemoteCryptoAdapter and the crypto daemon. JSON over
// one websocket session; []byte fields ride as base64 the way
// encoding/json encodes them.

const (
	opLoadPreSharedKey     = "loadPreSharedKey"
	opGenerateX25519       = "generateX25519"
	opDeriveECDHE          = "deriveEcdhe"
	opGenerateMasterSecret = "generateMasterSecret"
	opSign                 = "sign"
)

type daemonRequest struct {
	ID uint64 `json:"id"`
	Op string `json:"op"`

	KeyID           string `json:"keyId,omitempty"`
	PeerPublicKey   []byte `json:"peerPublicKey,omitempty"`
	Message         []byte `json:"message,omitempty"`
	PreMasterSecret []byte `json:"preMasterSecret,omitempty"`
	ClientRandom    []byte `json:"clientRandom,omitempty"`
	ServerRandom    []byte `json:"serverRandom,omitempty"`
	HashAlgorithm   uint16 `json:"hashAlgorithm,omitempty"`
}

type daemonResponse struct {
	ID uint64 `json:"id"`

	// Error is empty on success; Code then carries the adapter error
	// class for the caller to rebuild.
	Error string `json:"error,omitempty"`
	Code  uint8  `json:"code,omitempty"`

	KeyID string `json:"keyId,omitempty"`
	Data  []byte `json:"data,omitempty"`
}
