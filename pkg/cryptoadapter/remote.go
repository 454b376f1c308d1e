package cryptoadapter

import (
	"crypto"
	"errors"
	stdhash "hash"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
)

// RemoteCryptoAdapter satisfies Adapter by delegating key-material
// operations to an out-of-process crypto daemon over one websocket
// session. Secrets referenced by UUID stay inside the daemon; bulk record
// crypto runs locally since the keys it uses are session keys already
// released to this process by the key schedule.
type RemoteCryptoAdapter struct {
	local *PerformanceCryptoAdapter

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

// NewRemoteCryptoAdapter wraps an established daemon session.
func NewRemoteCryptoAdapter(conn *websocket.Conn) *RemoteCryptoAdapter {
	return &RemoteCryptoAdapter{
		local: NewPerformanceCryptoAdapter(nil),
		conn:  conn,
	}
}

// DialRemoteCryptoAdapter connects to a crypto daemon at url
// (ws://host:port/crypto).
func DialRemoteCryptoAdapter(url string) (*RemoteCryptoAdapter, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, "Dial", err)
	}
	return NewRemoteCryptoAdapter(conn), nil
}

// Close shuts the daemon session down.
func (a *RemoteCryptoAdapter) Close() error {
	return a.conn.Close()
}

// call runs one request/response exchange. The session is a single
// stream, so the exchange is serialized.
func (a *RemoteCryptoAdapter) call(req daemonRequest) (daemonResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	req.ID = a.nextID

	var resp daemonResponse
	if err := a.conn.WriteJSON(&req); err != nil {
		return resp, newAdapterError(CodeRuntimeError, req.Op, err)
	}
	if err := a.conn.ReadJSON(&resp); err != nil {
		return resp, newAdapterError(CodeRuntimeError, req.Op, err)
	}
	if resp.ID != req.ID {
		return resp, newAdapterError(CodeRuntimeError, req.Op, errors.New("response id mismatch"))
	}
	if resp.Error != "" {
		return resp, newAdapterError(ErrorCode(resp.Code), req.Op, errors.New(resp.Error))
	}
	return resp, nil
}

// Local primitives.

func (a *RemoteCryptoAdapter) CreateHash(algorithm hash.Algorithm) (stdhash.Hash, error) {
	return a.local.CreateHash(algorithm)
}

func (a *RemoteCryptoAdapter) CreateMACGenerator(algorithm hash.Algorithm, key []byte) (MACGenerator, error) {
	return a.local.CreateMACGenerator(algorithm, key)
}

func (a *RemoteCryptoAdapter) CreateEncryptor(algorithm CipherAlgorithm, key []byte) (Encryptor, error) {
	return a.local.CreateEncryptor(algorithm, key)
}

func (a *RemoteCryptoAdapter) CreateDecryptor(algorithm CipherAlgorithm, key []byte) (Decryptor, error) {
	return a.local.CreateDecryptor(algorithm, key)
}

func (a *RemoteCryptoAdapter) CreatePRF(algorithm hash.Algorithm) (PRF, error) {
	return a.local.CreatePRF(algorithm)
}

func (a *RemoteCryptoAdapter) CreateRNG() RNG {
	return a.local.CreateRNG()
}

func (a *RemoteCryptoAdapter) CreateSignatureVerifier(publicKey crypto.PublicKey) (SignatureVerifier, error) {
	return a.local.CreateSignatureVerifier(publicKey)
}

// Delegated operations.

func (a *RemoteCryptoAdapter) LoadPreSharedKey(id uuid.UUID) ([]byte, error) {
	resp, err := a.call(daemonRequest{Op: opLoadPreSharedKey, KeyID: id.String()})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (a *RemoteCryptoAdapter) GenerateX25519KeyPair() (*X25519KeyPair, error) {
	resp, err := a.call(daemonRequest{Op: opGenerateX25519})
	if err != nil {
		return nil, err
	}
	keyID, err := uuid.Parse(resp.KeyID)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, opGenerateX25519, err)
	}
	if len(resp.Data) != 32 {
		return nil, newAdapterError(CodeRuntimeError, opGenerateX25519, errors.New("bad public key size"))
	}

	pair := &X25519KeyPair{PrivateKey: &PrivateKey{remoteID: keyID}}
	copy(pair.PublicKey[:], resp.Data)
	return pair, nil
}

func (a *RemoteCryptoAdapter) DerivePreMasterSecretECDHE(privateKey *PrivateKey, peerPublicKey []byte) ([]byte, error) {
	if privateKey == nil || !privateKey.IsRemote() {
		return nil, newAdapterError(CodeInvalidArgument, opDeriveECDHE, errors.New("not a daemon-resident private key"))
	}
	keyID, err := privateKey.consumeRemote()
	if err != nil {
		return nil, newAdapterError(CodeInvalidArgument, opDeriveECDHE, err)
	}

	resp, err := a.call(daemonRequest{
		Op:            opDeriveECDHE,
		KeyID:         keyID.String(),
		PeerPublicKey: peerPublicKey,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (a *RemoteCryptoAdapter) GenerateMasterSecret(preMasterSecret, clientRandom, serverRandom []byte, algorithm hash.Algorithm) (MasterSecretContainer, error) {
	var container MasterSecretContainer

	resp, err := a.call(daemonRequest{
		Op:              opGenerateMasterSecret,
		PreMasterSecret: preMasterSecret,
		ClientRandom:    clientRandom,
		ServerRandom:    serverRandom,
		HashAlgorithm:   uint16(algorithm),
	})
	if err != nil {
		return container, err
	}
	if len(resp.Data) != MasterSecretSize {
		return container, newAdapterError(CodeRuntimeError, opGenerateMasterSecret, errors.New("unexpected master secret size"))
	}
	copy(container[:], resp.Data)
	return container, nil
}

type remoteSigner struct {
	adapter *RemoteCryptoAdapter
	keyID   uuid.UUID
}

func (s *remoteSigner) Sign(message []byte) ([]byte, error) {
	resp, err := s.adapter.call(daemonRequest{
		Op:      opSign,
		KeyID:   s.keyID.String(),
		Message: message,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateRemoteSigner signs with a daemon-resident key.
func (a *RemoteCryptoAdapter) CreateRemoteSigner(keyID uuid.UUID) Signer {
	return &remoteSigner{adapter: a, keyID: keyID}
}

// CreateSigner accepts in-process keys only; daemon-resident signing keys
// go through CreateRemoteSigner.
func (a *RemoteCryptoAdapter) CreateSigner(key crypto.PrivateKey) (Signer, error) {
	return a.local.CreateSigner(key)
}
