package cryptoadapter

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startDaemon runs a crypto daemon over an httptest server and returns an
// adapter connected to it.
func startDaemon(t *testing.T, storage KeyStorageProvider, signingKeys map[uuid.UUID]ed25519.PrivateKey) *RemoteCryptoAdapter {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		NewDaemonSession(conn, storage, signingKeys).Serve()
	}))
	t.Cleanup(server.Close)

	adapter, err := DialRemoteCryptoAdapter("ws" + strings.TrimPrefix(server.URL, "http"))
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestRemoteLoadPreSharedKey(t *testing.T) {
	storage := NewInMemoryKeyStorage()
	id := uuid.New()
	storage.AddPreSharedKey(id, []byte("shared secret"))

	adapter := startDaemon(t, storage, nil)

	key, err := adapter.LoadPreSharedKey(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("shared secret"), key)

	_, err = adapter.LoadPreSharedKey(uuid.New())
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeRuntimeError, adapterErr.Code)
}

func TestRemoteX25519Agreement(t *testing.T) {
	adapter := startDaemon(t, NewInMemoryKeyStorage(), nil)
	local := NewPerformanceCryptoAdapter(nil)

	remotePair, err := adapter.GenerateX25519KeyPair()
	require.NoError(t, err)
	require.True(t, remotePair.PrivateKey.IsRemote())

	localPair, err := local.GenerateX25519KeyPair()
	require.NoError(t, err)

	remoteSecret, err := adapter.DerivePreMasterSecretECDHE(remotePair.PrivateKey, localPair.PublicKey[:])
	require.NoError(t, err)
	localSecret, err := local.DerivePreMasterSecretECDHE(localPair.PrivateKey, remotePair.PublicKey[:])
	require.NoError(t, err)
	assert.Equal(t, localSecret, remoteSecret)
}

func TestRemoteKeyIsSingleUse(t *testing.T) {
	adapter := startDaemon(t, NewInMemoryKeyStorage(), nil)

	pair, err := adapter.GenerateX25519KeyPair()
	require.NoError(t, err)

	peer := make([]byte, 32)
	peer[0] = 9
	_, err = adapter.DerivePreMasterSecretECDHE(pair.PrivateKey, peer)
	require.NoError(t, err)

	_, err = adapter.DerivePreMasterSecretECDHE(pair.PrivateKey, peer)
	require.Error(t, err)
}

func TestRemoteGenerateMasterSecretMatchesLocal(t *testing.T) {
	adapter := startDaemon(t, NewInMemoryKeyStorage(), nil)
	local := NewPerformanceCryptoAdapter(nil)

	clientRandom := make([]byte, 32)
	serverRandom := make([]byte, 32)
	rand.Read(clientRandom)
	rand.Read(serverRandom)

	remote, err := adapter.GenerateMasterSecret([]byte("pre-master"), clientRandom, serverRandom, hash.SHA256)
	require.NoError(t, err)
	expected, err := local.GenerateMasterSecret([]byte("pre-master"), clientRandom, serverRandom, hash.SHA256)
	require.NoError(t, err)
	assert.Equal(t, expected, remote)
}

func TestRemoteSigner(t *testing.T) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	keyID := uuid.New()

	adapter := startDaemon(t, NewInMemoryKeyStorage(), map[uuid.UUID]ed25519.PrivateKey{keyID: private})

	signer := adapter.CreateRemoteSigner(keyID)
	sig, err := signer.Sign([]byte("server params"))
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(public, []byte("server params"), sig))

	unknown := adapter.CreateRemoteSigner(uuid.New())
	_, err = unknown.Sign([]byte("server params"))
	require.Error(t, err)
}
