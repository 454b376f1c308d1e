package cryptoadapter

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHash(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)

	h, err := a.CreateHash(hash.SHA256)
	require.NoError(t, err)
	assert.Equal(t, 32, h.Size())

	_, err = a.CreateHash(hash.MD5)
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeUnsupportedAlgorithm, adapterErr.Code)
}

func TestMACGenerator(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)

	mac, err := a.CreateMACGenerator(hash.SHA256, []byte("mac key"))
	require.NoError(t, err)
	assert.Equal(t, 32, mac.Size())

	first, err := mac.Generate([]byte("payload"))
	require.NoError(t, err)
	second, err := mac.Generate([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = a.CreateMACGenerator(hash.SHA256, nil)
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeInvalidArgument, adapterErr.Code)
}

func TestGcmCipherRoundTrip(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	key := make([]byte, 16)
	rand.Read(key)

	enc, err := a.CreateEncryptor(CipherAes128Gcm, key)
	require.NoError(t, err)
	dec, err := a.CreateDecryptor(CipherAes128Gcm, key)
	require.NoError(t, err)

	nonce := make([]byte, 12)
	aad := []byte{0, 0, 0, 0, 0, 0, 0, 1, 23, 0x03, 0x03, 0, 5}
	ciphertext, err := enc.Encrypt(nonce, []byte("hello"), aad)
	require.NoError(t, err)

	plaintext, err := dec.Decrypt(nonce, ciphertext, aad)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), plaintext)

	// authentication covers the additional data
	_, err = dec.Decrypt(nonce, ciphertext, []byte("other"))
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeRuntimeError, adapterErr.Code)
}

func TestGcmCipherRejectsBadNonceSize(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	key := make([]byte, 32)

	enc, err := a.CreateEncryptor(CipherAes256Gcm, key)
	require.NoError(t, err)

	_, err = enc.Encrypt(make([]byte, 8), []byte("x"), nil)
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeInvalidIVSize, adapterErr.Code)
}

func TestCbcCipherRoundTrip(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	key := make([]byte, 16)
	rand.Read(key)

	enc, err := a.CreateEncryptor(CipherAes128Cbc, key)
	require.NoError(t, err)
	dec, err := a.CreateDecryptor(CipherAes128Cbc, key)
	require.NoError(t, err)

	iv := make([]byte, 16)
	rand.Read(iv)
	plaintext := make([]byte, 48)
	rand.Read(plaintext)

	ciphertext, err := enc.Encrypt(iv, plaintext, nil)
	require.NoError(t, err)
	decrypted, err := dec.Decrypt(iv, ciphertext, nil)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	// the primitive refuses unaligned input; padding is the suite's job
	_, err = enc.Encrypt(iv, plaintext[:47], nil)
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeInvalidArgument, adapterErr.Code)
}

func TestBadKeySize(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	_, err := a.CreateEncryptor(CipherAes256Gcm, make([]byte, 16))
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeInvalidArgument, adapterErr.Code)
}

func TestPRFDeterministic(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	p, err := a.CreatePRF(hash.SHA256)
	require.NoError(t, err)

	first, err := p.Expand([]byte("secret"), "key expansion", []byte("seed"), 72)
	require.NoError(t, err)
	require.Len(t, first, 72)

	second, err := p.Expand([]byte("secret"), "key expansion", []byte("seed"), 72)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := p.Expand([]byte("secret"), "master secret", []byte("seed"), 72)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestX25519Agreement(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)

	alice, err := a.GenerateX25519KeyPair()
	require.NoError(t, err)
	bob, err := a.GenerateX25519KeyPair()
	require.NoError(t, err)

	aliceSecret, err := a.DerivePreMasterSecretECDHE(alice.PrivateKey, bob.PublicKey[:])
	require.NoError(t, err)
	bobSecret, err := a.DerivePreMasterSecretECDHE(bob.PrivateKey, alice.PublicKey[:])
	require.NoError(t, err)
	assert.Equal(t, aliceSecret, bobSecret)
}

func TestPrivateKeyMoveOnly(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)

	pair, err := a.GenerateX25519KeyPair()
	require.NoError(t, err)
	peer, err := a.GenerateX25519KeyPair()
	require.NoError(t, err)

	_, err = a.DerivePreMasterSecretECDHE(pair.PrivateKey, peer.PublicKey[:])
	require.NoError(t, err)

	// the derive call consumed the key
	_, err = a.DerivePreMasterSecretECDHE(pair.PrivateKey, peer.PublicKey[:])
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeInvalidArgument, adapterErr.Code)
}

func TestGenerateMasterSecret(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	clientRandom := make([]byte, 32)
	serverRandom := make([]byte, 32)
	rand.Read(clientRandom)
	rand.Read(serverRandom)

	first, err := a.GenerateMasterSecret([]byte("pre-master"), clientRandom, serverRandom, hash.SHA256)
	require.NoError(t, err)
	second, err := a.GenerateMasterSecret([]byte("pre-master"), clientRandom, serverRandom, hash.SHA256)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first[:], MasterSecretSize)
}

func TestLoadPreSharedKey(t *testing.T) {
	storage := NewInMemoryKeyStorage()
	id := uuid.New()
	storage.AddPreSharedKey(id, []byte{1, 2, 3, 4})

	a := NewPerformanceCryptoAdapter(storage)
	key, err := a.LoadPreSharedKey(id)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, key)

	_, err = a.LoadPreSharedKey(uuid.New())
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, CodeRuntimeError, adapterErr.Code)
}

func TestEd25519SignVerify(t *testing.T) {
	a := NewPerformanceCryptoAdapter(nil)
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer, err := a.CreateSigner(private)
	require.NoError(t, err)
	sig, err := signer.Sign([]byte("transcript"))
	require.NoError(t, err)

	verifier, err := a.CreateSignatureVerifier(public)
	require.NoError(t, err)
	require.NoError(t, verifier.Verify([]byte("transcript"), sig))

	sig[0] ^= 0xff
	require.Error(t, verifier.Verify([]byte("transcript"), sig))
}
