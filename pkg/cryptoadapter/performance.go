package cryptoadapter

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // TLS 1.2 NullSha1 suite needs it
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"errors"
	stdhash "hash"
	"io"
	"math/big"

	"github.com/google/uuid"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/prf"
	"golang.org/x/crypto/curve25519"
)

// PerformanceCryptoAdapter executes every operation on the local crypto
// provider. Key material never leaves the process.
type PerformanceCryptoAdapter struct {
	keyStorage KeyStorageProvider
}

func NewPerformanceCryptoAdapter(keyStorage KeyStorageProvider) *PerformanceCryptoAdapter {
	return &PerformanceCryptoAdapter{keyStorage: keyStorage}
}

func hashFuncFor(algorithm hash.Algorithm) (func() stdhash.Hash, error) {
	switch algorithm {
	case hash.SHA1:
		return sha1.New, nil
	case hash.SHA256:
		return sha256.New, nil
	case hash.SHA384:
		return sha512.New384, nil
	case hash.SHA512:
		return sha512.New, nil
	default:
		return nil, errors.New("no local hash for " + algorithm.String())
	}
}

func (a *PerformanceCryptoAdapter) CreateHash(algorithm hash.Algorithm) (stdhash.Hash, error) {
	newHash, err := hashFuncFor(algorithm)
	if err != nil {
		return nil, newAdapterError(CodeUnsupportedAlgorithm, "CreateHash", err)
	}
	return newHash(), nil
}

type hmacGenerator struct {
	newHash func() stdhash.Hash
	key     []byte
	size    int
}

func (g *hmacGenerator) Generate(data []byte) ([]byte, error) {
	mac := hmac.New(g.newHash, g.key)
	if _, err := mac.Write(data); err != nil {
		return nil, newAdapterError(CodeRuntimeError, "MAC", err)
	}
	return mac.Sum(nil), nil
}

func (g *hmacGenerator) Size() int {
	return g.size
}

func (a *PerformanceCryptoAdapter) CreateMACGenerator(algorithm hash.Algorithm, key []byte) (MACGenerator, error) {
	newHash, err := hashFuncFor(algorithm)
	if err != nil {
		return nil, newAdapterError(CodeUnsupportedAlgorithm, "CreateMACGenerator", err)
	}
	if len(key) == 0 {
		return nil, newAdapterError(CodeInvalidArgument, "CreateMACGenerator", errors.New("empty MAC key"))
	}
	return &hmacGenerator{
		newHash: newHash,
		key:     append([]byte{}, key...),
		size:    newHash().Size(),
	}, nil
}

type nullCipher struct{}

func (nullCipher) Encrypt(_, plaintext, _ []byte) ([]byte, error) {
	return append([]byte{}, plaintext...), nil
}

func (nullCipher) Decrypt(_, ciphertext, _ []byte) ([]byte, error) {
	return append([]byte{}, ciphertext...), nil
}

type gcmCipher struct {
	aead cipher.AEAD
}

func (c *gcmCipher) Encrypt(iv, plaintext, additionalData []byte) ([]byte, error) {
	if len(iv) != c.aead.NonceSize() {
		return nil, newAdapterError(CodeInvalidIVSize, "Encrypt", errors.New("bad GCM nonce size"))
	}
	return c.aead.Seal(nil, iv, plaintext, additionalData), nil
}

func (c *gcmCipher) Decrypt(iv, ciphertext, additionalData []byte) ([]byte, error) {
	if len(iv) != c.aead.NonceSize() {
		return nil, newAdapterError(CodeInvalidIVSize, "Decrypt", errors.New("bad GCM nonce size"))
	}
	plaintext, err := c.aead.Open(nil, iv, ciphertext, additionalData)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, "Decrypt", err)
	}
	return plaintext, nil
}

// cbcCipher runs raw AES-CBC over block-aligned input. TLS padding and
// MAC handling stay in the cipher-suite layer; this is the primitive.
type cbcCipher struct {
	block cipher.Block
}

func (c *cbcCipher) Encrypt(iv, plaintext, _ []byte) ([]byte, error) {
	if len(iv) != c.block.BlockSize() {
		return nil, newAdapterError(CodeInvalidIVSize, "Encrypt", errors.New("bad CBC IV size"))
	}
	if len(plaintext)%c.block.BlockSize() != 0 {
		return nil, newAdapterError(CodeInvalidArgument, "Encrypt", errors.New("plaintext not block aligned"))
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out, plaintext)
	return out, nil
}

func (c *cbcCipher) Decrypt(iv, ciphertext, _ []byte) ([]byte, error) {
	if len(iv) != c.block.BlockSize() {
		return nil, newAdapterError(CodeInvalidIVSize, "Decrypt", errors.New("bad CBC IV size"))
	}
	if len(ciphertext) == 0 || len(ciphertext)%c.block.BlockSize() != 0 {
		return nil, newAdapterError(CodeInvalidArgument, "Decrypt", errors.New("ciphertext not block aligned"))
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

func (a *PerformanceCryptoAdapter) newCipher(op string, algorithm CipherAlgorithm, key []byte) (interface{}, error) {
	if algorithm == CipherNull {
		return nullCipher{}, nil
	}
	if len(key) != algorithm.KeySize() {
		return nil, newAdapterError(CodeInvalidArgument, op, errors.New("bad key size for "+algorithm.String()))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, op, err)
	}

	switch algorithm {
	case CipherAes128Gcm, CipherAes256Gcm:
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, newAdapterError(CodeRuntimeError, op, err)
		}
		return &gcmCipher{aead: aead}, nil
	case CipherAes128Cbc, CipherAes256Cbc:
		return &cbcCipher{block: block}, nil
	default:
		return nil, newAdapterError(CodeUnsupportedAlgorithm, op, errors.New("unknown cipher algorithm"))
	}
}

func (a *PerformanceCryptoAdapter) CreateEncryptor(algorithm CipherAlgorithm, key []byte) (Encryptor, error) {
	c, err := a.newCipher("CreateEncryptor", algorithm, key)
	if err != nil {
		return nil, err
	}
	return c.(Encryptor), nil
}

func (a *PerformanceCryptoAdapter) CreateDecryptor(algorithm CipherAlgorithm, key []byte) (Decryptor, error) {
	c, err := a.newCipher("CreateDecryptor", algorithm, key)
	if err != nil {
		return nil, err
	}
	return c.(Decryptor), nil
}

type tls12PRF struct {
	newHash func() stdhash.Hash
}

func (p *tls12PRF) Expand(secret []byte, label string, seed []byte, outLen int) ([]byte, error) {
	out, err := prf.PHash(secret, append([]byte(label), seed...), outLen, p.newHash)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, "PRF", err)
	}
	return out, nil
}

func (a *PerformanceCryptoAdapter) CreatePRF(algorithm hash.Algorithm) (PRF, error) {
	newHash, err := hashFuncFor(algorithm)
	if err != nil {
		return nil, newAdapterError(CodeUnsupportedAlgorithm, "CreatePRF", err)
	}
	return &tls12PRF{newHash: newHash}, nil
}

type systemRNG struct{}

func (systemRNG) Read(p []byte) error {
	if _, err := io.ReadFull(rand.Reader, p); err != nil {
		return newAdapterError(CodeRuntimeError, "RNG", err)
	}
	return nil
}

func (a *PerformanceCryptoAdapter) CreateRNG() RNG {
	return systemRNG{}
}

func (a *PerformanceCryptoAdapter) GenerateX25519KeyPair() (*X25519KeyPair, error) {
	scalar := make([]byte, curve25519.ScalarSize)
	if _, err := io.ReadFull(rand.Reader, scalar); err != nil {
		return nil, newAdapterError(CodeRuntimeError, "GenerateX25519KeyPair", err)
	}

	public, err := curve25519.X25519(scalar, curve25519.Basepoint)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, "GenerateX25519KeyPair", err)
	}

	pair := &X25519KeyPair{PrivateKey: &PrivateKey{scalar: scalar}}
	copy(pair.PublicKey[:], public)
	return pair, nil
}

func (a *PerformanceCryptoAdapter) DerivePreMasterSecretECDHE(privateKey *PrivateKey, peerPublicKey []byte) ([]byte, error) {
	if privateKey == nil || privateKey.IsRemote() {
		return nil, newAdapterError(CodeInvalidArgument, "DerivePreMasterSecretECDHE", errors.New("not a local private key"))
	}
	scalar, err := privateKey.consume()
	if err != nil {
		return nil, newAdapterError(CodeInvalidArgument, "DerivePreMasterSecretECDHE", err)
	}
	defer func() {
		for i := range scalar {
			scalar[i] = 0
		}
	}()

	preMasterSecret, err := curve25519.X25519(scalar, peerPublicKey)
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, "DerivePreMasterSecretECDHE", err)
	}
	return preMasterSecret, nil
}

func (a *PerformanceCryptoAdapter) GenerateMasterSecret(preMasterSecret, clientRandom, serverRandom []byte, algorithm hash.Algorithm) (MasterSecretContainer, error) {
	var container MasterSecretContainer

	newHash, err := hashFuncFor(algorithm)
	if err != nil {
		return container, newAdapterError(CodeUnsupportedAlgorithm, "GenerateMasterSecret", err)
	}

	masterSecret, err := prf.MasterSecret(preMasterSecret, clientRandom, serverRandom, newHash)
	if err != nil {
		return container, newAdapterError(CodeRuntimeError, "GenerateMasterSecret", err)
	}
	if len(masterSecret) != MasterSecretSize {
		return container, newAdapterError(CodeRuntimeError, "GenerateMasterSecret", errors.New("unexpected master secret size"))
	}
	copy(container[:], masterSecret)
	return container, nil
}

func (a *PerformanceCryptoAdapter) LoadPreSharedKey(id uuid.UUID) ([]byte, error) {
	if a.keyStorage == nil {
		return nil, newAdapterError(CodeRuntimeError, "LoadPreSharedKey", errors.New("no key storage configured"))
	}
	key, ok := a.keyStorage.PreSharedKey(id)
	if !ok {
		return nil, newAdapterError(CodeRuntimeError, "LoadPreSharedKey", errors.New("key "+id.String()+" not in storage"))
	}
	return key, nil
}

type ed25519Signer struct {
	key ed25519.PrivateKey
}

func (s *ed25519Signer) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.key, message), nil
}

type ecdsaSigner struct {
	key *ecdsa.PrivateKey
}

func (s *ecdsaSigner) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	signature, err := ecdsa.SignASN1(rand.Reader, s.key, digest[:])
	if err != nil {
		return nil, newAdapterError(CodeRuntimeError, "Sign", err)
	}
	return signature, nil
}

func (a *PerformanceCryptoAdapter) CreateSigner(key crypto.PrivateKey) (Signer, error) {
	switch k := key.(type) {
	case ed25519.PrivateKey:
		return &ed25519Signer{key: k}, nil
	case *ecdsa.PrivateKey:
		return &ecdsaSigner{key: k}, nil
	default:
		return nil, newAdapterError(CodeUnsupportedAlgorithm, "CreateSigner", errors.New("unsupported private key type"))
	}
}

type ecdsaSignature struct {
	R, S *big.Int
}

var errSignatureMismatch = errors.New("signature mismatch")

type ed25519Verifier struct {
	key ed25519.PublicKey
}

func (v *ed25519Verifier) Verify(message, signature []byte) error {
	if !ed25519.Verify(v.key, message, signature) {
		return newAdapterError(CodeRuntimeError, "Verify", errSignatureMismatch)
	}
	return nil
}

type ecdsaVerifier struct {
	key *ecdsa.PublicKey
}

func (v *ecdsaVerifier) Verify(message, signature []byte) error {
	sig := &ecdsaSignature{}
	if _, err := asn1.Unmarshal(signature, sig); err != nil {
		return newAdapterError(CodeRuntimeError, "Verify", err)
	}
	if sig.R.Sign() <= 0 || sig.S.Sign() <= 0 {
		return newAdapterError(CodeRuntimeError, "Verify", errSignatureMismatch)
	}
	digest := sha256.Sum256(message)
	if !ecdsa.Verify(v.key, digest[:], sig.R, sig.S) {
		return newAdapterError(CodeRuntimeError, "Verify", errSignatureMismatch)
	}
	return nil
}

func (a *PerformanceCryptoAdapter) CreateSignatureVerifier(publicKey crypto.PublicKey) (SignatureVerifier, error) {
	switch k := publicKey.(type) {
	case ed25519.PublicKey:
		return &ed25519Verifier{key: k}, nil
	case *ecdsa.PublicKey:
		return &ecdsaVerifier{key: k}, nil
	default:
		return nil, newAdapterError(CodeUnsupportedAlgorithm, "CreateSignatureVerifier", errors.New("unsupported public key type"))
	}
}
