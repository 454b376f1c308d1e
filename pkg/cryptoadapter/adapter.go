// Package cryptoadapter abstracts hash, MAC, cipher, PRF, RNG, signature
// and key-agreement operations behind one interface so the handshake and
// record code never touch a concrete crypto provider. Two concretions
// exist: PerformanceCryptoAdapter (in-process) and RemoteCryptoAdapter
// (key material held by an out-of-process daemon, referenced by UUID).
package cryptoadapter

import (
	"crypto"
	stdhash "hash"

	"github.com/google/uuid"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
)

// MasterSecretSize is the fixed TLS 1.2 master-secret size, RFC 5246 §8.1.
const MasterSecretSize = 48

// MasterSecretContainer holds the 48-byte PRF expansion of the pre-master
// secret.
type MasterSecretContainer [MasterSecretSize]byte

// CipherAlgorithm selects a record-protection cipher construction.
type CipherAlgorithm uint8

const (
	CipherNull CipherAlgorithm = iota
	CipherAes128Gcm
	CipherAes256Gcm
	CipherAes128Cbc
	CipherAes256Cbc
)

// KeySize returns the cipher key size in bytes.
func (c CipherAlgorithm) KeySize() int {
	switch c {
	case CipherAes128Gcm, CipherAes128Cbc:
		return 16
	case CipherAes256Gcm, CipherAes256Cbc:
		return 32
	default:
		return 0
	}
}

// IVSize returns the per-record IV size the construction expects: the
// 12-byte GCM nonce or the 16-byte CBC IV.
func (c CipherAlgorithm) IVSize() int {
	switch c {
	case CipherAes128Gcm, CipherAes256Gcm:
		return 12
	case CipherAes128Cbc, CipherAes256Cbc:
		return 16
	default:
		return 0
	}
}

func (c CipherAlgorithm) String() string {
	switch c {
	case CipherNull:
		return "NULL"
	case CipherAes128Gcm:
		return "AES-128-GCM"
	case CipherAes256Gcm:
		return "AES-256-GCM"
	case CipherAes128Cbc:
		return "AES-128-CBC"
	case CipherAes256Cbc:
		return "AES-256-CBC"
	default:
		return "Unknown"
	}
}

// Encryptor protects one direction of the record layer. For AEAD
// constructions additionalData is authenticated; CBC ignores it.
type Encryptor interface {
	Encrypt(iv, plaintext, additionalData []byte) ([]byte, error)
}

// Decryptor is the dual of Encryptor.
type Decryptor interface {
	Decrypt(iv, ciphertext, additionalData []byte) ([]byte, error)
}

// MACGenerator computes keyed MACs for the CBC and Null-cipher suites.
type MACGenerator interface {
	Generate(data []byte) ([]byte, error)
	Size() int
}

// PRF is the TLS 1.2 pseudo-random function for one hash selection.
type PRF interface {
	Expand(secret []byte, label string, seed []byte, outLen int) ([]byte, error)
}

// RNG produces cryptographically secure random bytes.
type RNG interface {
	Read(p []byte) error
}

// Signer signs handshake transcripts and key-exchange parameters.
type Signer interface {
	Sign(message []byte) ([]byte, error)
}

// SignatureVerifier verifies a signature against a fixed public key.
type SignatureVerifier interface {
	Verify(message, signature []byte) error
}

// Adapter is the crypto provider boundary. Implementations are safe for
// sequential use within one connection; concurrent use across connections
// needs external synchronization.
type Adapter interface {
	CreateHash(algorithm hash.Algorithm) (stdhash.Hash, error)
	CreateMACGenerator(algorithm hash.Algorithm, key []byte) (MACGenerator, error)
	CreateEncryptor(algorithm CipherAlgorithm, key []byte) (Encryptor, error)
	CreateDecryptor(algorithm CipherAlgorithm, key []byte) (Decryptor, error)
	CreatePRF(algorithm hash.Algorithm) (PRF, error)
	CreateRNG() RNG

	GenerateX25519KeyPair() (*X25519KeyPair, error)
	// DerivePreMasterSecretECDHE consumes the private key.
	DerivePreMasterSecretECDHE(privateKey *PrivateKey, peerPublicKey []byte) ([]byte, error)
	GenerateMasterSecret(preMasterSecret, clientRandom, serverRandom []byte, algorithm hash.Algorithm) (MasterSecretContainer, error)

	LoadPreSharedKey(id uuid.UUID) ([]byte, error)
	CreateSigner(key crypto.PrivateKey) (Signer, error)
	CreateSignatureVerifier(publicKey crypto.PublicKey) (SignatureVerifier, error)
}
