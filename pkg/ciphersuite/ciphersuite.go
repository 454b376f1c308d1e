// Package ciphersuite builds the record-protection pipeline for a
// negotiated session: a Factory maps the negotiated suite identifier to
// a fresh CipherSuite whose encryptor, decryptor and MAC are constructed
// through the crypto adapter. One CipherSuite instance protects exactly
// one connection and is not reused across handshakes.
package ciphersuite

import (
	"errors"
	"fmt"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

var (
	// ErrNotInitialized is returned when Encrypt or Decrypt runs before
	// Init derived the key block.
	ErrNotInitialized = errors.New("cipher suite not initialized")
	// ErrBadRecord covers every record that fails authentication or
	// structural checks on decrypt. Callers map it to bad_record_mac.
	ErrBadRecord = errors.New("bad record")

	errRecordTooShort  = errors.New("record too short")
	errBadPadding      = errors.New("invalid block padding")
	errMacMismatch     = errors.New("MAC mismatch")
	errRandomExhausted = errors.New("record IV generation failed")
)

// SuiteID is a TLS cipher-suite identifier from the IANA registry.
type SuiteID uint16

const (
	NullWithNullNull              SuiteID = 0x0000
	PskWithNullSha256             SuiteID = 0x00b0
	PskWithAes128GcmSha256        SuiteID = 0x00a8
	EcdheEcdsaWithNullSha1        SuiteID = 0xc006
	EcdheEcdsaWithAes128CbcSha256 SuiteID = 0xc023
	EcdheEcdsaWithAes256CbcSha384 SuiteID = 0xc024
	EcdheEcdsaWithAes128GcmSha256 SuiteID = 0xc02b
	EcdheEcdsaWithAes256GcmSha384 SuiteID = 0xc02c
)

func (id SuiteID) String() string {
	switch id {
	case NullWithNullNull:
		return "TLS_NULL_WITH_NULL_NULL"
	case PskWithNullSha256:
		return "TLS_PSK_WITH_NULL_SHA256"
	case PskWithAes128GcmSha256:
		return "TLS_PSK_WITH_AES_128_GCM_SHA256"
	case EcdheEcdsaWithNullSha1:
		return "TLS_ECDHE_ECDSA_WITH_NULL_SHA"
	case EcdheEcdsaWithAes128CbcSha256:
		return "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256"
	case EcdheEcdsaWithAes256CbcSha384:
		return "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA384"
	case EcdheEcdsaWithAes128GcmSha256:
		return "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256"
	case EcdheEcdsaWithAes256GcmSha384:
		return "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384"
	default:
		return fmt.Sprintf("unknown cipher suite 0x%04x", uint16(id))
	}
}

// CipherSuite protects the record layer of one connection. Init must run
// exactly once, after the handshake produced the master secret; Encrypt
// and Decrypt then transform record payloads in place of the plaintext
// fragment. Instances are not safe for concurrent use.
type CipherSuite interface {
	ID() SuiteID

	// Init expands the TLS 1.2 key block from the master secret and
	// builds the directional cipher and MAC contexts. isClient selects
	// which half of the key block writes and which reads.
	Init(masterSecret cryptoadapter.MasterSecretContainer, clientRandom, serverRandom []byte, isClient bool) error

	// Encrypt protects one outgoing record fragment. The header carries
	// the version, content type and, for datagram roles, the epoch and
	// sequence number bound into the MAC or AEAD.
	Encrypt(header *layer.RecordHeader, plaintext []byte) ([]byte, error)

	// Decrypt is the dual of Encrypt and returns the plaintext fragment.
	Decrypt(header *layer.RecordHeader, ciphertext []byte) ([]byte, error)
}

func badRecord(cause error) error {
	return fmt.Errorf("%w: %w", ErrBadRecord, cause)
}
