package ciphersuite

import (
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

const (
	gcmNonceSize      = 12
	gcmExplicitLength = 8
	gcmTagLength      = 16
)

// gcmSuite is AES-GCM record protection per RFC 5288: a 4-byte implicit
// IV from the key block concatenated with an 8-byte explicit part carried
// in the record, the sequence bound as additional data.
type gcmSuite struct {
	baseSuite
	encryptor cryptoadapter.Encryptor
	decryptor cryptoadapter.Decryptor
	writeIV   []byte
	readIV    []byte
}

func (s *gcmSuite) Init(masterSecret cryptoadapter.MasterSecretContainer, clientRandom, serverRandom []byte, isClient bool) error {
	block, err := expandKeyBlock(s.adapter, s.p, masterSecret, clientRandom, serverRandom, isClient)
	if err != nil {
		return err
	}

	if s.encryptor, err = s.adapter.CreateEncryptor(s.p.cipher, block.write.key); err != nil {
		return err
	}
	if s.decryptor, err = s.adapter.CreateDecryptor(s.p.cipher, block.read.key); err != nil {
		return err
	}
	s.writeIV = block.write.iv
	s.readIV = block.read.iv
	s.initialized = true
	return nil
}

func (s *gcmSuite) Encrypt(header *layer.RecordHeader, plaintext []byte) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}

	seq := s.recordSeq(header, true)
	nonce := make([]byte, 0, gcmNonceSize)
	nonce = append(nonce, s.writeIV...)
	nonce = append(nonce, seq[:]...)

	sealed, err := s.encryptor.Encrypt(nonce, plaintext, additionalData(seq, header, len(plaintext)))
	if err != nil {
		return nil, err
	}

	// record = explicit nonce ‖ ciphertext ‖ tag
	out := make([]byte, 0, gcmExplicitLength+len(sealed))
	out = append(out, seq[:]...)
	out = append(out, sealed...)
	s.bumpSeq(header, true)
	return out, nil
}

func (s *gcmSuite) Decrypt(header *layer.RecordHeader, ciphertext []byte) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if len(ciphertext) < gcmExplicitLength+gcmTagLength {
		return nil, badRecord(errRecordTooShort)
	}

	seq := s.recordSeq(header, false)
	nonce := make([]byte, 0, gcmNonceSize)
	nonce = append(nonce, s.readIV...)
	nonce = append(nonce, ciphertext[:gcmExplicitLength]...)

	plaintextLen := len(ciphertext) - gcmExplicitLength - gcmTagLength
	plaintext, err := s.decryptor.Decrypt(nonce, ciphertext[gcmExplicitLength:], additionalData(seq, header, plaintextLen))
	if err != nil {
		return nil, badRecord(err)
	}
	s.bumpSeq(header, false)
	return plaintext, nil
}
