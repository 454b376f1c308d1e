package ciphersuite

import (
	"crypto/hmac"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

// nullSuite covers the unencrypted suites. With a MAC hash configured the
// fragment travels in the clear followed by its HMAC; without one
// (TLS_NULL_WITH_NULL_NULL, the initial security state) records pass
// through untouched.
type nullSuite struct {
	baseSuite
	writeMAC cryptoadapter.MACGenerator
	readMAC  cryptoadapter.MACGenerator
}

func (s *nullSuite) Init(masterSecret cryptoadapter.MasterSecretContainer, clientRandom, serverRandom []byte, isClient bool) error {
	if s.p.macKeyLen == 0 {
		s.initialized = true
		return nil
	}

	block, err := expandKeyBlock(s.adapter, s.p, masterSecret, clientRandom, serverRandom, isClient)
	if err != nil {
		return err
	}
	if s.writeMAC, err = s.adapter.CreateMACGenerator(s.p.macHash, block.write.macKey); err != nil {
		return err
	}
	if s.readMAC, err = s.adapter.CreateMACGenerator(s.p.macHash, block.read.macKey); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

func (s *nullSuite) Encrypt(header *layer.RecordHeader, plaintext []byte) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if s.writeMAC == nil {
		return append([]byte{}, plaintext...), nil
	}

	seq := s.recordSeq(header, true)
	mac, err := s.writeMAC.Generate(append(additionalData(seq, header, len(plaintext)), plaintext...))
	if err != nil {
		return nil, err
	}
	s.bumpSeq(header, true)
	return append(append([]byte{}, plaintext...), mac...), nil
}

func (s *nullSuite) Decrypt(header *layer.RecordHeader, ciphertext []byte) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if s.readMAC == nil {
		return append([]byte{}, ciphertext...), nil
	}

	macSize := s.readMAC.Size()
	if len(ciphertext) < macSize {
		return nil, badRecord(errRecordTooShort)
	}
	plaintext := ciphertext[:len(ciphertext)-macSize]
	receivedMAC := ciphertext[len(ciphertext)-macSize:]

	seq := s.recordSeq(header, false)
	expectedMAC, err := s.readMAC.Generate(append(additionalData(seq, header, len(plaintext)), plaintext...))
	if err != nil {
		return nil, err
	}
	if !hmac.Equal(receivedMAC, expectedMAC) {
		return nil, badRecord(errMacMismatch)
	}

	s.bumpSeq(header, false)
	return append([]byte{}, plaintext...), nil
}
