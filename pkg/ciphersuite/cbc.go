package ciphersuite

import (
	"crypto/hmac"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

const cbcBlockSize = 16

// cbcSuite is HMAC mac-then-encrypt per RFC 5246 §6.2.3.2 with an
// explicit random IV per record: record = IV ‖ CBC(fragment ‖ MAC ‖
// padding ‖ padding_length).
type cbcSuite struct {
	baseSuite
	encryptor cryptoadapter.Encryptor
	decryptor cryptoadapter.Decryptor
	writeMAC  cryptoadapter.MACGenerator
	readMAC   cryptoadapter.MACGenerator
	rng       cryptoadapter.RNG
}

func (s *cbcSuite) Init(masterSecret cryptoadapter.MasterSecretContainer, clientRandom, serverRandom []byte, isClient bool) error {
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
	if s.writeMAC, err = s.adapter.CreateMACGenerator(s.p.macHash, block.write.macKey); err != nil {
		return err
	}
	if s.readMAC, err = s.adapter.CreateMACGenerator(s.p.macHash, block.read.macKey); err != nil {
		return err
	}
	s.rng = s.adapter.CreateRNG()
	s.initialized = true
	return nil
}

func (s *cbcSuite) Encrypt(header *layer.RecordHeader, plaintext []byte) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}

	seq := s.recordSeq(header, true)
	mac, err := s.writeMAC.Generate(append(additionalData(seq, header, len(plaintext)), plaintext...))
	if err != nil {
		return nil, err
	}

	padded := pad(append(append([]byte{}, plaintext...), mac...))

	iv := make([]byte, cbcBlockSize)
	if err := s.rng.Read(iv); err != nil {
		return nil, errRandomExhausted
	}
	encrypted, err := s.encryptor.Encrypt(iv, padded, nil)
	if err != nil {
		return nil, err
	}

	s.bumpSeq(header, true)
	return append(iv, encrypted...), nil
}

func (s *cbcSuite) Decrypt(header *layer.RecordHeader, ciphertext []byte) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if len(ciphertext) < 2*cbcBlockSize || len(ciphertext)%cbcBlockSize != 0 {
		return nil, badRecord(errRecordTooShort)
	}

	padded, err := s.decryptor.Decrypt(ciphertext[:cbcBlockSize], ciphertext[cbcBlockSize:], nil)
	if err != nil {
		return nil, badRecord(err)
	}

	unpadded, err := unpad(padded)
	if err != nil {
		return nil, badRecord(err)
	}
	macSize := s.readMAC.Size()
	if len(unpadded) < macSize {
		return nil, badRecord(errRecordTooShort)
	}
	plaintext := unpadded[:len(unpadded)-macSize]
	receivedMAC := unpadded[len(unpadded)-macSize:]

	seq := s.recordSeq(header, false)
	expectedMAC, err := s.readMAC.Generate(append(additionalData(seq, header, len(plaintext)), plaintext...))
	if err != nil {
		return nil, err
	}
	if !hmac.Equal(receivedMAC, expectedMAC) {
		return nil, badRecord(errMacMismatch)
	}

	s.bumpSeq(header, false)
	return plaintext, nil
}

// pad appends TLS block padding up to the next block boundary: every
// appended byte, the padding_length field included, carries the same
// value.
func pad(data []byte) []byte {
	paddingLength := cbcBlockSize - len(data)%cbcBlockSize
	for i := 0; i < paddingLength; i++ {
		data = append(data, byte(paddingLength-1))
	}
	return data
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errBadPadding
	}
	paddingLength := int(data[len(data)-1]) + 1
	if paddingLength > len(data) {
		return nil, errBadPadding
	}
	for _, b := range data[len(data)-paddingLength:] {
		if int(b) != paddingLength-1 {
			return nil, errBadPadding
		}
	}
	return data[:len(data)-paddingLength], nil
}
