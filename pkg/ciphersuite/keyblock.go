package ciphersuite

import (
	"encoding/binary"

	"github.com/pion/dtls/v2/pkg/crypto/hash"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/util"
)

const keyExpansionLabel = "key expansion"

// params fixes the algorithm selection of one suite. macHash is hash.None
// for the AEAD suites, which authenticate through the cipher itself.
type params struct {
	cipher     cryptoadapter.CipherAlgorithm
	macHash    hash.Algorithm
	macKeyLen  int
	fixedIVLen int
	prfHash    hash.Algorithm
}

type directionKeys struct {
	macKey []byte
	key    []byte
	iv     []byte
}

type keyBlock struct {
	write directionKeys
	read  directionKeys
}

// expandKeyBlock derives the RFC 5246 §6.3 key block and splits it into
// the write and read halves for this endpoint.
func expandKeyBlock(adapter cryptoadapter.Adapter, p params, masterSecret cryptoadapter.MasterSecretContainer, clientRandom, serverRandom []byte, isClient bool) (keyBlock, error) {
	prf, err := adapter.CreatePRF(p.prfHash)
	if err != nil {
		return keyBlock{}, err
	}

	seed := make([]byte, 0, len(serverRandom)+len(clientRandom))
	seed = append(seed, serverRandom...)
	seed = append(seed, clientRandom...)

	keyLen := p.cipher.KeySize()
	total := 2*p.macKeyLen + 2*keyLen + 2*p.fixedIVLen
	block, err := prf.Expand(masterSecret[:], keyExpansionLabel, seed, total)
	if err != nil {
		return keyBlock{}, err
	}

	next := func(n int) []byte {
		out := block[:n:n]
		block = block[n:]
		return out
	}
	client := directionKeys{}
	server := directionKeys{}
	client.macKey = next(p.macKeyLen)
	server.macKey = next(p.macKeyLen)
	client.key = next(keyLen)
	server.key = next(keyLen)
	client.iv = next(p.fixedIVLen)
	server.iv = next(p.fixedIVLen)

	if isClient {
		return keyBlock{write: client, read: server}, nil
	}
	return keyBlock{write: server, read: client}, nil
}

// baseSuite carries the pieces every concrete suite shares: identity,
// adapter handle and the per-direction record sequence counters used by
// the stream roles (datagram roles take epoch and sequence from the
// record header instead).
type baseSuite struct {
	id          SuiteID
	adapter     cryptoadapter.Adapter
	p           params
	initialized bool
	writeSeq    uint64
	readSeq     uint64
}

func (b *baseSuite) ID() SuiteID {
	return b.id
}

func (b *baseSuite) recordSeq(header *layer.RecordHeader, write bool) [8]byte {
	var seq [8]byte
	if header.Role.IsDatagram() {
		binary.BigEndian.PutUint16(seq[:2], header.Epoch)
		util.BigEndian.PutUint48(seq[2:], header.SequenceNumber)
		return seq
	}
	if write {
		binary.BigEndian.PutUint64(seq[:], b.writeSeq)
	} else {
		binary.BigEndian.PutUint64(seq[:], b.readSeq)
	}
	return seq
}

// bumpSeq advances the stream sequence counter after a successful
// operation. Datagram sequence numbers live in the record header and are
// the record layer's to manage.
func (b *baseSuite) bumpSeq(header *layer.RecordHeader, write bool) {
	if header.Role.IsDatagram() {
		return
	}
	if write {
		b.writeSeq++
	} else {
		b.readSeq++
	}
}

// additionalData builds the RFC 5246 §6.2.3.3 authenticated prefix:
// seq_num ‖ type ‖ version ‖ length, with length the plaintext fragment
// size. The same layout feeds the HMAC of the CBC and Null suites.
func additionalData(seq [8]byte, header *layer.RecordHeader, length int) []byte {
	out := make([]byte, 13)
	copy(out, seq[:])
	out[8] = byte(header.ContentType)
	binary.BigEndian.PutUint16(out[9:], uint16(header.Version))
	binary.BigEndian.PutUint16(out[11:], uint16(length))
	return out
}
