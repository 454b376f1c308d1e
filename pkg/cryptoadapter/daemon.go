package cryptoadapter

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/pion/dtls/v2/pkg/crypto/prf"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/curve25519"
)

// DaemonSession is the daemon side of one RemoteCryptoAdapter connection.
// Ephemeral scalars never leave the session; the adapter only ever sees
// their UUIDs.
type DaemonSession struct {
	conn        *websocket.Conn
	keyStorage  KeyStorageProvider
	signingKeys map[uuid.UUID]ed25519.PrivateKey
	scalars     map[uuid.UUID][]byte
}

func NewDaemonSession(conn *websocket.Conn, keyStorage KeyStorageProvider, signingKeys map[uuid.UUID]ed25519.PrivateKey) *DaemonSession {
	return &DaemonSession{
		conn:        conn,
		keyStorage:  keyStorage,
		signingKeys: signingKeys,
		scalars:     make(map[uuid.UUID][]byte),
	}
}

// Serve handles requests until the peer goes away.
func (s *DaemonSession) Serve() {
	defer s.wipe()
	for {
		var req daemonRequest
		if err := s.conn.ReadJSON(&req); err != nil {
			log.Debugf("crypto daemon session closed: %v", err)
			return
		}

		resp := s.handle(&req)
		resp.ID = req.ID
		if err := s.conn.WriteJSON(&resp); err != nil {
			log.Debugf("crypto daemon write failed: %v", err)
			return
		}
	}
}

func (s *DaemonSession) wipe() {
	for id, scalar := range s.scalars {
		for i := range scalar {
			scalar[i] = 0
		}
		delete(s.scalars, id)
	}
}

func (s *DaemonSession) handle(req *daemonRequest) daemonResponse {
	log.Tracef("crypto daemon op %s", req.Op)
	switch req.Op {
	case opLoadPreSharedKey:
		return s.loadPreSharedKey(req)
	case opGenerateX25519:
		return s.generateX25519()
	case opDeriveECDHE:
		return s.deriveECDHE(req)
	case opGenerateMasterSecret:
		return s.generateMasterSecret(req)
	case opSign:
		return s.sign(req)
	default:
		return errorResponse(CodeInvalidArgument, "unknown op "+req.Op)
	}
}

func errorResponse(code ErrorCode, message string) daemonResponse {
	return daemonResponse{Error: message, Code: uint8(code)}
}

func (s *DaemonSession) loadPreSharedKey(req *daemonRequest) daemonResponse {
	id, err := uuid.Parse(req.KeyID)
	if err != nil {
		return errorResponse(CodeInvalidArgument, "bad key id")
	}
	key, ok := s.keyStorage.PreSharedKey(id)
	if !ok {
		return errorResponse(CodeRuntimeError, "key "+req.KeyID+" not in storage")
	}
	return daemonResponse{Data: key}
}

func (s *DaemonSession) generateX25519() daemonResponse {
	scalar := make([]byte, curve25519.ScalarSize)
	if _, err := io.ReadFull(rand.Reader, scalar); err != nil {
		return errorResponse(CodeRuntimeError, err.Error())
	}
	public, err := curve25519.X25519(scalar, curve25519.Basepoint)
	if err != nil {
		return errorResponse(CodeRuntimeError, err.Error())
	}

	id := uuid.New()
	s.scalars[id] = scalar
	return daemonResponse{KeyID: id.String(), Data: public}
}

func (s *DaemonSession) deriveECDHE(req *daemonRequest) daemonResponse {
	id, err := uuid.Parse(req.KeyID)
	if err != nil {
		return errorResponse(CodeInvalidArgument, "bad key id")
	}
	scalar, ok := s.scalars[id]
	if !ok {
		return errorResponse(CodeInvalidArgument, "unknown ephemeral key "+req.KeyID)
	}
	// single use, consumed here
	delete(s.scalars, id)
	defer func() {
		for i := range scalar {
			scalar[i] = 0
		}
	}()

	secret, err := curve25519.X25519(scalar, req.PeerPublicKey)
	if err != nil {
		return errorResponse(CodeRuntimeError, err.Error())
	}
	return daemonResponse{Data: secret}
}

func (s *DaemonSession) generateMasterSecret(req *daemonRequest) daemonResponse {
	newHash, err := hashFuncFor(hash.Algorithm(req.HashAlgorithm))
	if err != nil {
		return errorResponse(CodeUnsupportedAlgorithm, err.Error())
	}
	masterSecret, err := prf.MasterSecret(req.PreMasterSecret, req.ClientRandom, req.ServerRandom, newHash)
	if err != nil {
		return errorResponse(CodeRuntimeError, err.Error())
	}
	return daemonResponse{Data: masterSecret}
}

func (s *DaemonSession) sign(req *daemonRequest) daemonResponse {
	id, err := uuid.Parse(req.KeyID)
	if err != nil {
		return errorResponse(CodeInvalidArgument, "bad key id")
	}
	key, ok := s.signingKeys[id]
	if !ok {
		return errorResponse(CodeRuntimeError, "unknown signing key "+req.KeyID)
	}
	return daemonResponse{Data: ed25519.Sign(key, req.Message)}
}
