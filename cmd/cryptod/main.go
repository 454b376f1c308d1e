package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/signals"
)

const (
	defaultListenAddr   = "127.0.0.1:9443"
	defaultKeyStorePath = "keys/psk.json"
)

var (
	verbose         int
	listenAddr      string
	keyStorePath    string
	signingKeysPath string
)

func main() {
	flag.IntVar(&verbose, "verbose", 2, "Set log level(0:trace, 1:debug, 2:info)")
	flag.StringVar(&listenAddr, "listen", defaultListenAddr, "Listen address for adapter sessions")
	flag.StringVar(&keyStorePath, "keys", defaultKeyStorePath, "Path to pre-shared key storage file")
	flag.StringVar(&signingKeysPath, "signing", "", "Path to Ed25519 signing key file")
	flag.Parse()

	switch verbose {
	case 0:
		log.SetLevel(log.TraceLevel)
	case 1:
		log.SetLevel(log.DebugLevel)
	}

	keyStorage, err := cryptoadapter.LoadKeyStorageFile(keyStorePath)
	if err != nil {
		log.Fatalf("load key storage error: %v", err)
	}

	signingKeys := make(map[uuid.UUID]ed25519.PrivateKey)
	if signingKeysPath != "" {
		if signingKeys, err = loadSigningKeys(signingKeysPath); err != nil {
			log.Fatalf("load signing keys error: %v", err)
		}
	}

	stopCh := signals.RegisterSignalHandlers()

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/crypto", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("session upgrade failed: %v", err)
			return
		}
		log.Infof("adapter session from %s", conn.RemoteAddr())
		go cryptoadapter.NewDaemonSession(conn, keyStorage, signingKeys).Serve()
	})

	server := &http.Server{Addr: listenAddr, Handler: mux}
	go func() {
		<-stopCh
		log.Info("shutting down")
		server.Close()
	}()

	log.Infof("crypto daemon listening on %s", listenAddr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

type signingKeyFileEntry struct {
	UUID string `json:"uuid"`
	Seed string `json:"seed"` // hex, 32 bytes
}

func loadSigningKeys(path string) (map[uuid.UUID]ed25519.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var entries []signingKeyFileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("signing key file %s: %w", path, err)
	}

	keys := make(map[uuid.UUID]ed25519.PrivateKey, len(entries))
	for _, e := range entries {
		id, err := uuid.Parse(e.UUID)
		if err != nil {
			return nil, fmt.Errorf("signing key file %s: %w", path, err)
		}
		seed, err := hex.DecodeString(e.Seed)
		if err != nil {
			return nil, fmt.Errorf("signing key file %s: %w", path, err)
		}
		if len(seed) != ed25519.SeedSize {
			return nil, fmt.Errorf("signing key file %s: key %s has bad seed size", path, e.UUID)
		}
		keys[id] = ed25519.NewKeyFromSeed(seed)
	}
	return keys, nil
}
