package cryptoadapter

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// KeyStorageProvider resolves key-storage references to pre-shared keys.
type KeyStorageProvider interface {
	PreSharedKey(id uuid.UUID) ([]byte, bool)
}

// InMemoryKeyStorage is a UUID-keyed PSK store.
type InMemoryKeyStorage struct {
	keys map[uuid.UUID][]byte
}

func NewInMemoryKeyStorage() *InMemoryKeyStorage {
	return &InMemoryKeyStorage{keys: make(map[uuid.UUID][]byte)}
}

func (s *InMemoryKeyStorage) AddPreSharedKey(id uuid.UUID, key []byte) {
	s.keys[id] = append([]byte{}, key...)
}

func (s *InMemoryKeyStorage) PreSharedKey(id uuid.UUID) ([]byte, bool) {
	key, ok := s.keys[id]
	if !ok {
		return nil, false
	}
	return append([]byte{}, key...), true
}

type keyStorageFileEntry struct {
	UUID string `json:"uuid"`
	Key  string `json:"key"` // hex
}

// LoadKeyStorageFile reads a JSON array of {uuid, key} entries.
func LoadKeyStorageFile(path string) (*InMemoryKeyStorage, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var entries []keyStorageFileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("key storage file %s: %w", path, err)
	}

	storage := NewInMemoryKeyStorage()
	for _, e := range entries {
		id, err := uuid.Parse(e.UUID)
		if err != nil {
			return nil, fmt.Errorf("key storage file %s: %w", path, err)
		}
		key, err := hex.DecodeString(e.Key)
		if err != nil {
			return nil, fmt.Errorf("key storage file %s: %w", path, err)
		}
		storage.AddPreSharedKey(id, key)
	}
	return storage, nil
}
