package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a key-addressed collection store. Each key names a whole
// collection; repositories read the full payload, apply their change, and
// write the result back, so no partial-write state is ever visible.
type Store interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, payload []byte) error
}

// FileStore keeps one JSON document per collection under a data directory.
type FileStore struct {
	dataDir string
}

func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

func (s *FileStore) Read(_ context.Context, collection string) ([]byte, error) {
	payload, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	return payload, nil
}

func (s *FileStore) Write(_ context.Context, collection string, payload []byte) error {
	path := s.path(collection)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu          sync.Mutex
	collections map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{collections: map[string][]byte{}}
}

func (s *MemStore) Read(_ context.Context, collection string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (s *MemStore) Write(_ context.Context, collection string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.collections[collection] = stored
	return nil
}
