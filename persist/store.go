package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store holds encoded session blobs under a single named key. Save
// overwrites unconditionally; Load returns a *SessionDecodeError when
// the key holds nothing.
type Store interface {
	Save(key string, blob []byte) error
	Load(key string) ([]byte, error)
}

// FileStore keeps each key as a JSON file in one directory. Single
// file per key, human-readable, portable. No locking; fine for a
// local single-user editor.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileStore) Save(key string, blob []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), blob, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Load(key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SessionDecodeError{Reason: "no saved session"}
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	return b, nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Save(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (s *MemStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, &SessionDecodeError{Reason: "no saved session"}
	}
	return append([]byte(nil), b...), nil
}
