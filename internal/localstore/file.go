package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps each slot in its own file under a data directory. Values
// are written in full on every Set.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("localstore: data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(slot string) (string, error) {
	if !validSlot(slot) {
		return "", fmt.Errorf("localstore: bad slot name %q", slot)
	}
	return filepath.Join(s.dir, slot+".json"), nil
}

func (s *FileStore) Get(slot string) ([]byte, error) {
	p, err := s.path(slot)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoValue
		}
		return nil, err
	}
	return b, nil
}

func (s *FileStore) Set(slot string, value []byte) error {
	p, err := s.path(slot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(p, value, 0o644)
}

func (s *FileStore) Delete(slot string) error {
	p, err := s.path(slot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// validSlot keeps slot names to a safe filename alphabet so a slot can never
// escape the data directory.
func validSlot(slot string) bool {
	if slot == "" {
		return false
	}
	for _, r := range slot {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
