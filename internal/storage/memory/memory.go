package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"spendwise/internal/storage"
)

// Store is an in-process KV. Values are copied in and out so callers can't
// mutate stored bytes.
type Store struct {
	mu     sync.Mutex
	values map[string][]byte
}

func New() *Store {
	return &Store{values: map[string][]byte{}}
}

// NewFromDir seeds the store from <dir>/<key>.json for every collection key.
// Missing or unreadable files are skipped.
func NewFromDir(dir string) *Store {
	s := New()
	if dir == "" {
		return s
	}
	for _, key := range storage.Keys() {
		raw, err := os.ReadFile(filepath.Join(dir, key+".json"))
		if err != nil || len(raw) == 0 {
			continue
		}
		s.values[key] = raw
	}
	return s
}

// Get implements storage.KV.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements storage.KV.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Len reports how many keys hold a value.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
