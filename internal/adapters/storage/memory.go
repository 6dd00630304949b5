package storage

import (
	"bytes"
	"context"
	"sync"

	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// MemoryStore keeps documents in process memory. Used by tests and the
// "memory" driver for dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
	// FailPut, when set, is returned by every Put.
	FailPut error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, ports.ErrDocumentNotFound
	}
	return bytes.Clone(data), nil
}

func (s *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.docs[name] = bytes.Clone(data)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
