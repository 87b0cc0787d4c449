package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/financeflow/internal/apperrors"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
)

// Store keeps blobs in process memory. Contents are lost on restart.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewStore creates an empty in-memory blob store.
func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

var _ portsrepo.BlobStore = (*Store)(nil)

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %q: %w", key, apperrors.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
