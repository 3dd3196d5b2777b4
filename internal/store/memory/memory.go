package memory

import (
	"context"
	"sync"

	"wydatki/internal/core"
	"wydatki/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps records in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	items []core.Record
}

func New(seed ...core.Record) *Store {
	return &Store{items: append([]core.Record(nil), seed...)}
}

// EnsureStorage is a no-op: memory is always ready.
func (s *Store) EnsureStorage(context.Context) error {
	return nil
}

func (s *Store) Append(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return nil
}

// ReadAll returns a copy of the stored records in insertion order.
func (s *Store) ReadAll(context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record{}, s.items...), nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
