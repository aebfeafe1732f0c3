// Package memory provides the default in-process machine store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
)

// Store implements registry.Store in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*registry.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*registry.Record),
	}
}

// Save persists the record in memory. The stored copy is detached from
// the caller's buffers.
func (s *Store) Save(ctx context.Context, id string, rec *registry.Record) error {
	copied := registry.Record{
		Kind:       rec.Kind,
		Definition: append([]byte(nil), rec.Definition...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = &copied
	return nil
}

// Load retrieves the record stored under id.
func (s *Store) Load(ctx context.Context, id string) (*registry.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return nil, registry.ErrNotFound
	}

	out := registry.Record{
		Kind:       rec.Kind,
		Definition: append([]byte(nil), rec.Definition...),
	}
	return &out, nil
}

// Delete removes the record stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns every stored identifier.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
