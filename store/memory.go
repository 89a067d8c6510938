// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/katalvlaran/lvfst/fst"
)

// MemoryStore keeps serialized automata in a map. It is safe for
// concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Save stores a serialized copy of f.
func (s *MemoryStore) Save(_ context.Context, key string, f *fst.Fst) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = b
	s.mu.Unlock()
	return nil
}

// Load decodes a fresh automaton from the stored bytes.
func (s *MemoryStore) Load(_ context.Context, key string) (*fst.Fst, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	b, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(key)
	}
	return decode(b)
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return notFound(key)
	}
	delete(s.data, key)
	return nil
}

// Keys returns the stored keys in ascending order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
