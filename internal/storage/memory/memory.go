// Package memory provides an in-memory storage.KV, used by tests and
// by the CLI's --memory mode.
package memory

import (
	"context"
	"sync"

	"github.com/GuotongWu/CookNote/internal/storage"
)

// Compile-time interface check.
var _ storage.KV = (*Store)(nil)

// Store is an in-memory key-value store. Safe for concurrent access.
// Failures can be injected to exercise the repositories' degraded paths.
type Store struct {
	mu      sync.RWMutex
	data    map[string][]byte
	getErr  error
	setErr  error
	sets    int
	setHook func(key string)
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	hook := s.setHook
	if s.setErr != nil {
		err := s.setErr
		s.mu.Unlock()
		return err
	}
	s.data[key] = append([]byte(nil), value...)
	s.sets++
	s.mu.Unlock()

	if hook != nil {
		hook(key)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// FailGets makes every subsequent Get return err (nil clears it).
func (s *Store) FailGets(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailSets makes every subsequent Set return err (nil clears it).
func (s *Store) FailSets(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr = err
}

// OnSet registers a callback invoked after each successful Set.
func (s *Store) OnSet(hook func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setHook = hook
}

// Put writes raw bytes directly, bypassing injected failures.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
}

// Raw returns the stored bytes and whether the key exists.
func (s *Store) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return append([]byte(nil), v...), ok
}

// Sets reports how many successful Set calls have been made.
func (s *Store) Sets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}
