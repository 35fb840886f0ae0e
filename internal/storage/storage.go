// Package storage abstracts the object store holding workspace and project
// images. Production uses Google Cloud Storage; tests use the in-memory store.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrObjectNotFound is returned when the requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

type Storage interface {
	// Put writes an object under the given key, overwriting any existing one.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads an object back in full.
	Get(ctx context.Context, key string) ([]byte, error)
}

// MemoryStorage is an in-process Storage used in tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
