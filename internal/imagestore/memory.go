package imagestore

import (
	"context"
	"fmt"
	"sync"

	"digital-stamp-go/internal/store"
)

var _ store.ImageStore = (*MemoryStore)(nil)

// MemoryStore implements store.ImageStore using an in-memory map.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, id string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := "mem://" + id
	s.images[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (s *MemoryStore) Get(_ context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.images[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrImageNotFound, ref)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.images[ref]; !ok {
		return fmt.Errorf("%w: %s", store.ErrImageNotFound, ref)
	}
	delete(s.images, ref)
	return nil
}

// Len reports how many images are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
