package store

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	*broadcaster
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:        make(map[string][]byte),
		broadcaster: newBroadcaster(),
	}
}

// compile-time assertion that MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = clone(value)
	s.mu.Unlock()

	s.publish(key, value)
	return nil
}

func (s *MemoryStore) Subscribe(key string) (<-chan []byte, func()) {
	return s.subscribe(key)
}

func (s *MemoryStore) Close() error {
	s.closeAll()
	return nil
}
