package store

import (
	"context"
	"encoding/json"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory constructs an in-memory store. Values round-trip through JSON so
// reads observe the same shapes as the durable backends. Intended for tests.
func NewMemory() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Read(_ context.Context, key string, dest any) error {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt payload reads as absent.
		return nil
	}
	return nil
}

func (s *memoryStore) Write(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) WriteAll(ctx context.Context, entries ...Entry) error {
	for _, e := range entries {
		if err := s.Write(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Corrupt overwrites a key with a payload that does not decode. Test helper
// for exercising the corrupt-reads-as-absent contract.
func Corrupt(s Store, key string) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.data[key] = []byte("{truncated")
	}
}
