package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const memoryMaxSessions = 4096

// MemoryStore keeps sessions in process memory; entries expire after ttl.
type MemoryStore struct {
	cache *expirable.LRU[string, Data]
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, Data](memoryMaxSessions, nil, ttl)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Data, error) {
	d, ok := m.cache.Get(id)
	if !ok {
		return Data{}, ErrNotFound
	}
	return d, nil
}

func (m *MemoryStore) Put(ctx context.Context, id string, data Data) error {
	m.cache.Add(id, data)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.cache.Remove(id)
	return nil
}
