package memory

import (
	"context"
	"sync"

	"github.com/vytor/dailydle/internal/repository"
)

type entryKey struct {
	scope string
	key   string
}

// KVRepository keeps entries in a map. Nothing survives a restart.
type KVRepository struct {
	mu      sync.RWMutex
	entries map[entryKey]string
}

// NewKVRepository creates an empty in-memory KeyValueStore.
func NewKVRepository() *KVRepository {
	return &KVRepository{entries: make(map[entryKey]string)}
}

var _ repository.KeyValueStore = (*KVRepository)(nil)

func (r *KVRepository) Get(_ context.Context, scope, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[entryKey{scope, key}]
	return v, ok, nil
}

func (r *KVRepository) Set(_ context.Context, scope, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entryKey{scope, key}] = value
	return nil
}

func (r *KVRepository) Ping(context.Context) error { return nil }

// Len returns the number of stored entries across all scopes.
func (r *KVRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
