package guard

import (
	"context"
	"sync"
	"time"
)

// Store is the expiring key-value backend for rate windows and honeypot
// block flags. Implementations must make IncrWindow atomic per key; the
// guard itself takes no locks.
//
// The TTL passed to IncrWindow is applied on every hit, so the rate window
// slides forward with traffic instead of being clock-aligned.
type Store interface {
	// IncrWindow increments the counter at key, refreshes its TTL, and
	// returns the new count.
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// SetFlag writes a block flag with the given TTL.
	SetFlag(ctx context.Context, key string, ttl time.Duration) error

	// HasFlag reports whether a live block flag exists for key.
	HasFlag(ctx context.Context, key string) (bool, error)
}

// MemoryStore is an in-process Store for development and tests. Entries are
// expired lazily on read and swept whenever the map is touched past its
// deadline. Counters and flags live under distinct key namespaces, mirroring
// RedisStore, so a visitor's rate window never reads back as a block flag.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count    int64
	expireAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
	}
}

func (m *MemoryStore) IncrWindow(_ context.Context, key string, ttl time.Duration) (int64, error) {
	key = "cnt:" + key
	now := timeNow()
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || now.After(e.expireAt) {
		e = &memoryEntry{}
		m.entries[key] = e
	}
	e.count++
	e.expireAt = now.Add(ttl)
	return e.count, nil
}

func (m *MemoryStore) SetFlag(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries["ban:"+key] = &memoryEntry{count: 1, expireAt: timeNow().Add(ttl)}
	return nil
}

func (m *MemoryStore) HasFlag(_ context.Context, key string) (bool, error) {
	key = "ban:" + key
	now := timeNow()
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if now.After(e.expireAt) {
		delete(m.entries, key)
		return false, nil
	}
	return true, nil
}
