package store

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state      State
	expiration time.Time
}

// MemoryStore keeps the ledger in process memory. Entries live until their
// TTL passes and are dropped lazily the next time they are touched.
type MemoryStore struct {
	data map[string]*entry
	mu   sync.Mutex
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock is NewMemoryStore with an injected time source,
// so TTL expiry can follow a fake clock in tests.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*entry),
		now:  now,
	}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (State, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.live(key)
	if !ok {
		return State{}, ErrNotFound
	}
	return e.state, nil
}

func (ms *MemoryStore) Set(_ context.Context, key string, s State, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data[key] = &entry{
		state:      s,
		expiration: ms.now().Add(ttl),
	}
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.data, key)
	return nil
}

func (ms *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	_, ok := ms.live(key)
	return ok, nil
}

// Len returns the number of entries currently held, expired or not.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.data)
}

// Prune drops every expired entry and returns how many were removed.
func (ms *MemoryStore) Prune(_ context.Context) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	var removed int64
	for key, e := range ms.data {
		if now.After(e.expiration) {
			delete(ms.data, key)
			removed++
		}
	}
	return removed, nil
}

// live returns the entry for key, deleting it if it has expired.
// Caller must hold ms.mu.
func (ms *MemoryStore) live(key string) (*entry, bool) {
	e, ok := ms.data[key]
	if !ok {
		return nil, false
	}
	if ms.now().After(e.expiration) {
		delete(ms.data, key)
		return nil, false
	}
	return e, true
}
