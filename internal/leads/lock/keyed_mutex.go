package lock

import (
	"context"
	"sync"
)

type keyEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedMutex is an in-process Locker. Entries are dropped once no caller
// holds or waits for them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyEntry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyEntry)}
}

func (m *KeyedMutex) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalizeKeys(keys)
	acquired := make([]string, 0, len(keys))

	for _, key := range keys {
		if err := m.lockKey(ctx, key); err != nil {
			m.unlockKeys(acquired)
			return nil, err
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() { m.unlockKeys(acquired) })
	}, nil
}

func (m *KeyedMutex) lockKey(ctx context.Context, key string) error {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &keyEntry{sem: make(chan struct{}, 1)}
		m.entries[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.release(key, entry)
		return ctx.Err()
	}
}

func (m *KeyedMutex) unlockKeys(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		m.mu.Lock()
		entry := m.entries[keys[i]]
		m.mu.Unlock()

		<-entry.sem
		m.release(keys[i], entry)
	}
}

func (m *KeyedMutex) release(key string, entry *keyEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(m.entries, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (m *KeyedMutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
