package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is the in-process Store used for tests and offline play.
// Expired entries are invisible to readers immediately; a janitor loop
// reclaims the memory in the background.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	cleanUpDone chan struct{}
	closeOnce   sync.Once
}

func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{
		entries:     make(map[string]memoryEntry),
		cleanUpDone: make(chan struct{}),
	}

	go ms.startCleanupLoop()

	return ms
}

func (ms *MemoryStore) startCleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ms.cleanUpDone:
			return

		case <-ticker.C:
			now := time.Now()

			ms.mu.Lock()
			for key, entry := range ms.entries {
				if entry.expired(now) {
					zap.S().Debugf("memory store: entry %s expired, cleaning up", key)
					delete(ms.entries, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (string, error) {
	ms.mu.RLock()
	entry, ok := ms.entries[key]
	ms.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return "", ErrNotFound
	}

	return entry.value, nil
}

func (ms *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	ms.mu.Lock()
	ms.entries[key] = entry
	ms.mu.Unlock()

	return nil
}

func (ms *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	ms.mu.RLock()
	entry, ok := ms.entries[key]
	ms.mu.RUnlock()

	return ok && !entry.expired(time.Now()), nil
}

func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	delete(ms.entries, key)
	ms.mu.Unlock()

	return nil
}

func (ms *MemoryStore) Ping(context.Context) error {
	return nil
}

func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.cleanUpDone)
	})
}
