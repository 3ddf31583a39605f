package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

// memoryEntry tracks one key's count within the current window.
type memoryEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// MemoryStore is a process-local Store. Entries are created on first
// request per key, reset when their window elapses, and swept
// periodically so abandoned keys do not accumulate.
type MemoryStore struct {
	entries sync.Map
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	go s.sweep()
	return s
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := time.Now()
	v, _ := s.entries.LoadOrStore(key, &memoryEntry{resetAt: now.Add(window)})
	entry := v.(*memoryEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++

	return entry.count, entry.resetAt, nil
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.entries.Range(func(key, value interface{}) bool {
			entry := value.(*memoryEntry)
			entry.mu.Lock()
			if now.After(entry.resetAt) {
				s.entries.Delete(key)
			}
			entry.mu.Unlock()
			return true
		})
	}
}
