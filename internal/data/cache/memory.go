package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store. Expired entries answer as misses
// immediately and are reaped by a background sweep; when the store is
// full the least recently accessed entry is evicted.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	maxEntries int
	now        func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

type memoryEntry struct {
	value    []byte
	expires  time.Time
	accessed time.Time
}

// NewMemoryStore creates a store holding at most maxEntries values.
func NewMemoryStore(maxEntries int) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expires) {
		delete(s.entries, key)
		return nil, false, nil
	}
	entry.accessed = s.now()
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictLRU()
	}
	now := s.now()
	s.entries[key] = &memoryEntry{
		value:    value,
		expires:  now.Add(ttl),
		accessed: now,
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

// Len reports the live entry count, expired entries included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictLRU removes the least recently accessed entry. Caller holds the lock.
func (s *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range s.entries {
		if oldestKey == "" || entry.accessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.accessed
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, key)
		}
	}
}
