// Package cache provides the fiber.Storage backends used by the rate
// limiter.
package cache

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MemoryStorage implements fiber.Storage in process memory.
type MemoryStorage struct {
	entries map[string]*cacheEntry
	mu      sync.RWMutex
	done    chan struct{}
	once    sync.Once
	now     func() time.Time
}

var _ fiber.Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates a MemoryStorage that drops expired entries every
// gcInterval.
func NewMemoryStorage(gcInterval time.Duration) *MemoryStorage {
	if gcInterval <= 0 {
		gcInterval = time.Minute
	}
	s := &MemoryStorage{
		entries: make(map[string]*cacheEntry),
		done:    make(chan struct{}),
		now:     time.Now,
	}

	// Start cleanup goroutine
	go s.cleanup(gcInterval)

	return s
}

// Get returns the value stored for key, or nil when it is missing or expired.
func (s *MemoryStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[key]
	if !exists || entry.expired(s.now()) {
		return nil, nil
	}
	return entry.value, nil
}

// Set stores val under key. A zero exp never expires.
func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	entry := &cacheEntry{value: append([]byte(nil), val...)}
	if exp > 0 {
		entry.expiresAt = s.now().Add(exp)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

// Delete removes key.
func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Reset removes every key.
func (s *MemoryStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*cacheEntry)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStorage) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// cleanup removes expired entries until Close is called.
func (s *MemoryStorage) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, entry := range s.entries {
				if entry.expired(now) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}
