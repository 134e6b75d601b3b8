package simulation

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cache stores complete results keyed by request fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, result *Result, ttl time.Duration) error
	Purge(ctx context.Context) (int, error)
}

type memoryEntry struct {
	result    *Result
	expiresAt time.Time
}

// MemoryCache keeps results in process. Hits return the stored pointer, so a
// repeated request observes the identical Result.
type MemoryCache struct {
	entries map[string]memoryEntry
	mutex   sync.RWMutex
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache starts a background sweep every cleanupInterval; a
// non-positive interval disables the sweep and expiry is checked on read only.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.startCleanup(cleanupInterval)
	}

	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Result, bool, error) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists || c.expired(entry, c.now()) {
		return nil, false, nil
	}
	return entry.result, true, nil
}

// Set stores result under key. A non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, result *Result, ttl time.Duration) error {
	entry := memoryEntry{result: result}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mutex.Lock()
	c.entries[key] = entry
	c.mutex.Unlock()

	return nil
}

func (c *MemoryCache) Purge(_ context.Context) (int, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := len(c.entries)
	c.entries = make(map[string]memoryEntry)
	return count, nil
}

// Close stops the background sweep.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && now.After(entry.expiresAt)
}

func (c *MemoryCache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := slog.With("component", "memory_cache", "operation", "cleanup")
	logger.Debug("Starting cache cleanup goroutine", "interval", interval)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			logger.Debug("Cache cleanup goroutine stopped")
			return
		}
	}
}

func (c *MemoryCache) removeExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	expiredCount := 0
	for key, entry := range c.entries {
		if c.expired(entry, now) {
			delete(c.entries, key)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		slog.Debug("Removed expired simulation results",
			"component", "memory_cache",
			"expired_count", expiredCount,
			"remaining_count", len(c.entries))
	}
	return expiredCount
}
