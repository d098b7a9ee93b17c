package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryLookupCache implements LookupCache in process. It does not share
// state across instances.
type InMemoryLookupCache struct {
	entries sync.Map // map[string]*cacheEntry
	ttl     time.Duration
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// NewInMemoryLookupCache starts a cache with a background sweeper; call Close
// to stop it.
func NewInMemoryLookupCache(ttl time.Duration) *InMemoryLookupCache {
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	c := &InMemoryLookupCache{ttl: ttl, stopCh: make(chan struct{})}
	go c.cleanupExpired(defaultCleanupInterval)
	return c
}

// Get retrieves a lookup
func (c *InMemoryLookupCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired(time.Now()) {
			atomic.AddInt64(&c.hits, 1)
			return entry.value, true, nil
		}
		c.entries.Delete(key)
	}
	atomic.AddInt64(&c.misses, 1)
	return nil, false, nil
}

// Set stores a copy of value
func (c *InMemoryLookupCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.entries.Store(key, &cacheEntry{
		value:     append([]byte(nil), value...),
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// InvalidateAll empties the cache
func (c *InMemoryLookupCache) InvalidateAll(_ context.Context) error {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
	return nil
}

// InvalidatePrefix drops the entries whose key starts with prefix
func (c *InMemoryLookupCache) InvalidatePrefix(prefix string) {
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
}

// Close stops the sweeper; safe to call twice
func (c *InMemoryLookupCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns hit and miss counters
func (c *InMemoryLookupCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of stored entries, expired ones included
func (c *InMemoryLookupCache) Count() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *InMemoryLookupCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired(now) {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ LookupCache = (*InMemoryLookupCache)(nil)
