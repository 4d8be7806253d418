package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultTTL = 30 * time.Minute

// MemoryCache is a bounded in-process cache with lazy and periodic expiry
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	maxEntries int
	defaultTTL time.Duration
	now        func() time.Time

	hits, misses, sets, evictions atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type entry struct {
	value  []byte
	expiry time.Time
}

// MemoryOption configures a MemoryCache
type MemoryOption func(*MemoryCache)

// WithMaxEntries bounds the number of live entries; 0 means unbounded
func WithMaxEntries(n int) MemoryOption {
	return func(mc *MemoryCache) { mc.maxEntries = n }
}

// WithDefaultTTL sets the TTL used when Set is called with ttl <= 0
func WithDefaultTTL(ttl time.Duration) MemoryOption {
	return func(mc *MemoryCache) {
		if ttl > 0 {
			mc.defaultTTL = ttl
		}
	}
}

// WithCleanupInterval starts a janitor goroutine; stop it with Stop
func WithCleanupInterval(every time.Duration) MemoryOption {
	return func(mc *MemoryCache) {
		if every <= 0 {
			return
		}
		mc.wg.Add(1)
		go mc.janitor(every)
	}
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	mc := &MemoryCache{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(mc)
	}
	return mc
}

// Get retrieves a live value from the cache
func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	e, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok || !mc.now().Before(e.expiry) {
		mc.misses.Add(1)
		return nil, false
	}
	mc.hits.Add(1)
	return e.value, true
}

// Set stores value under key
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = mc.defaultTTL
	}

	mc.mu.Lock()
	if _, exists := mc.items[key]; !exists && mc.maxEntries > 0 && len(mc.items) >= mc.maxEntries {
		mc.evictLocked()
	}
	mc.items[key] = entry{value: value, expiry: mc.now().Add(ttl)}
	mc.mu.Unlock()

	mc.sets.Add(1)
	return nil
}

// Delete removes key from the cache
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	mc.mu.RLock()
	n := len(mc.items)
	mc.mu.RUnlock()

	return Stats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Evictions: mc.evictions.Load(),
		Entries:   n,
	}
}

// Stop shuts down the janitor, if one was started
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

// evictLocked drops expired entries, or the entry closest to expiry when none are.
// Caller holds mc.mu.
func (mc *MemoryCache) evictLocked() {
	if mc.removeExpiredLocked() > 0 {
		return
	}
	var (
		victim string
		soonest time.Time
	)
	for k, e := range mc.items {
		if victim == "" || e.expiry.Before(soonest) {
			victim, soonest = k, e.expiry
		}
	}
	if victim != "" {
		delete(mc.items, victim)
		mc.evictions.Add(1)
	}
}

func (mc *MemoryCache) removeExpiredLocked() int {
	now := mc.now()
	removed := 0
	for k, e := range mc.items {
		if !now.Before(e.expiry) {
			delete(mc.items, k)
			removed++
		}
	}
	mc.evictions.Add(int64(removed))
	return removed
}

func (mc *MemoryCache) janitor(every time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}
