// Package cache implements the in-memory store backing the client: TTL
// expiry, capacity-bounded LRU eviction, and hit/miss accounting.
package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Xmerr/steam-client/models"
)

// entry is one cached value with its expiry and recency links. Entries form a
// doubly-linked list ordered most- to least-recently used; entries that were
// never read keep their insertion order at the tail.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *entry[K, V]
	next      *entry[K, V]
}

// Cache is a TTL store with LRU eviction. Expired entries are treated as
// absent by every operation and freed lazily (on access, on Stats, or by the
// background sweeper). One mutex guards the map, the recency list, and the
// counters; all methods are safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	capacity   int
	defaultTTL time.Duration
	entries    map[K]*entry[K, V]
	head       *entry[K, V]
	tail       *entry[K, V]
	metrics    *models.Metrics
	logger     *zap.Logger
	now        func() time.Time
	stop       chan struct{}
}

// New creates a cache holding at most capacity entries, each living for
// defaultTTL unless Set overrides it.
func New[K comparable, V any](capacity int, defaultTTL time.Duration, logger *zap.Logger) *Cache[K, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache[K, V]{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		entries:    make(map[K]*entry[K, V]),
		metrics:    models.NewMetrics(),
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the live value for key. An expired entry counts as a miss and is
// dropped on the spot. A hit moves the entry to the front of the recency list
// without extending its TTL.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		c.metrics.Misses.Inc()
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.removeEntry(e)
		c.metrics.Expirations.Inc()
		c.metrics.Misses.Inc()
		return zero, false
	}
	c.moveToFront(e)
	c.metrics.Hits.Inc()
	return e.value, true
}

// Set stores value under key, replacing any previous entry. An optional ttl
// overrides the cache default for this entry. When the cache is full, expired
// entries are freed first and then the least recently used entry is evicted.
func (c *Cache[K, V]) Set(key K, value V, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}
	now := c.now()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = now.Add(d)
		c.moveToFront(e)
		return
	}

	if c.capacity > 0 && len(c.entries) >= c.capacity {
		c.removeExpired(now)
		if len(c.entries) >= c.capacity {
			c.evictLRU()
		}
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: now.Add(d)}
	c.entries[key] = e
	c.pushFront(e)
}

// Has reports whether key holds a live entry. It honors TTL but does not touch
// the hit/miss counters or the entry's recency.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && c.now().Before(e.expiresAt)
}

// Delete removes key if present.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.removeEntry(e)
	}
}

// Clear drops every entry and resets the counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[K, V])
	c.head = nil
	c.tail = nil
	c.metrics.Reset()
}

// Len returns the number of stored entries, expired ones included until they
// are swept.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats frees expired entries and reports the live size and hit rate.
func (c *Cache[K, V]) Stats() models.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeExpired(c.now())
	return models.CacheStats{
		Size:    len(c.entries),
		HitRate: c.metrics.HitRate(),
	}
}

// removeExpired drops every entry whose TTL has elapsed. Callers hold c.mu.
func (c *Cache[K, V]) removeExpired(now time.Time) int {
	removed := 0
	for _, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.removeEntry(e)
			c.metrics.Expirations.Inc()
			removed++
		}
	}
	return removed
}

// evictLRU removes the entry at the tail of the recency list. Callers hold c.mu.
func (c *Cache[K, V]) evictLRU() {
	e := c.tail
	if e == nil {
		return
	}
	c.removeEntry(e)
	c.metrics.Evictions.Inc()
	c.logger.Debug("evicted least recently used entry", zap.Any("key", e.key))
}

func (c *Cache[K, V]) removeEntry(e *entry[K, V]) {
	c.unlink(e)
	delete(c.entries, e.key)
}

func (c *Cache[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *Cache[K, V]) moveToFront(e *entry[K, V]) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}
