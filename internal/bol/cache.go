package bol

import (
	"net/url"
	"sync"
	"time"

	"productpraat/internal/pkg/clock"
)

// DefaultCacheSize bounds the response cache.
const DefaultCacheSize = 100

// Fingerprint derives the cache key for a request: method, path and the
// canonically sorted query string. url.Values.Encode sorts by key.
func Fingerprint(method, path string, query url.Values) string {
	if len(query) == 0 {
		return method + " " + path
	}
	return method + " " + path + "?" + query.Encode()
}

type cacheEntry struct {
	body      []byte
	status    int
	expiresAt time.Time
}

// ResponseCache is a bounded TTL cache for successful GET responses.
// Eviction is FIFO by insertion order: when full, the oldest-inserted entry
// goes first regardless of how recently it was read.
type ResponseCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*cacheEntry
	order    []string
	clock    clock.Clock
}

func NewResponseCache(capacity int, clk clock.Clock) *ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &ResponseCache{
		capacity: capacity,
		entries:  make(map[string]*cacheEntry, capacity),
		clock:    clk,
	}
}

// Get returns the cached body and status for key. An expired entry is
// evicted on read and treated as a miss.
func (c *ResponseCache) Get(key string) ([]byte, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, 0, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.remove(key)
		return nil, 0, false
	}
	return e.body, e.status, true
}

// Set stores a response under key with expiry now+ttl. Entries are never
// written with a zero or negative TTL.
func (c *ResponseCache) Set(key string, body []byte, status int, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.capacity {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = &cacheEntry{
		body:      body,
		status:    status,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

// Clear empties the cache unconditionally.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry, c.capacity)
	c.order = c.order[:0]
}

// Len reports the number of live entries, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResponseCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
