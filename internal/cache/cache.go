package cache

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultTTL is how long an entry stays valid unless configured otherwise.
const DefaultTTL = 60 * time.Second

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a concurrency-safe key/value store with passive TTL expiry.
// Entries leave only when read after expiry or on Clear; there is no
// background sweep and no capacity bound.
type Cache[V any] struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry[V]
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a Cache whose entries are valid for ttl after being stored.
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		ttl: ttl,
		now: o.now,
		m:   make(map[string]entry[V]),
	}
}

// Get returns the value stored under key if it has not expired.
// An expired entry is removed as a side effect of the lookup.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.m[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.m, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, replacing any previous entry and its timestamp.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = entry[V]{value: value, storedAt: c.now()}
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = make(map[string]entry[V])
}

// Size reports the number of stored entries, including expired ones that
// have not been read since they expired.
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.m)
}

// Key derives a cache key from an operation name and its parameters.
// Map keys are encoded in sorted order, so equal parameter sets always
// produce the same key.
func Key(op string, params map[string]string) string {
	if len(params) == 0 {
		return op + "-{}"
	}
	b, err := json.Marshal(params)
	if err != nil {
		// map[string]string always marshals.
		panic(err)
	}
	return op + "-" + string(b)
}
