package provider

import (
	"context"
	"sync"
	"time"
)

// entry wraps a cached value with expiry and insertion order tracking.
type entry[V any] struct {
	value     V
	expiry    time.Time
	insertIdx int64
}

// ttlCache is a size-bounded cache whose entries expire after ttl.
// Thread-safe with sync.RWMutex.
type ttlCache[V any] struct {
	mu         sync.RWMutex
	items      map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

func newTTLCache[V any](ttl time.Duration, maxEntries int) *ttlCache[V] {
	return &ttlCache[V]{
		items:      make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *ttlCache[V]) get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && c.now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (c *ttlCache[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry[V]{value: value, expiry: c.now().Add(c.ttl), insertIdx: c.nextIdx}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}
	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}
	c.items[key] = e
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *ttlCache[V]) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1
	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

func (c *ttlCache[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// CachedMarketData memoizes quotes, profiles, and fundamentals of an inner
// MarketData for a short TTL. Searches and errors are never cached.
type CachedMarketData struct {
	inner      MarketData
	quotes     *ttlCache[*Quote]
	profiles   *ttlCache[*Profile]
	financials *ttlCache[*BasicFinancials]
}

// NewCachedMarketData wraps inner. A non-positive ttl disables caching by
// returning inner unchanged.
func NewCachedMarketData(inner MarketData, ttl time.Duration, maxEntries int) MarketData {
	if ttl <= 0 {
		return inner
	}
	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &CachedMarketData{
		inner:      inner,
		quotes:     newTTLCache[*Quote](ttl, maxEntries),
		profiles:   newTTLCache[*Profile](ttl, maxEntries),
		financials: newTTLCache[*BasicFinancials](ttl, maxEntries),
	}
}

// Name returns the inner provider's name.
func (c *CachedMarketData) Name() string { return c.inner.Name() }

// SearchSymbol delegates to the inner provider.
func (c *CachedMarketData) SearchSymbol(ctx context.Context, query string) (string, error) {
	return c.inner.SearchSymbol(ctx, query)
}

// Quote returns a cached quote or fetches a fresh one.
func (c *CachedMarketData) Quote(ctx context.Context, symbol string) (*Quote, error) {
	return cached(c.quotes, symbol, func() (*Quote, error) { return c.inner.Quote(ctx, symbol) })
}

// Profile returns a cached profile or fetches a fresh one.
func (c *CachedMarketData) Profile(ctx context.Context, symbol string) (*Profile, error) {
	return cached(c.profiles, symbol, func() (*Profile, error) { return c.inner.Profile(ctx, symbol) })
}

// BasicFinancials returns cached fundamentals or fetches fresh ones.
func (c *CachedMarketData) BasicFinancials(ctx context.Context, symbol string) (*BasicFinancials, error) {
	return cached(c.financials, symbol, func() (*BasicFinancials, error) { return c.inner.BasicFinancials(ctx, symbol) })
}

func cached[V any](c *ttlCache[V], key string, fetch func() (V, error)) (V, error) {
	if v, ok := c.get(key); ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.set(key, v)
	return v, nil
}
