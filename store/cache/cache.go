package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	// DefaultTTL is the time-to-live applied by Set.
	DefaultTTL time.Duration
	// CleanupInterval is how often the janitor sweeps expired entries.
	CleanupInterval time.Duration
	// MaxItems caps the number of entries. Zero means unlimited.
	MaxItems int
	// OnEviction is called for entries removed by expiry or capacity.
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time
}

func (i *item) expired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// Cache is an in-memory key-value cache with per-entry TTL and a background
// cleanup goroutine. It is safe for concurrent use.
type Cache struct {
	config Config
	data   sync.Map
	size   atomic.Int64
	done   chan struct{}
	once   sync.Once
}

// New creates a new cache and starts its cleanup goroutine.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	c := &Cache{
		config: config,
		done:   make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get retrieves a value. Expired entries are treated as missing.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	value, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	it := value.(*item)
	if it.expired(time.Now()) {
		c.evict(key, it)
		return nil, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if c.config.MaxItems > 0 && c.size.Load() >= int64(c.config.MaxItems) {
		if _, exists := c.data.Load(key); !exists {
			// At capacity, drop the oldest expired entry first; if none is
			// expired the new entry still wins a slot over nothing.
			c.sweep(time.Now())
			if c.size.Load() >= int64(c.config.MaxItems) {
				return
			}
		}
	}
	if _, loaded := c.data.Swap(key, &item{value: value, expiresAt: time.Now().Add(ttl)}); !loaded {
		c.size.Add(1)
	}
}

// Delete removes a value.
func (c *Cache) Delete(_ context.Context, key string) {
	if value, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, value.(*item).value)
		}
	}
}

// Clear removes all values.
func (c *Cache) Clear(ctx context.Context) {
	c.data.Range(func(key, _ any) bool {
		c.Delete(ctx, key.(string))
		return true
	})
}

// Size returns the number of live entries.
func (c *Cache) Size() int64 {
	return c.size.Load()
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() error {
	c.once.Do(func() {
		close(c.done)
	})
	return nil
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			c.sweep(now)
		case <-c.done:
			return
		}
	}
}

func (c *Cache) sweep(now time.Time) {
	c.data.Range(func(key, value any) bool {
		it := value.(*item)
		if it.expired(now) {
			c.evict(key.(string), it)
		}
		return true
	})
}

func (c *Cache) evict(key string, it *item) {
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, it.value)
		}
	}
}
