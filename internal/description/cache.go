package description

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DescriptionBuilder is the rebuild dependency of the cache.
type DescriptionBuilder interface {
	Build(ctx context.Context) (Description, error)
}

// Cache holds a single cached Description with a fetch timestamp. The mutex
// is held across the rebuild, which makes refresh single-flight: concurrent
// callers during a stale window serialize behind one gateway round-trip and
// all observe the same value. The rebuild span is bounded by the gateway
// client's request timeout.
type Cache struct {
	builder DescriptionBuilder
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	value     Description
	fetchedAt time.Time
}

// DefaultTTL is the maximum age of a cached Description before a forced
// rebuild.
const DefaultTTL = 10 * time.Second

// NewCache creates an empty cache over the given builder.
func NewCache(builder DescriptionBuilder, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		builder: builder,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the cached Description, rebuilding it first when the entry is
// absent or older than the TTL. A failed rebuild leaves the previous entry
// untouched and propagates the error; it never falls back to the stale value.
func (c *Cache) Get(ctx context.Context) (Description, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > c.ttl {
		desc, err := c.builder.Build(ctx)
		if err != nil {
			return nil, err
		}
		c.value = desc
		c.fetchedAt = c.now()
		c.logger.Debug("description cache refreshed", "rooms", len(desc))
	}
	return c.value, nil
}

// Invalidate clears the entry so the next Get forces a rebuild. It blocks on
// the cache lock, so an invalidation racing an in-flight rebuild always lands
// after it: the entry ends up absent, never re-populated by the older build.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.fetchedAt = time.Time{}
}
