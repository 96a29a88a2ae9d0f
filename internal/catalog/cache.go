package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/thoreinstein/platdetect/internal/telemetry"
)

// State is the lifecycle position of a Cache.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Cache memoizes a provider's catalog for its lifetime.
//
// Concurrent cold calls share one underlying load. The snapshot is published
// only once the load has fully completed, so readers never observe a partial
// catalog. A failed load leaves the cache in StateFailed and the next call
// loads again. It is safe for concurrent use.
type Cache struct {
	platform string
	provider Provider

	group    singleflight.Group
	snapshot atomic.Pointer[Catalog]

	mu      sync.Mutex
	state   State
	lastErr error
	loads   int
}

var _ Provider = (*Cache)(nil)

// NewCache wraps provider.
func NewCache(platform string, provider Provider) *Cache {
	return &Cache{
		platform: platform,
		provider: provider,
	}
}

// Source reports the wrapped provider's source.
func (c *Cache) Source() Source {
	return c.provider.Source()
}

// State returns the current state and the error of the last failed load.
func (c *Cache) State() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastErr
}

// Loads returns how many times the wrapped provider has been called.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Catalog returns the cached snapshot, loading it on first use.
func (c *Cache) Catalog(ctx context.Context) (*Catalog, error) {
	if cat := c.snapshot.Load(); cat != nil {
		return cat, nil
	}

	v, err, _ := c.group.Do(c.platform, func() (any, error) {
		// A load may have finished between the fast path and here
		if cat := c.snapshot.Load(); cat != nil {
			return cat, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

func (c *Cache) load(ctx context.Context) (*Catalog, error) {
	c.setState(StateLoading, nil)

	source := string(c.provider.Source())
	ctx, span := telemetry.StartSpan(ctx, "catalog.load",
		telemetry.AttrPlatform.String(c.platform),
		telemetry.AttrSource.String(source))

	start := time.Now()
	cat, err := c.provider.Catalog(ctx)
	telemetry.RecordCatalogLoad(c.platform, source, err, time.Since(start))
	telemetry.EndSpan(span, err)

	if err != nil {
		c.setState(StateFailed, err)
		return nil, err
	}

	c.snapshot.Store(cat)
	c.setState(StateLoaded, nil)
	return cat, nil
}

func (c *Cache) setState(s State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == StateLoading {
		c.loads++
	}
	c.state = s
	c.lastErr = err
}
