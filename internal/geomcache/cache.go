// Package geomcache keeps flattened drawings in memory, keyed by source id.
// Concurrent loads of the same id share one fetch, parse and flatten run.
// Failed loads are not cached, so the next call retries.
package geomcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/piwi3910/SeatPlan/internal/flatten"
	"github.com/piwi3910/SeatPlan/internal/importer"
	"github.com/piwi3910/SeatPlan/internal/source"
)

// Loader produces the flattened geometry for a source id.
type Loader func(ctx context.Context, id string) (*flatten.Result, error)

// Pipeline returns the standard loader: fetch the bytes, parse them into a
// drawing document, flatten it.
func Pipeline(f source.Fetcher, opts flatten.Options) Loader {
	return func(ctx context.Context, id string) (*flatten.Result, error) {
		data, err := f.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		doc, err := importer.ParseDrawing(id, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		return flatten.Flatten(doc, opts), nil
	}
}

// Cache holds flattened drawings until Clear. There is no eviction.
type Cache struct {
	load    Loader
	metrics *Metrics
	logger  *log.Logger

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*flatten.Result
	gen     uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithMetrics records cache activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New returns an empty cache that fills itself with load.
func New(load Loader, opts ...Option) *Cache {
	c := &Cache{
		load:    load,
		entries: map[string]*flatten.Result{},
		logger:  log.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the cached result for id without loading.
func (c *Cache) Get(id string) (*flatten.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[id]
	return res, ok
}

// Put stores res under id, replacing any earlier entry.
func (c *Cache) Put(id string, res *flatten.Result) {
	c.mu.Lock()
	c.entries[id] = res
	n := len(c.entries)
	c.mu.Unlock()
	c.metrics.setEntries(n)
}

// Clear drops every entry. Loads already in flight still answer their
// callers but are not stored.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = map[string]*flatten.Result{}
	c.gen++
	c.mu.Unlock()
	c.metrics.setEntries(0)
}

// Len returns the number of cached drawings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load returns the geometry for id, loading it at most once no matter how
// many callers ask at the same time. All callers get the same *Result and
// must treat it as read-only. The first caller's ctx governs the shared
// load.
func (c *Cache) Load(ctx context.Context, id string) (*flatten.Result, error) {
	if res, ok := c.Get(id); ok {
		c.metrics.hit()
		c.logger.Debug("geometry cache hit", "id", id)
		return res, nil
	}

	v, err, _ := c.group.Do(id, func() (any, error) {
		// a load for id may have finished between Get and Do
		c.mu.RLock()
		res, ok := c.entries[id]
		gen := c.gen
		c.mu.RUnlock()
		if ok {
			c.metrics.hit()
			return res, nil
		}

		c.metrics.miss()
		start := time.Now()
		res, err := c.load(ctx, id)
		elapsed := time.Since(start)
		if err != nil {
			c.metrics.load(StatusFailure, elapsed.Seconds())
			return nil, err
		}
		c.metrics.load(StatusSuccess, elapsed.Seconds())
		c.logger.Debug("geometry loaded", "id", id, "primitives", len(res.Primitives), "took", elapsed)

		c.mu.Lock()
		if c.gen == gen {
			c.entries[id] = res
		}
		n := len(c.entries)
		c.mu.Unlock()
		c.metrics.setEntries(n)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*flatten.Result), nil
}

// LoadOrEmpty is Load with failures degraded to an empty result and a
// warning, so a missing or broken drawing draws nothing instead of
// stopping the caller.
func (c *Cache) LoadOrEmpty(ctx context.Context, id string) *flatten.Result {
	res, err := c.Load(ctx, id)
	if err != nil {
		c.logger.Warn("drawing unavailable, using empty geometry", "id", id, "err", err)
		return flatten.EmptyResult()
	}
	return res
}
