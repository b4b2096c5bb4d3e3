// Package cache holds the last result of an external query together with its
// refresh policy. A refresh starts when the cache is dirty or its countdown
// expires, and at most one query is in flight at a time.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/status"
)

// QueryFunc issues the external query and reports whether it did
// It returns false to decline, for example when no user is logged in
// done must be called exactly once for an issued query, on the loop thread
type QueryFunc[T any] func(done func(sdk.Result, []T)) bool

// Cache is a single-threaded domain cache
//
// State: Idle -> InFlight -> Idle
//   - success replaces the items in one assignment, clears dirty and restarts the countdown
//   - failure keeps the items, clears dirty and restarts the countdown
type Cache[T any] struct {
	name      string
	interval  time.Duration
	remaining time.Duration
	dirty     bool
	inFlight  bool
	gen       uint64
	version   uint64
	items     []T

	query     QueryFunc[T]
	onUpdate  func(items []T)
	onFailure func(r sdk.Result)
	log       logging.Logger

	refreshes *atomic.Int64
	failures  *atomic.Int64
	inflight  *atomic.Bool
	count     *atomic.Int64
}

// New creates an idle cache that refreshes on its first Update
// reg and log may be nil
func New[T any](name string, interval time.Duration, query QueryFunc[T], reg *status.Registry, log logging.Logger) *Cache[T] {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if log == nil {
		log = logging.Nop()
	}
	prefix := "cache." + name + "."
	return &Cache[T]{
		name:      name,
		interval:  interval,
		query:     query,
		log:       log,
		refreshes: reg.Ints.Get(prefix + "refreshes"),
		failures:  reg.Ints.Get(prefix + "failures"),
		inflight:  reg.Bools.Get(prefix + "inflight"),
		count:     reg.Ints.Get(prefix + "items"),
	}
}

// OnUpdate sets the callback run after each successful refresh
func (c *Cache[T]) OnUpdate(fn func(items []T)) { c.onUpdate = fn }

// OnFailure sets the callback run after each failed refresh
func (c *Cache[T]) OnFailure(fn func(r sdk.Result)) { c.onFailure = fn }

// Name returns the cache name used in logs and metrics
func (c *Cache[T]) Name() string { return c.name }

// Update advances the countdown by dt and starts a refresh when due
func (c *Cache[T]) Update(dt time.Duration) {
	if c.inFlight {
		return
	}
	c.remaining -= dt
	if c.dirty || c.remaining <= 0 {
		c.Refresh()
	}
}

// Refresh starts a query unless one is in flight or the query declines
// Returns whether a query was issued
func (c *Cache[T]) Refresh() bool {
	if c.inFlight {
		return false
	}
	gen := c.gen
	c.inFlight = true
	c.inflight.Store(true)
	issued := c.query(func(r sdk.Result, items []T) {
		c.complete(gen, r, items)
	})
	if !issued {
		c.inFlight = false
		c.inflight.Store(false)
	}
	return issued
}

func (c *Cache[T]) complete(gen uint64, r sdk.Result, items []T) {
	c.inFlight = false
	c.inflight.Store(false)
	if gen != c.gen {
		return
	}
	c.dirty = false
	c.remaining = c.interval

	if r != sdk.Success {
		c.failures.Add(1)
		c.log.LogError("Refreshing %s failed: %s", c.name, r)
		if c.onFailure != nil {
			c.onFailure(r)
		}
		return
	}

	c.items = items
	c.version++
	c.refreshes.Add(1)
	c.count.Store(int64(len(items)))
	if c.onUpdate != nil {
		c.onUpdate(items)
	}
}

// SetDirty forces a refresh on the next Update
func (c *Cache[T]) SetDirty() { c.dirty = true }

// Dirty reports whether a refresh is pending
func (c *Cache[T]) Dirty() bool { return c.dirty }

// InFlight reports whether a query is outstanding
func (c *Cache[T]) InFlight() bool { return c.inFlight }

// Items returns the cached collection; callers must not modify it
func (c *Cache[T]) Items() []T { return c.items }

// Len returns the number of cached items
func (c *Cache[T]) Len() int { return len(c.items) }

// Version increments whenever the items are replaced or cleared
func (c *Cache[T]) Version() uint64 { return c.version }

// Remaining returns the time until the next timed refresh
func (c *Cache[T]) Remaining() time.Duration { return c.remaining }

// Clear drops the items and the result of any outstanding query
// An outstanding query stays in flight until its result arrives, so no second
// query starts before then. The countdown restarts so the next refresh waits
// for dirty or a full interval
func (c *Cache[T]) Clear() {
	c.gen++
	c.items = nil
	c.version++
	c.dirty = false
	c.remaining = c.interval
	c.count.Store(0)
}
