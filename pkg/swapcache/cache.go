// Package swapcache multiplexes a bounded set of keyed attribute bundles
// onto one host object. Exactly one bundle is live ("front") at a time; its
// entries are materialized as named attributes on the host and withdrawn
// when another key is activated.
package swapcache

import (
	"errors"
	"fmt"
	"time"
)

// ErrPrecondition reports a swap to a key that was never activated, or an
// update before any key has been activated.
var ErrPrecondition = errors.New("precondition violated")

// DefaultCapacity bounds the number of cached bundles when no explicit
// capacity is configured.
const DefaultCapacity = 5

// Host is the dynamic attribute container a Cache materializes bundles onto.
type Host interface {
	SetAttr(name string, value any)
	DelAttr(name string)
}

type keyAt[K comparable] struct {
	key K
	at  time.Time
}

// Cache keeps at most capacity (key, bundle) pairs in insertion order and
// mirrors the active key's bundle onto the host. Eviction is FIFO by
// insertion: re-activating an existing key does not move it. The cache
// assumes exclusive, single-goroutine access to its host.
type Cache[K comparable] struct {
	host     Host
	capacity int
	clock    func() time.Time

	keys    []keyAt[K]       // bounded, insertion order
	bundles []map[string]any // parallel to keys

	front     []string // attribute names currently on the host
	active    K
	activeIdx int
	hasActive bool
}

type Option func(*config)

type config struct {
	capacity int
	clock    func() time.Time
}

// WithCapacity bounds the number of live bundles. Values below one are
// clamped to one, so the just-inserted entry can never evict itself.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

func WithClock(clock func() time.Time) Option {
	return func(c *config) { c.clock = clock }
}

func New[K comparable](host Host, opts ...Option) *Cache[K] {
	cfg := config{capacity: DefaultCapacity, clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.capacity < 1 {
		cfg.capacity = 1
	}
	return &Cache[K]{
		host:     host,
		capacity: cfg.capacity,
		clock:    cfg.clock,
	}
}

// HasKey reports whether key currently has a cached bundle.
func (c *Cache[K]) HasKey(key K) bool {
	return c.indexOf(key) >= 0
}

// Activate makes key the front key. A previously-unseen key gets a fresh
// empty bundle, evicting the oldest entry once the bound is exceeded.
// Activating the already-active key is a no-op.
func (c *Cache[K]) Activate(key K) {
	if c.hasActive && key == c.active {
		return
	}

	idx := c.indexOf(key)
	if idx < 0 {
		c.keys = append(c.keys, keyAt[K]{key: key, at: c.clock()})
		c.bundles = append(c.bundles, map[string]any{})
		if over := len(c.keys) - c.capacity; over > 0 {
			c.keys = append([]keyAt[K]{}, c.keys[over:]...)
			c.bundles = append([]map[string]any{}, c.bundles[over:]...)
		}
		idx = len(c.keys) - 1
	}

	for _, name := range c.front {
		c.host.DelAttr(name)
	}

	c.active = key
	c.activeIdx = idx
	c.hasActive = true
	c.materialize()
}

// SwapTo activates key, failing instead of inserting when key is unseen.
func (c *Cache[K]) SwapTo(key K) error {
	if !c.HasKey(key) {
		return fmt.Errorf("%w: key %v has no cached bundle", ErrPrecondition, key)
	}
	c.Activate(key)
	return nil
}

// Update activates key, merges updates into its bundle (overwriting name
// collisions), and re-materializes the front attributes so the host reflects
// the merge immediately.
func (c *Cache[K]) Update(key K, updates map[string]any) {
	c.Activate(key)
	bundle := c.bundles[c.activeIdx]
	for name, val := range updates {
		bundle[name] = val
	}
	c.materialize()
}

// UpdateActive merges updates into the active key's bundle. It fails when no
// key has ever been activated.
func (c *Cache[K]) UpdateActive(updates map[string]any) error {
	if !c.hasActive {
		return fmt.Errorf("%w: no active key", ErrPrecondition)
	}
	c.Update(c.active, updates)
	return nil
}

// ActiveKey returns the front key, if any.
func (c *Cache[K]) ActiveKey() (K, bool) {
	return c.active, c.hasActive
}

// Keys returns the cached keys in insertion order.
func (c *Cache[K]) Keys() []K {
	keys := make([]K, len(c.keys))
	for i, e := range c.keys {
		keys[i] = e.key
	}
	return keys
}

// FrontAttrs returns the attribute names currently materialized on the host.
func (c *Cache[K]) FrontAttrs() []string {
	out := make([]string, len(c.front))
	copy(out, c.front)
	return out
}

// Len returns the number of cached bundles.
func (c *Cache[K]) Len() int {
	return len(c.keys)
}

// indexOf resolves key against the same bounded key list HasKey consults, so
// eviction bookkeeping and index lookup cannot drift apart.
func (c *Cache[K]) indexOf(key K) int {
	for i, e := range c.keys {
		if e.key == key {
			return i
		}
	}
	return -1
}

func (c *Cache[K]) materialize() {
	bundle := c.bundles[c.activeIdx]
	front := make([]string, 0, len(bundle))
	for name, val := range bundle {
		c.host.SetAttr(name, val)
		front = append(front, name)
	}
	c.front = front
}
