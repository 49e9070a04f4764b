package reactivity

import "sync"

// versioned is satisfied by anything Computed can depend on to know when
// to invalidate its cache.
type versioned interface {
	signalVersion() uint64
}

// Computed caches the result of a derivation function, recomputing only
// when one of the signals it read during its last computation has since
// been written, mirroring core.Computed's memoize-until-dependency-changes
// behavior but tied to Signal's version counter rather than a dependency
// graph walk.
type Computed[T any] struct {
	mu      sync.Mutex
	fn      func() T
	cached  T
	have    bool
	lastVer map[versioned]uint64
	driver  *Driver
}

// NewComputed returns a Computed that lazily evaluates fn on first Get and
// on any Get after a tracked dependency's version has advanced.
func NewComputed[T any](driver *Driver, fn func() T) *Computed[T] {
	return &Computed[T]{fn: fn, lastVer: make(map[versioned]uint64), driver: driver}
}

// Get returns the cached value, recomputing first if stale.
func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.have && !c.staleLocked() {
		return c.cached
	}

	deps := &trackSet{seen: make(map[depender]bool)}
	if c.driver != nil {
		c.driver.mu.Lock()
		c.driver.trackers = append(c.driver.trackers, deps)
		c.driver.mu.Unlock()
	}

	result := c.fn()

	if c.driver != nil {
		c.driver.mu.Lock()
		c.driver.trackers = c.driver.trackers[:len(c.driver.trackers)-1]
		c.driver.mu.Unlock()
	}

	c.lastVer = make(map[versioned]uint64, len(deps.seen))
	for d := range deps.seen {
		if v, ok := d.(versioned); ok {
			c.lastVer[v] = v.signalVersion()
		}
	}
	c.cached = result
	c.have = true
	return result
}

func (c *Computed[T]) staleLocked() bool {
	for d, ver := range c.lastVer {
		if d.signalVersion() != ver {
			return true
		}
	}
	return false
}
