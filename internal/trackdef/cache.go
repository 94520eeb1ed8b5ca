package trackdef

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"trackgen/internal/track"
)

// Cache builds each named track at most once and shares the result.
// It is safe for concurrent use; concurrent misses on one name share a
// single build.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	defs  map[string]Definition
	group singleflight.Group
	build func(Definition) (*track.Track, error)
}

type cacheEntry struct {
	track *track.Track
	err   error
}

// NewCache returns a cache over defs, keyed by name.
func NewCache(defs []Definition) *Cache {
	c := &Cache{
		items: make(map[string]*cacheEntry),
		defs:  make(map[string]Definition, len(defs)),
		build: Definition.Build,
	}
	for _, d := range defs {
		c.defs[d.Name] = d
	}
	return c
}

// Len returns the number of known definitions.
func (c *Cache) Len() int {
	return len(c.defs)
}

func (c *Cache) lookup(name string) (*cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[name]
	return e, ok
}

// Get returns the built track for name. A failed build is cached too and
// is not retried.
func (c *Cache) Get(name string) (*track.Track, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("trackdef: unknown track %q", name)
	}
	if e, ok := c.lookup(name); ok {
		return e.track, e.err
	}

	v, _, _ := c.group.Do(name, func() (interface{}, error) {
		// A build that finished between lookup and Do is already stored.
		if e, ok := c.lookup(name); ok {
			return e, nil
		}
		t, err := c.build(def)
		e := &cacheEntry{track: t, err: err}
		c.mu.Lock()
		c.items[name] = e
		c.mu.Unlock()
		return e, nil
	})
	e := v.(*cacheEntry)
	return e.track, e.err
}
