package cache

import "slices"

// RouteKey identifies one query against the map. Dst is empty for queries
// that take only a start.
type RouteKey struct {
	Algo     string
	Src, Dst string
}

// Result is a cached query answer. Locations is a path or a visiting
// order depending on the query.
type Result struct {
	Locations []string
	Found     bool
	Distance  float64
	Explored  int
}

// RouteCache memoizes query results. The map never changes after startup,
// so entries are only ever evicted for space.
type RouteCache struct {
	lru *LRU[RouteKey, Result]
}

func NewRouteCache(capacity int) *RouteCache {
	return &RouteCache{lru: NewLRU[RouteKey, Result](capacity)}
}

// Get returns a copy of the cached result so callers may modify it.
func (c *RouteCache) Get(k RouteKey) (Result, bool) {
	r, ok := c.lru.Get(k)
	if !ok {
		return Result{}, false
	}
	r.Locations = slices.Clone(r.Locations)
	return r, true
}

func (c *RouteCache) Put(k RouteKey, r Result) {
	r.Locations = slices.Clone(r.Locations)
	c.lru.Put(k, r)
}

func (c *RouteCache) Stats() Stats { return c.lru.Stats() }

func (c *RouteCache) Clear() { c.lru.Clear() }
