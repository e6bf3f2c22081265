package cache

import (
	"container/list"
	"sync"
)

// defaultCapacity is used when a non-positive capacity is requested.
const defaultCapacity = 256

type entry[K comparable, V any] struct {
	key K
	val V
}

// LRU is a bounded least-recently-used cache.
// It's safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	m        map[K]*list.Element
	ll       *list.List
	capacity int
	// stats
	puts      int
	gets      int
	hits      int
	evictions int
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Gets      int `json:"gets"`
	Hits      int `json:"hits"`
	Puts      int `json:"puts"`
	Evictions int `json:"evictions"`
	Len       int `json:"len"`
	Capacity  int `json:"capacity"`
}

// NewLRU returns an LRU holding at most capacity entries.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &LRU[K, V]{
		m:        make(map[K]*list.Element, capacity),
		ll:       list.New(),
		capacity: capacity,
	}
}

// Get returns the value for key, and true if it was found.
// It updates LRU position on hit.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if el, ok := c.m[key]; ok {
		c.hits++
		c.ll.MoveToFront(el)
		return el.Value.(entry[K, V]).val, true
	}
	var zero V
	return zero, false
}

// Put inserts the value. If insertion causes the cache to exceed
// capacity, the least-recently-used entry is evicted.
func (c *LRU[K, V]) Put(key K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.puts++
	if el, ok := c.m[key]; ok {
		el.Value = entry[K, V]{key: key, val: v}
		c.ll.MoveToFront(el)
		return
	}

	c.m[key] = c.ll.PushFront(entry[K, V]{key: key, val: v})

	if c.ll.Len() > c.capacity {
		tail := c.ll.Back()
		if tail != nil {
			delete(c.m, tail.Value.(entry[K, V]).key)
			c.ll.Remove(tail)
			c.evictions++
		}
	}
}

// Clear drops every entry and resets the stats.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[K]*list.Element, c.capacity)
	c.ll.Init()
	c.puts = 0
	c.gets = 0
	c.hits = 0
	c.evictions = 0
}

// Stats returns the counters, snapshot under lock.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Gets:      c.gets,
		Hits:      c.hits,
		Puts:      c.puts,
		Evictions: c.evictions,
		Len:       c.ll.Len(),
		Capacity:  c.capacity,
	}
}
