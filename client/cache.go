package client

import (
	"sync"

	"precisionturn/plan"
)

// Cache is a best-effort, session-lifetime index of fetched plans,
// keyed by id. It is owned by a Store instance and is never the system
// of record; it grows unbounded for the life of the session.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*plan.Plan
}

// NewCache creates an empty plan cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*plan.Plan)}
}

// Get returns the cached plan for id. A cached plan lacking a usable
// generated breakdown is not trusted: it is purged and reported as a
// miss so the caller re-fetches.
func (c *Cache) Get(id string) (*plan.Plan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if !p.HasGeneratedPlan() {
		delete(c.entries, id)
		return nil, false
	}
	return p, true
}

// Put stores a plan under its id
func (c *Cache) Put(id string, p *plan.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = p
}

// Invalidate removes the entry for id, if present
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
