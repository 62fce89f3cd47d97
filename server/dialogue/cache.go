package dialogue

import (
	"container/list"
	"sync"
	"time"
)

// lookupCache is a small LRU with per-entry TTL, used to memoize successful
// remote knowledge lookups. Local table hits and placeholder fallbacks are
// never cached: a transient encyclopedia failure should be retried on the
// next query, not pinned until the entry ages out.
type lookupCache struct {
	capacity int
	ttl      time.Duration
	mu       sync.Mutex

	entries map[string]*cacheEntry
	order   *list.List
}

type cacheEntry struct {
	key       string
	result    KnowledgeResult
	expiresAt time.Time
	element   *list.Element
}

func newLookupCache(capacity int, ttl time.Duration) *lookupCache {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &lookupCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry),
		order:    list.New(),
	}
}

func (c *lookupCache) get(key string) (KnowledgeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return KnowledgeResult{}, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		return KnowledgeResult{}, false
	}
	c.order.MoveToFront(e.element)
	return e.result, true
}

func (c *lookupCache) set(key string, result KnowledgeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.result = result
		e.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(e.element)
		return
	}

	for len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	e := &cacheEntry{
		key:       key,
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
	e.element = c.order.PushFront(e)
	c.entries[key] = e
}

func (c *lookupCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the least recently used entry. Caller holds the lock.
func (c *lookupCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.removeEntry(oldest.Value.(*cacheEntry))
}

// removeEntry unlinks an entry. Caller holds the lock.
func (c *lookupCache) removeEntry(e *cacheEntry) {
	c.order.Remove(e.element)
	delete(c.entries, e.key)
}
