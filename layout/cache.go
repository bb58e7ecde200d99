package layout

import "container/list"

// wrapCache is a bounded LRU of WrapInfo keyed by logical line index.
// Eviction is strictly by recency of access; the engine recomputes evicted
// entries on demand, so capacity only bounds memory, never correctness.
type wrapCache struct {
	cap     int
	entries map[int]*list.Element
	order   *list.List // front = most recently used
}

type cacheEntry struct {
	line int
	info WrapInfo
}

func newWrapCache(capacity int) *wrapCache {
	if capacity < 1 {
		capacity = 1
	}
	return &wrapCache{
		cap:     capacity,
		entries: make(map[int]*list.Element),
		order:   list.New(),
	}
}

func (c *wrapCache) get(line int) (WrapInfo, bool) {
	el, ok := c.entries[line]
	if !ok {
		return WrapInfo{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).info, true
}

func (c *wrapCache) put(line int, info WrapInfo) {
	if el, ok := c.entries[line]; ok {
		el.Value.(*cacheEntry).info = info
		c.order.MoveToFront(el)
		return
	}
	c.entries[line] = c.order.PushFront(&cacheEntry{line: line, info: info})
	for len(c.entries) > c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).line)
	}
}

func (c *wrapCache) remove(line int) {
	if el, ok := c.entries[line]; ok {
		c.order.Remove(el)
		delete(c.entries, line)
	}
}

func (c *wrapCache) clear() {
	c.entries = make(map[int]*list.Element)
	c.order.Init()
}

func (c *wrapCache) len() int { return len(c.entries) }
