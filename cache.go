package pcf

// glyphCache is a fixed-capacity LRU over decoded glyphs: a key lookup
// map plus an intrusive doubly linked list in recency order, giving
// O(1) get and put with true move-to-front. It is the only mutable
// state a Font keeps between calls.
type glyphCache struct {
	capacity    int
	entries     map[rune]*cacheNode
	first, last *cacheNode
}

type cacheNode struct {
	prev, next *cacheNode
	code       rune
	glyph      *Glyph
}

// newGlyphCache creates a cache holding at most capacity glyphs,
// capacity >= 1.
func newGlyphCache(capacity int) *glyphCache {
	return &glyphCache{
		capacity: capacity,
		entries:  make(map[rune]*cacheNode, capacity),
	}
}

// get returns the cached glyph and marks it most recently used.
func (c *glyphCache) get(code rune) (*Glyph, bool) {
	node, ok := c.entries[code]
	if !ok {
		return nil, false
	}

	c.moveToFront(node)
	return node.glyph, true
}

// put inserts the glyph as most recently used, evicting the single
// least recently used entry first if the cache is full. Overwriting an
// existing key refreshes its recency.
func (c *glyphCache) put(code rune, glyph *Glyph) {
	if node, ok := c.entries[code]; ok {
		node.glyph = glyph
		c.moveToFront(node)
		return
	}

	if len(c.entries) >= c.capacity {
		c.removeLast()
	}

	node := &cacheNode{code: code, glyph: glyph}
	c.entries[code] = node
	c.moveToFront(node)
}

// contains reports membership without touching recency order.
func (c *glyphCache) contains(code rune) bool {
	_, ok := c.entries[code]
	return ok
}

func (c *glyphCache) len() int {
	return len(c.entries)
}

// remove drops an entry outright. Used to back out cache slots whose
// bitmaps never got decoded after a mid-batch read failure.
func (c *glyphCache) remove(code rune) {
	node, ok := c.entries[code]
	if !ok {
		return
	}

	delete(c.entries, code)
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.first = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.last = node.prev
	}
}

func (c *glyphCache) moveToFront(node *cacheNode) {
	if node == c.first {
		return
	}

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == c.last {
		c.last = node.prev
	}

	node.prev = nil
	node.next = c.first
	if c.first != nil {
		c.first.prev = node
	}
	c.first = node
	if c.last == nil {
		c.last = node
	}
}

func (c *glyphCache) removeLast() {
	if c.last == nil {
		return
	}

	delete(c.entries, c.last.code)
	if c.last.prev != nil {
		c.last.prev.next = nil
	} else {
		c.first = nil
	}
	c.last = c.last.prev
}
