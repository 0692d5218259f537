package arrange

import "sync"

// Cache memoizes the last arrangement result, keyed by ContentHash of the
// line set. It is meant to be owned by a single caller (the shape store)
// that asks for regions whenever it needs them; recomputation happens only
// when the lines actually changed.
type Cache struct {
	mu     sync.Mutex
	engine *Engine
	hash   string
	valid  bool
	result Result
	index  *Index
	hits   int
	misses int
}

// NewCache wraps engine. A nil engine uses the default configuration.
func NewCache(engine *Engine) *Cache {
	if engine == nil {
		engine = New()
	}
	return &Cache{engine: engine}
}

// Result returns the arrangement of segs, recomputing it only when the
// content hash differs from the cached one.
func (c *Cache) Result(segs []Segment) Result {
	res, _ := c.lookup(segs)
	return res
}

// Index returns a spatial index over the regions of segs.
func (c *Cache) Index(segs []Segment) *Index {
	_, ix := c.lookup(segs)
	return ix
}

func (c *Cache) lookup(segs []Segment) (Result, *Index) {
	h := ContentHash(segs)
	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.engine.cfg.log()
	if c.valid && c.hash == h {
		c.hits++
		log.Debug("arrange: cache hit", "hash", h[:12])
		return c.result, c.index
	}
	c.misses++
	log.Debug("arrange: cache miss", "hash", h[:12], "segments", len(segs))
	c.result = c.engine.Compute(segs)
	c.index = newIndex(c.result.Regions, c.engine.cfg.Epsilon)
	c.hash = h
	c.valid = true
	return c.result, c.index
}

// Hash is the content hash of the cached line set, empty before the first
// computation.
func (c *Cache) Hash() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return ""
	}
	return c.hash
}

// Invalidate forces the next call to recompute.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func (c *Cache) Misses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}
