package expr

import (
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/zplot/cache"
)

// Cache memoizes Parse by formula text. Failures are cached too, so a
// formula that was rejected once is rejected again with the same
// *ParseError. A Cache is safe for concurrent use and is meant to be
// shared by the engines of many sessions; concurrent misses on the same
// text parse it once.
type Cache struct {
	lru   *cache.Cache[string, parseResult]
	group singleflight.Group
}

type parseResult struct {
	expr Expr
	err  error
}

// NewCache returns a cache holding about capacity formulas. Non-positive
// capacities select the cache package default.
func NewCache(capacity int) *Cache {
	perShard := 0
	if capacity > 0 {
		perShard = max(1, capacity/8)
	}
	return &Cache{lru: cache.New[string, parseResult](perShard)}
}

// Parse is like the package-level Parse but consults the cache first.
func (c *Cache) Parse(text string) (Expr, error) {
	if r, ok := c.lru.Get(text); ok {
		return r.expr, r.err
	}
	v, _, _ := c.group.Do(text, func() (any, error) {
		e, err := Parse(text)
		r := parseResult{expr: e, err: err}
		c.lru.Set(text, r)
		return r, nil
	})
	r := v.(parseResult)
	return r.expr, r.err
}

// Stats reports cache hits, misses and evictions.
func (c *Cache) Stats() cache.Stats {
	return c.lru.Stats()
}
