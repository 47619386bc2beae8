// Package hittest answers "does this point hit this arrow", backed by a
// small two-tier cache of derived per-element geometry so repeated hits
// on the same elements stay allocation-free.
package hittest

import (
	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/shape"
)

const (
	// ringSize is the most-recently-used fast tier checked before the map.
	ringSize = 8
	// maxCacheEntries bounds the map tier; overflow resets it wholesale.
	maxCacheEntries = 512
)

// geomKey identifies one element's derived geometry: the id plus the
// rect and the payload's identity as the revision signal. Replacing an
// element's data produces a new key, so staleness is detected by key
// comparison alone.
type geomKey struct {
	id   core.ID
	rect geometry.Rect
	data core.Data
}

// elementGeometry is the cached drawable/testable form of one element.
type elementGeometry struct {
	key        geomKey
	bounds     geometry.Rect // shaft bounds inflated by stroke, tolerance headroom comes per query
	shaft      []geometry.Point
	heads      []shape.HeadShape
	strokeHalf float64
	headExtent float64
}

// cache is the two-tier store: an MRU ring in front of a bounded map.
type cache struct {
	ring    [ringSize]*elementGeometry
	ringPos int
	entries map[geomKey]*elementGeometry

	hits, misses, evictions uint64
}

func newCache() *cache {
	return &cache{entries: make(map[geomKey]*elementGeometry)}
}

// get returns the cached geometry for key, or nil.
func (c *cache) get(key geomKey) *elementGeometry {
	for _, g := range c.ring {
		if g != nil && g.key == key {
			c.hits++
			return g
		}
	}
	if g, ok := c.entries[key]; ok {
		c.hits++
		c.promote(g)
		return g
	}
	c.misses++
	return nil
}

// put stores freshly derived geometry in both tiers.
func (c *cache) put(g *elementGeometry) {
	if len(c.entries) >= maxCacheEntries {
		c.entries = make(map[geomKey]*elementGeometry, maxCacheEntries)
		c.evictions++
	}
	c.entries[g.key] = g
	c.promote(g)
}

// promote writes g into the ring, displacing the oldest slot.
func (c *cache) promote(g *elementGeometry) {
	c.ring[c.ringPos] = g
	c.ringPos = (c.ringPos + 1) % ringSize
}

// Stats reports cache effectiveness counters.
func (c *cache) stats() (hits, misses, evictions uint64, size int) {
	return c.hits, c.misses, c.evictions, len(c.entries)
}
