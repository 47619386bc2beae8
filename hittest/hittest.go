package hittest

import (
	"math"

	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/shape"
)

// Tester hit-tests elements against world-space points. Each Tester owns
// its cache, so tests and callers can construct fresh instances and
// reason about cold and warm behaviour separately.
type Tester struct {
	cache *cache
}

// NewTester returns a Tester with an empty geometry cache.
func NewTester() *Tester {
	return &Tester{cache: newCache()}
}

// Hit reports whether the world-space point p lies within tolerance of
// the element's rendered geometry: the shaft stroke and any arrowheads
// for arrow-like elements, the outline (or filled interior) for boxes.
func (t *Tester) Hit(el *core.Element, p geometry.Point, tolerance float64) bool {
	if el.Linear() == nil {
		return t.hitBox(el, p, tolerance)
	}
	g := t.geometry(el)

	// Early rejection against the inflated box.
	if !g.bounds.Inflate(tolerance).Contains(p) {
		return false
	}

	reach := g.strokeHalf + tolerance
	for i := 0; i < len(g.shaft)-1; i++ {
		if geometry.DistanceToSegment(p, g.shaft[i], g.shaft[i+1]) <= reach {
			return true
		}
	}
	for _, h := range g.heads {
		if hitHead(h, p, reach) {
			return true
		}
	}
	return false
}

// ShaftPoints returns the element's cached drawable polyline: the shaft
// flattened and trimmed back from each tip by its arrowhead inset. The
// slice is shared with the cache; callers must not mutate it.
func (t *Tester) ShaftPoints(el *core.Element) []geometry.Point {
	return t.geometry(el).shaft
}

// Heads returns the element's cached arrowhead shapes.
func (t *Tester) Heads(el *core.Element) []shape.HeadShape {
	return t.geometry(el).heads
}

// Stats reports the cache counters: hits, misses, evictions and the
// number of map-tier entries.
func (t *Tester) Stats() (hits, misses, evictions uint64, size int) {
	return t.cache.stats()
}

// geometry returns the element's derived geometry, computing and caching
// it on first sight of the (id, rect, data) key.
func (t *Tester) geometry(el *core.Element) *elementGeometry {
	key := geomKey{id: el.ID, rect: el.Rect, data: el.Data}
	if g := t.cache.get(key); g != nil {
		return g
	}
	g := derive(el, key)
	t.cache.put(g)
	return g
}

// derive builds the testable geometry for an arrow-like element.
func derive(el *core.Element, key geomKey) *elementGeometry {
	l := el.Linear()
	s := shape.BuildShaft(el)

	startHead, endHead := shape.Heads(el, s)
	trimmed := s.Trimmed(
		shape.InsetFor(l.StartHead, l.StrokeWidth),
		shape.InsetFor(l.EndHead, l.StrokeWidth),
	)

	g := &elementGeometry{
		key:        key,
		shaft:      trimmed,
		strokeHalf: l.StrokeWidth / 2,
		headExtent: shape.MaxHeadExtent(l),
	}
	if startHead.Style != core.HeadNone {
		g.heads = append(g.heads, startHead)
	}
	if endHead.Style != core.HeadNone {
		g.heads = append(g.heads, endHead)
	}

	b := geometry.BoundsOf(s.Flattened())
	g.bounds = b.Inflate(g.strokeHalf + g.headExtent)
	return g
}

// hitHead tests one arrowhead: open styles as strokes, closed polygons
// by edge distance, circles as an annular band around the outline.
func hitHead(h shape.HeadShape, p geometry.Point, reach float64) bool {
	for _, s := range h.Strokes {
		if geometry.DistanceToSegment(p, s[0], s[1]) <= reach {
			return true
		}
	}
	for i := 0; i < len(h.Polygon); i++ {
		a := h.Polygon[i]
		b := h.Polygon[(i+1)%len(h.Polygon)]
		if geometry.DistanceToSegment(p, a, b) <= reach {
			return true
		}
	}
	if h.Radius > 0 {
		if math.Abs(p.DistanceTo(h.Center)-h.Radius) <= reach {
			return true
		}
	}
	return false
}

// hitBox tests a plain shape: the outline within tolerance, or anywhere
// inside for filled boxes.
func (t *Tester) hitBox(el *core.Element, p geometry.Point, tolerance float64) bool {
	local := el.Space().FromWorld(p)
	depth := el.Rect.EdgeDepth(local)
	reach := el.StrokeWidth()/2 + tolerance
	if box, ok := el.Data.(*core.BoxData); ok && box.Filled {
		return depth >= -reach
	}
	return math.Abs(depth) <= reach
}
