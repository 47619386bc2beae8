// Package binding resolves bound arrow endpoints against their target
// elements and keeps an incrementally maintained index from target id to
// the arrows bound to it.
package binding

import (
	"math"

	"arrowgeo/core"
	"arrowgeo/geometry"
)

// EffectiveGap returns the boundary stand-off for an orbit binding: the
// binding's own gap plus half the target's stroke width, so the endpoint
// clears the drawn outline.
func EffectiveGap(b *core.Binding, target *core.Element) float64 {
	if b == nil || b.Mode != core.BindOrbit {
		return 0
	}
	return b.Gap + target.StrokeWidth()/2
}

// ResolveBoundPoint computes the world position of a bound endpoint.
// Inside bindings pin the endpoint to the anchor within the target.
// Orbit bindings keep it on (or gapped outside) the target boundary,
// re-aimed along the ray from reference through the target so the line
// keeps its prior direction as the target moves; when no directed
// intersection exists the nearest boundary point to the anchor's absolute
// position is used instead.
func ResolveBoundPoint(b *core.Binding, target *core.Element, reference geometry.Point) geometry.Point {
	bb := b.Clamped()
	space := target.Space()
	anchorAbs := geometry.Point{
		X: target.Rect.MinX + bb.Anchor.X*target.Rect.Width(),
		Y: target.Rect.MinY + bb.Anchor.Y*target.Rect.Height(),
	}
	if bb.Mode == core.BindInside {
		return space.ToWorld(anchorAbs)
	}

	rect := target.Rect.Inflate(EffectiveGap(&bb, target))
	refLocal := space.FromWorld(reference)
	dir := anchorAbs.Sub(refLocal)
	if hit, ok := rayRectIntersection(refLocal, dir, rect); ok {
		return space.ToWorld(hit)
	}
	return space.ToWorld(rect.NearestBoundaryPoint(anchorAbs))
}

// rayRectIntersection intersects the ray origin+t*dir (t >= 0) with the
// rect boundary using the slab method. An origin inside the rect yields
// the exit point; an origin outside yields the entry point.
func rayRectIntersection(origin, dir geometry.Point, rect geometry.Rect) (geometry.Point, bool) {
	if dir == (geometry.Point{}) {
		return geometry.Point{}, false
	}
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 2; axis++ {
		var o, d, lo, hi float64
		if axis == 0 {
			o, d, lo, hi = origin.X, dir.X, rect.MinX, rect.MaxX
		} else {
			o, d, lo, hi = origin.Y, dir.Y, rect.MinY, rect.MaxY
		}
		if d == 0 {
			if o < lo || o > hi {
				return geometry.Point{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return geometry.Point{}, false
		}
	}
	if tmax < 0 {
		return geometry.Point{}, false
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	return origin.Add(dir.Scale(t)), true
}
