package shape

import (
	"arrowgeo/core"
	"arrowgeo/geometry"
)

// ExactBounds returns the tight world-space bounds of an element's shaft.
// Straight and elbow shafts bound their control points; curved shafts
// fold in the analytic bounds of every cubic segment, so spline overshoot
// is included without sampling error. Bounds are persisted, so this must
// be deterministic.
func ExactBounds(el *core.Element) geometry.Rect {
	s := BuildShaft(el)
	if s.Kind != core.ShaftCurved || len(s.Cubics) == 0 {
		return geometry.BoundsOf(s.Points)
	}
	b := s.Cubics[0].Bounds()
	for _, c := range s.Cubics[1:] {
		b = b.Union(c.Bounds())
	}
	return b
}

// Recentre recomputes an element rect from moved local points without
// disturbing the rotation pivot's effect on world positions. Naively
// re-deriving the rect would shift the pivot and displace every point in
// world space; instead the points are taken to world with the old pivot,
// the new pivot is the unrotated bounding-box center rotated back, and
// the points are re-expressed around it. Every world point is preserved
// exactly. Returns the new rect and the matching local points.
func Recentre(angle float64, oldCenter geometry.Point, local []geometry.Point) (geometry.Rect, []geometry.Point) {
	if len(local) == 0 {
		return geometry.Rect{}, nil
	}
	oldSpace := geometry.NewSpace(angle, oldCenter)

	world := make([]geometry.Point, len(local))
	for i, p := range local {
		world[i] = oldSpace.ToWorld(p)
	}

	// The local points are already the unrotated frame; their bbox center
	// rotated about the old pivot is the new pivot.
	newPivot := oldSpace.ToWorld(geometry.BoundsOf(local).Center())

	newSpace := geometry.NewSpace(angle, newPivot)
	newLocal := make([]geometry.Point, len(world))
	for i, p := range world {
		newLocal[i] = newSpace.FromWorld(p)
	}
	return geometry.BoundsOf(newLocal), newLocal
}

// RecentreElement applies Recentre to an element whose world points have
// moved, writing the new rect and re-normalized control points in place.
func RecentreElement(el *core.Element, world []geometry.Point) {
	l := el.Linear()
	if l == nil || len(world) == 0 {
		return
	}
	space := el.Space()
	local := make([]geometry.Point, len(world))
	for i, p := range world {
		local[i] = space.FromWorld(p)
	}
	rect, newLocal := Recentre(el.Angle, el.Rect.Center(), local)
	el.Rect = rect
	l.NormPoints = Normalize(rect, newLocal)
}
