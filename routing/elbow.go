// Package routing reconciles elbow arrow paths with their orbit-bound
// targets: the terminal segment must approach the bound edge
// perpendicularly and detour around the target rectangle when needed.
package routing

import (
	"math"

	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/shape"
)

// MergeTolerance is the distance within which consecutive routed points
// are collapsed into one.
const MergeTolerance = 1e-3

// Edge identifies a side of the target rectangle.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Horizontal reports whether the edge runs horizontally (top or bottom).
func (e Edge) Horizontal() bool {
	return e == EdgeTop || e == EdgeBottom
}

// Normal returns the outward unit normal of the edge.
func (e Edge) Normal() geometry.Point {
	switch e {
	case EdgeTop:
		return geometry.Point{Y: -1}
	case EdgeRight:
		return geometry.Point{X: 1}
	case EdgeBottom:
		return geometry.Point{Y: 1}
	default:
		return geometry.Point{X: -1}
	}
}

// Routed is an elbow path with provenance: Auto[i] marks points the
// router inserted, as opposed to user-placed ones.
type Routed struct {
	Points []geometry.Point
	Auto   []bool
}

// Standoff returns the stroke-derived clearance used for approach points
// and detours around the target.
func Standoff(strokeWidth float64) float64 {
	return strokeWidth*2 + 8
}

// BoundEdge picks the target edge nearest the normalized anchor. Corner
// anchors (two sides equally near) tie-break on the approaching
// segment's dominant axis: a mostly horizontal approach lands on a
// vertical edge and vice versa.
func BoundEdge(anchor geometry.Point, approach geometry.Point) Edge {
	dLeft := anchor.X
	dRight := 1 - anchor.X
	dTop := anchor.Y
	dBottom := 1 - anchor.Y

	dx := math.Min(dLeft, dRight)
	dy := math.Min(dTop, dBottom)

	vertical := func() Edge {
		if dLeft <= dRight {
			return EdgeLeft
		}
		return EdgeRight
	}
	horizontal := func() Edge {
		if dTop <= dBottom {
			return EdgeTop
		}
		return EdgeBottom
	}

	switch {
	case dx < dy:
		return vertical()
	case dy < dx:
		return horizontal()
	default:
		// Corner: follow the approach's dominant axis.
		if math.Abs(approach.X) >= math.Abs(approach.Y) {
			return vertical()
		}
		return horizontal()
	}
}

// WorldAABB returns the target's world-space axis-aligned box (the rect
// itself when unrotated, else the bounds of the rotated corners).
func WorldAABB(el *core.Element) geometry.Rect {
	if el.Angle == 0 {
		return el.Rect
	}
	space := el.Space()
	corners := []geometry.Point{
		space.ToWorld(geometry.Point{X: el.Rect.MinX, Y: el.Rect.MinY}),
		space.ToWorld(geometry.Point{X: el.Rect.MaxX, Y: el.Rect.MinY}),
		space.ToWorld(geometry.Point{X: el.Rect.MaxX, Y: el.Rect.MaxY}),
		space.ToWorld(geometry.Point{X: el.Rect.MinX, Y: el.Rect.MaxY}),
	}
	return geometry.BoundsOf(corners)
}

// RouteOrbitEnd rewrites the tail of an elbow path so it approaches its
// orbit-bound endpoint perpendicular to the bound edge, avoiding the
// target box. end selects which extremity is bound; the endpoint itself
// (already resolved by the binding model) is kept. special endpoints sit
// exactly on the boundary and get no stand-off approach point.
func RouteOrbitEnd(pts []geometry.Point, end core.End, target *core.Element, anchor geometry.Point, strokeWidth float64, special bool) Routed {
	if len(pts) < 2 {
		return Routed{Points: pts, Auto: make([]bool, len(pts))}
	}
	if end == core.AtStart {
		r := RouteOrbitEnd(reversed(pts), core.AtEnd, target, anchor, strokeWidth, special)
		return Routed{Points: reversed(r.Points), Auto: reversedBools(r.Auto)}
	}

	box := WorldAABB(target)
	endpoint := pts[len(pts)-1]
	prev := pts[len(pts)-2]
	edge := BoundEdge(anchor, endpoint.Sub(prev))

	// Already perpendicular: a terminal segment along the edge normal,
	// arriving from outside the box, needs no rework.
	if terminalPerpendicular(prev, endpoint, edge) && !box.ContainsStrict(prev) {
		return Routed{Points: pts, Auto: make([]bool, len(pts))}
	}

	// Walk backward past points strictly inside the target box.
	keep := len(pts) - 2
	for keep > 0 && box.ContainsStrict(pts[keep]) {
		keep--
	}
	retained := pts[keep]

	standoff := Standoff(strokeWidth)
	if special {
		standoff = 0
	}
	approach := endpoint.Add(edge.Normal().Scale(standoff))

	var mid []geometry.Point
	switch {
	case sameCoord(retained, approach, edge) && segmentClear(retained, approach, box):
		// Dogleg degenerates to a straight run.
	case doglegClear(retained, approach, box, edge, true):
		mid = []geometry.Point{doglegCorner(retained, approach, edge, true)}
	case doglegClear(retained, approach, box, edge, false):
		mid = []geometry.Point{doglegCorner(retained, approach, edge, false)}
	default:
		mid = detour(retained, approach, box.Inflate(standoff), edge)
	}

	out := append([]geometry.Point{}, pts[:keep+1]...)
	auto := make([]bool, keep+1)
	for _, p := range mid {
		out = append(out, p)
		auto = append(auto, true)
	}
	if standoff > 0 {
		out = append(out, approach)
		auto = append(auto, true)
	}
	out = append(out, endpoint)
	auto = append(auto, false)

	return clean(Routed{Points: out, Auto: auto})
}

// terminalPerpendicular reports whether the segment prev→tip runs along
// the edge normal toward the edge.
func terminalPerpendicular(prev, tip geometry.Point, edge Edge) bool {
	n := edge.Normal()
	d := tip.Sub(prev)
	if edge.Horizontal() {
		// Normal is vertical: the segment must be vertical and travel
		// against the outward normal (into the edge).
		return d.X == 0 && d.Y*n.Y < 0
	}
	return d.Y == 0 && d.X*n.X < 0
}

// sameCoord reports whether a straight axis run from a to b already
// matches the approach axis for the edge.
func sameCoord(a, b geometry.Point, edge Edge) bool {
	if edge.Horizontal() {
		return a.X == b.X
	}
	return a.Y == b.Y
}

// doglegCorner returns the turning point of the simple two-leg route
// from a to b. firstPreferred chooses the edge-appropriate order: for a
// horizontal (top/bottom) edge the preferred route arrives vertically.
func doglegCorner(a, b geometry.Point, edge Edge, preferred bool) geometry.Point {
	arriveVertical := edge.Horizontal()
	if !preferred {
		arriveVertical = !arriveVertical
	}
	if arriveVertical {
		// Travel horizontally first, then drop vertically into b.
		return geometry.Point{X: b.X, Y: a.Y}
	}
	return geometry.Point{X: a.X, Y: b.Y}
}

// doglegClear reports whether the two-leg route avoids the box interior.
func doglegClear(a, b geometry.Point, box geometry.Rect, edge Edge, preferred bool) bool {
	c := doglegCorner(a, b, edge, preferred)
	return segmentClear(a, c, box) && segmentClear(c, b, box)
}

// segmentClear reports whether the axis-aligned segment ab stays out of
// the strict interior of box.
func segmentClear(a, b geometry.Point, box geometry.Rect) bool {
	if a.X == b.X {
		if a.X <= box.MinX || a.X >= box.MaxX {
			return true
		}
		lo, hi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		return hi <= box.MinY || lo >= box.MaxY
	}
	if a.Y <= box.MinY || a.Y >= box.MaxY {
		return true
	}
	lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
	return hi <= box.MinX || lo >= box.MaxX
}

// detour builds the interior points of a route from a to b around the
// inflated box, passing on the side away from the box interior.
func detour(a, b geometry.Point, box geometry.Rect, edge Edge) []geometry.Point {
	if edge.Horizontal() {
		// Arrive vertically at b: swing wide around the nearer vertical
		// side of the box.
		sideX := box.MinX
		if math.Abs(a.X-box.MaxX) < math.Abs(a.X-box.MinX) {
			sideX = box.MaxX
		}
		return []geometry.Point{
			{X: sideX, Y: a.Y},
			{X: sideX, Y: b.Y},
		}
	}
	sideY := box.MinY
	if math.Abs(a.Y-box.MaxY) < math.Abs(a.Y-box.MinY) {
		sideY = box.MaxY
	}
	return []geometry.Point{
		{X: a.X, Y: sideY},
		{X: b.X, Y: sideY},
	}
}

// Symmetrize centers the crossbar of a 4-point route at the true
// midpoint between both endpoints, for the classic case where the
// crossbar lies between them (the Z shape). C-shaped routes, whose
// crossbar sits beyond both endpoints, are left alone.
func Symmetrize(pts []geometry.Point) []geometry.Point {
	if len(pts) != 4 {
		return pts
	}
	p0, p1, p2, p3 := pts[0], pts[1], pts[2], pts[3]
	switch {
	case p0.X == p1.X && p2.X == p3.X && p1.Y == p2.Y:
		// Vertical legs, horizontal crossbar.
		mid := (p0.Y + p3.Y) / 2
		if between(p1.Y, p0.Y, p3.Y) {
			pts[1].Y, pts[2].Y = mid, mid
		}
	case p0.Y == p1.Y && p2.Y == p3.Y && p1.X == p2.X:
		// Horizontal legs, vertical crossbar.
		mid := (p0.X + p3.X) / 2
		if between(p1.X, p0.X, p3.X) {
			pts[1].X, pts[2].X = mid, mid
		}
	}
	return pts
}

func between(v, a, b float64) bool {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return v >= lo && v <= hi
}

// clean merges near-duplicate points and removes collinear interior
// points, keeping the Auto tags in step.
func clean(r Routed) Routed {
	if len(r.Points) <= 2 {
		return r
	}
	pts := []geometry.Point{r.Points[0]}
	auto := []bool{r.Auto[0]}
	for i := 1; i < len(r.Points); i++ {
		p := r.Points[i]
		if p.Near(pts[len(pts)-1], MergeTolerance) {
			// Keep the user-placed flavour when merging.
			if !r.Auto[i] {
				auto[len(auto)-1] = false
			}
			pts[len(pts)-1] = p
			continue
		}
		for len(pts) >= 2 {
			a, b := pts[len(pts)-2], pts[len(pts)-1]
			collinear := (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y)
			if collinear && auto[len(auto)-1] {
				pts = pts[:len(pts)-1]
				auto = auto[:len(auto)-1]
				continue
			}
			break
		}
		pts = append(pts, p)
		auto = append(auto, r.Auto[i])
	}
	return Routed{Points: pts, Auto: auto}
}

// ReconcileElbow runs the router for every orbit-bound end of an elbow
// arrow, re-applies pinned fixed segments whose indices survived, and
// returns the final orthogonal path. world is the arrow's current world
// point list; lookup resolves the bound targets.
func ReconcileElbow(el *core.Element, world []geometry.Point, lookup core.Lookup) []geometry.Point {
	arrow, ok := el.Data.(*core.ArrowData)
	if !ok {
		return world
	}
	pts := shape.ExpandElbow(world)

	if b := arrow.StartBinding; b != nil && b.Mode == core.BindOrbit {
		if target := lookup.Element(b.ElementID); target != nil {
			r := RouteOrbitEnd(pts, core.AtStart, target, b.Anchor, arrow.StrokeWidth, arrow.StartIsSpecial)
			pts = r.Points
		}
	}
	if b := arrow.EndBinding; b != nil && b.Mode == core.BindOrbit {
		if target := lookup.Element(b.ElementID); target != nil {
			r := RouteOrbitEnd(pts, core.AtEnd, target, b.Anchor, arrow.StrokeWidth, arrow.EndIsSpecial)
			pts = r.Points
		}
	}

	if arrow.StartBinding != nil && arrow.EndBinding != nil {
		pts = Symmetrize(pts)
	}

	// Pinned runs keep their coordinates where the path still has them.
	for _, fs := range arrow.FixedSegments {
		if fs.Index >= 1 && fs.Index < len(pts) {
			pts[fs.Index-1] = fs.Start
			pts[fs.Index] = fs.End
		}
	}
	return shape.SimplifyOrtho(pts)
}

func reversed(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func reversedBools(bs []bool) []bool {
	out := make([]bool, len(bs))
	for i, b := range bs {
		out[len(bs)-1-i] = b
	}
	return out
}
