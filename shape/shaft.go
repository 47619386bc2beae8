package shape

import (
	"arrowgeo/core"
	"arrowgeo/geometry"
)

// Curve flattening limits shared by rendering and hit testing.
const (
	// FlattenTolerance is the maximum distance between a flattened
	// segment and the true curve.
	FlattenTolerance = 0.25
	// MaxFlattenPoints caps the flattened point count per shaft so the
	// per-call cost stays predictable.
	MaxFlattenPoints = 120
)

// Shaft is the drawable path of an arrow-like element, in world space.
// Straight and elbow shafts are polylines in Points; curved shafts carry
// their cubic segments in Cubics with Points holding the spline knots.
type Shaft struct {
	Kind   core.ShaftKind
	Points []geometry.Point
	Cubics []geometry.Cubic
}

// BuildShaft derives the shaft for an element. Malformed input (missing
// payload, fewer than two usable points) degrades to a two-point
// degenerate path rather than failing; callers should check Length
// against their minimum before committing new geometry.
func BuildShaft(el *core.Element) Shaft {
	l := el.Linear()
	pts := WorldPoints(el)
	if len(pts) == 0 {
		p := el.Rect.Center()
		pts = []geometry.Point{p, p}
	} else if len(pts) == 1 {
		pts = []geometry.Point{pts[0], pts[0]}
	}
	kind := core.ShaftStraight
	if l != nil {
		kind = l.Kind
	}
	switch kind {
	case core.ShaftCurved:
		return Shaft{Kind: kind, Points: pts, Cubics: geometry.CatmullRomCubics(pts)}
	case core.ShaftElbow:
		return Shaft{Kind: kind, Points: ExpandElbow(pts)}
	default:
		return Shaft{Kind: core.ShaftStraight, Points: pts}
	}
}

// Start returns the first point of the shaft.
func (s Shaft) Start() geometry.Point {
	return s.Points[0]
}

// End returns the last point of the shaft.
func (s Shaft) End() geometry.Point {
	return s.Points[len(s.Points)-1]
}

// Length returns the total arc length of the shaft. Curved shafts use
// their flattened polyline.
func (s Shaft) Length() float64 {
	pts := s.Flattened()
	var total float64
	for i := 0; i < len(pts)-1; i++ {
		total += pts[i].DistanceTo(pts[i+1])
	}
	return total
}

// Flattened returns the shaft as a polyline. Straight and elbow shafts
// return their points as-is; curved shafts are adaptively flattened
// within FlattenTolerance, capped at MaxFlattenPoints.
func (s Shaft) Flattened() []geometry.Point {
	if s.Kind != core.ShaftCurved || len(s.Cubics) == 0 {
		return s.Points
	}
	out := make([]geometry.Point, 0, 32)
	out = append(out, s.Cubics[0].P0)
	for _, c := range s.Cubics {
		out = c.Flatten(out, FlattenTolerance, MaxFlattenPoints)
	}
	return out
}

// DirectionAt returns the unit direction of travel at one end, pointing
// outward (from the shaft toward the tip). sampleBack pulls the inner
// reference point that many units back along the path, so a head's
// orientation follows the curve near its base rather than the tip
// tangent; 0 samples the terminal segment.
func (s Shaft) DirectionAt(end core.End, sampleBack float64) geometry.Point {
	pts := s.Flattened()
	if len(pts) < 2 {
		return geometry.Point{X: 1, Y: 0}
	}
	if end == core.AtStart {
		// Walk forward from the start.
		tip := pts[0]
		inner := pointAlong(pts, sampleBack)
		d := tip.Sub(inner).Normalize()
		if d == (geometry.Point{}) {
			d = pts[0].Sub(pts[1]).Normalize()
		}
		return d
	}
	tip := pts[len(pts)-1]
	inner := pointAlong(reversed(pts), sampleBack)
	d := tip.Sub(inner).Normalize()
	if d == (geometry.Point{}) {
		d = pts[len(pts)-1].Sub(pts[len(pts)-2]).Normalize()
	}
	return d
}

// Trimmed returns the shaft polyline shortened by startInset and endInset
// units of arc length, measured from the respective tips. Insets that
// consume the whole path collapse it to its midpoint.
func (s Shaft) Trimmed(startInset, endInset float64) []geometry.Point {
	pts := s.Flattened()
	if startInset <= 0 && endInset <= 0 {
		return pts
	}
	total := s.Length()
	if startInset+endInset >= total {
		mid := pointAlong(pts, total/2)
		return []geometry.Point{mid, mid}
	}
	if startInset > 0 {
		pts = trimFront(pts, startInset)
	}
	if endInset > 0 {
		pts = reversed(trimFront(reversed(pts), endInset))
	}
	return pts
}

// pointAlong returns the point dist units of arc length from pts[0].
func pointAlong(pts []geometry.Point, dist float64) geometry.Point {
	if dist <= 0 || len(pts) < 2 {
		return pts[0]
	}
	for i := 0; i < len(pts)-1; i++ {
		seg := pts[i].DistanceTo(pts[i+1])
		if seg >= dist {
			if seg == 0 {
				return pts[i]
			}
			return pts[i].Lerp(pts[i+1], dist/seg)
		}
		dist -= seg
	}
	return pts[len(pts)-1]
}

// trimFront drops dist units of arc length from the front of pts.
func trimFront(pts []geometry.Point, dist float64) []geometry.Point {
	for i := 0; i < len(pts)-1; i++ {
		seg := pts[i].DistanceTo(pts[i+1])
		if seg >= dist {
			if seg == 0 {
				return pts[i:]
			}
			cut := pts[i].Lerp(pts[i+1], dist/seg)
			out := append([]geometry.Point{cut}, pts[i+1:]...)
			return out
		}
		dist -= seg
	}
	last := pts[len(pts)-1]
	return []geometry.Point{last, last}
}

func reversed(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
