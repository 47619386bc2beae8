package geometry

import "math"

// Cubic is a cubic Bézier segment.
type Cubic struct {
	P0, C1, C2, P1 Point
}

// At evaluates the curve at parameter t in [0, 1].
func (c Cubic) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.C1.X + d*c.C2.X + e*c.P1.X,
		Y: a*c.P0.Y + b*c.C1.Y + d*c.C2.Y + e*c.P1.Y,
	}
}

// Bounds returns the exact bounding box of the curve. Extrema are found
// analytically from the roots of the derivative, so the result is free of
// sampling error.
func (c Cubic) Bounds() Rect {
	r := Rect{MinX: c.P0.X, MinY: c.P0.Y, MaxX: c.P0.X, MaxY: c.P0.Y}
	r = r.ExpandToContain(c.P1)

	// x'(t) and y'(t) are quadratics in t; fold in any roots inside (0,1).
	a := -c.P0.X + 3*c.C1.X - 3*c.C2.X + c.P1.X
	b := 2*c.P0.X - 4*c.C1.X + 2*c.C2.X
	d := -c.P0.X + c.C1.X
	t1, t2 := SolveQuadratic(a, b, d)
	if !math.IsNaN(t1) && t1 > 0 && t1 < 1 {
		r = r.ExpandToContain(c.At(t1))
	}
	if !math.IsNaN(t2) && t2 > 0 && t2 < 1 {
		r = r.ExpandToContain(c.At(t2))
	}

	a = -c.P0.Y + 3*c.C1.Y - 3*c.C2.Y + c.P1.Y
	b = 2*c.P0.Y - 4*c.C1.Y + 2*c.C2.Y
	d = -c.P0.Y + c.C1.Y
	t1, t2 = SolveQuadratic(a, b, d)
	if !math.IsNaN(t1) && t1 > 0 && t1 < 1 {
		r = r.ExpandToContain(c.At(t1))
	}
	if !math.IsNaN(t2) && t2 > 0 && t2 < 1 {
		r = r.ExpandToContain(c.At(t2))
	}
	return r
}

// Split subdivides the curve at t using de Casteljau, returning the two halves.
func (c Cubic) Split(t float64) (Cubic, Cubic) {
	p01 := c.P0.Lerp(c.C1, t)
	p12 := c.C1.Lerp(c.C2, t)
	p23 := c.C2.Lerp(c.P1, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return Cubic{c.P0, p01, p012, mid}, Cubic{mid, p123, p23, c.P1}
}

// isFlat reports whether both control points lie within tol of the chord.
func (c Cubic) isFlat(tol float64) bool {
	return DistanceToSegment(c.C1, c.P0, c.P1) <= tol &&
		DistanceToSegment(c.C2, c.P0, c.P1) <= tol
}

// Flatten appends a polyline approximation of the curve to dst, excluding
// the start point (so consecutive segments chain without duplicates).
// Subdivision stops once a segment is flat within tol or dst reaches budget
// points; budget <= 0 means no cap.
func (c Cubic) Flatten(dst []Point, tol float64, budget int) []Point {
	if budget > 0 && len(dst) >= budget {
		return dst
	}
	if c.isFlat(tol) {
		return append(dst, c.P1)
	}
	left, right := c.Split(0.5)
	dst = left.Flatten(dst, tol, budget)
	return right.Flatten(dst, tol, budget)
}

// CatmullRomCubics converts a point sequence into the cubic Bézier segments
// of the Catmull-Rom spline through it, tension 1, with the missing
// neighbours at the path ends clamped to the endpoints. Fewer than two
// points yields nil; exactly two yields the straight segment as a cubic.
func CatmullRomCubics(pts []Point) []Cubic {
	if len(pts) < 2 {
		return nil
	}
	cubics := make([]Cubic, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		p1 := pts[i]
		p2 := pts[i+1]
		p0 := p1
		if i > 0 {
			p0 = pts[i-1]
		}
		p3 := p2
		if i+2 < len(pts) {
			p3 = pts[i+2]
		}
		cubics = append(cubics, Cubic{
			P0: p1,
			C1: p1.Add(p2.Sub(p0).Scale(1.0 / 6.0)),
			C2: p2.Sub(p3.Sub(p1).Scale(1.0 / 6.0)),
			P1: p2,
		})
	}
	return cubics
}
