package geometry

import "math"

// Rect is an axis-aligned box. Min and Max are inclusive corners;
// a Rect with MinX==MaxX or MinY==MaxY is degenerate but valid.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect returns the rect spanning (x, y) to (x+w, y+h).
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsStrict reports whether p lies strictly inside r.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Y > r.MinY && p.Y < r.MaxY
}

// Inflate returns r grown by d on every side. Negative d shrinks.
func (r Rect) Inflate(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// ExpandToContain returns r grown just enough to contain p.
func (r Rect) ExpandToContain(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// EdgeDepth returns the distance from p to the nearest edge of r.
// Positive inside, negative outside (by the separating-axis distance).
func (r Rect) EdgeDepth(p Point) float64 {
	if r.Contains(p) {
		return math.Min(
			math.Min(p.X-r.MinX, r.MaxX-p.X),
			math.Min(p.Y-r.MinY, r.MaxY-p.Y),
		)
	}
	dx := math.Max(math.Max(r.MinX-p.X, 0), p.X-r.MaxX)
	dy := math.Max(math.Max(r.MinY-p.Y, 0), p.Y-r.MaxY)
	return -math.Hypot(dx, dy)
}

// NearestBoundaryPoint returns the point on the boundary of r closest to p.
func (r Rect) NearestBoundaryPoint(p Point) Point {
	if !r.Contains(p) {
		return Point{
			X: math.Min(math.Max(p.X, r.MinX), r.MaxX),
			Y: math.Min(math.Max(p.Y, r.MinY), r.MaxY),
		}
	}
	// Inside: project to the nearest edge.
	best := Point{r.MinX, p.Y}
	bestD := p.X - r.MinX
	if d := r.MaxX - p.X; d < bestD {
		best, bestD = Point{r.MaxX, p.Y}, d
	}
	if d := p.Y - r.MinY; d < bestD {
		best, bestD = Point{p.X, r.MinY}, d
	}
	if d := r.MaxY - p.Y; d < bestD {
		best = Point{p.X, r.MaxY}
	}
	return best
}

// BoundsOf returns the tight axis-aligned bounds of pts.
// An empty slice yields the zero Rect.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r = r.ExpandToContain(p)
	}
	return r
}
