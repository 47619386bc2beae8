package shape

import (
	"math"

	"arrowgeo/geometry"
)

// SnapTolerance is the distance within which nearly aligned elbow
// segments are snapped to exact alignment.
const SnapTolerance = 1.0

// ExpandElbow turns an arbitrary point sequence into a fully orthogonal
// one. Two points synthesize a 4-point H or Z route, the first axis being
// whichever of |dx|/|dy| is larger; longer sequences are routed segment by
// segment, continuing the previous axis where possible. The result is
// simplified: collinear interior points removed, near-aligned runs snapped.
func ExpandElbow(pts []geometry.Point) []geometry.Point {
	if len(pts) < 2 {
		return pts
	}
	if len(pts) == 2 {
		return SimplifyOrtho(expandPair(pts[0], pts[1]))
	}

	out := []geometry.Point{pts[0]}
	// Axis of the leg that arrived at the previous point; seeded from the
	// dominant axis of the first hop.
	horizontal := geometry.IsHorizontal(pts[0], pts[1])
	for i := 0; i < len(pts)-1; i++ {
		a, b := out[len(out)-1], pts[i+1]
		switch {
		case a.X == b.X:
			horizontal = false
			out = append(out, b)
		case a.Y == b.Y:
			horizontal = true
			out = append(out, b)
		case horizontal:
			// Continue horizontally, then turn.
			out = append(out, geometry.Point{X: b.X, Y: a.Y}, b)
			horizontal = false
		default:
			out = append(out, geometry.Point{X: a.X, Y: b.Y}, b)
			horizontal = true
		}
	}
	return SimplifyOrtho(out)
}

// expandPair builds the canonical 4-point route between two points.
func expandPair(a, b geometry.Point) []geometry.Point {
	if a == b {
		return []geometry.Point{a, b}
	}
	if a.X == b.X || a.Y == b.Y {
		return []geometry.Point{a, b}
	}
	if geometry.IsHorizontal(a, b) {
		midX := (a.X + b.X) / 2
		return []geometry.Point{a, {X: midX, Y: a.Y}, {X: midX, Y: b.Y}, b}
	}
	midY := (a.Y + b.Y) / 2
	return []geometry.Point{a, {X: a.X, Y: midY}, {X: b.X, Y: midY}, b}
}

// SimplifyOrtho cleans an orthogonal point sequence: segments within
// SnapTolerance of axis alignment are snapped exact, duplicate and
// collinear interior points are removed. Endpoints are never moved.
func SimplifyOrtho(pts []geometry.Point) []geometry.Point {
	if len(pts) <= 2 {
		return pts
	}
	snapped := append([]geometry.Point(nil), pts...)
	// Snap interior points toward their predecessor; the endpoints stay.
	for i := 1; i < len(snapped)-1; i++ {
		prev := snapped[i-1]
		if d := math.Abs(snapped[i].X - prev.X); d > 0 && d <= SnapTolerance {
			snapped[i].X = prev.X
		}
		if d := math.Abs(snapped[i].Y - prev.Y); d > 0 && d <= SnapTolerance {
			snapped[i].Y = prev.Y
		}
	}

	out := snapped[:1]
	for i := 1; i < len(snapped); i++ {
		p := snapped[i]
		if p == out[len(out)-1] && i != len(snapped)-1 {
			continue
		}
		// Drop the middle of three collinear points.
		for len(out) >= 2 {
			a, b := out[len(out)-2], out[len(out)-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				out = out[:len(out)-1]
				continue
			}
			break
		}
		out = append(out, p)
	}
	return out
}

// IsOrthogonal reports whether every segment of the path is axis-aligned.
func IsOrthogonal(pts []geometry.Point) bool {
	for i := 0; i < len(pts)-1; i++ {
		if pts[i].X != pts[i+1].X && pts[i].Y != pts[i+1].Y {
			return false
		}
	}
	return true
}
