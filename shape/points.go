// Package shape derives drawable geometry from arrow-like elements: world
// point resolution, shaft construction per kind, arrowhead shapes and
// insets, exact bounds and elbow path expansion.
package shape

import (
	"arrowgeo/core"
	"arrowgeo/geometry"
)

// Resolve maps normalized [0,1] control points into rect-relative absolute
// coordinates. No rotation is applied; see WorldPoints for that.
func Resolve(rect geometry.Rect, norm []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(norm))
	w, h := rect.Width(), rect.Height()
	for i, p := range norm {
		out[i] = geometry.Point{
			X: rect.MinX + p.X*w,
			Y: rect.MinY + p.Y*h,
		}
	}
	return out
}

// Normalize is the inverse of Resolve. A degenerate (zero-size) axis
// maps every coordinate to 0.
func Normalize(rect geometry.Rect, abs []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(abs))
	w, h := rect.Width(), rect.Height()
	for i, p := range abs {
		var n geometry.Point
		if w != 0 {
			n.X = (p.X - rect.MinX) / w
		}
		if h != 0 {
			n.Y = (p.Y - rect.MinY) / h
		}
		out[i] = n
	}
	return out
}

// WorldPoints returns the element's control points in world space:
// resolved against the rect, then rotated about the rect center.
// Non-linear elements yield nil.
func WorldPoints(el *core.Element) []geometry.Point {
	l := el.Linear()
	if l == nil {
		return nil
	}
	pts := Resolve(el.Rect, l.NormPoints)
	space := el.Space()
	for i, p := range pts {
		pts[i] = space.ToWorld(p)
	}
	return pts
}

// NormalizeWorld maps world-space points back into the element's
// normalized coordinates.
func NormalizeWorld(el *core.Element, world []geometry.Point) []geometry.Point {
	space := el.Space()
	local := make([]geometry.Point, len(world))
	for i, p := range world {
		local[i] = space.FromWorld(p)
	}
	return Normalize(el.Rect, local)
}
