package geometry

import "math"

// Space converts between an element's local (unrotated) frame and world
// space. Rotation is about Origin, which callers set to the rect center.
// The zero Space is the identity.
type Space struct {
	Theta  float64
	Origin Point
}

// NewSpace returns the rotation space for angle theta about origin.
func NewSpace(theta float64, origin Point) Space {
	return Space{Theta: theta, Origin: origin}
}

// ToWorld maps a local-frame point into world space.
func (s Space) ToWorld(p Point) Point {
	if s.Theta == 0 {
		return p
	}
	sin, cos := math.Sincos(s.Theta)
	dx := p.X - s.Origin.X
	dy := p.Y - s.Origin.Y
	return Point{
		X: s.Origin.X + dx*cos - dy*sin,
		Y: s.Origin.Y + dx*sin + dy*cos,
	}
}

// FromWorld maps a world-space point into the local frame.
func (s Space) FromWorld(p Point) Point {
	if s.Theta == 0 {
		return p
	}
	sin, cos := math.Sincos(-s.Theta)
	dx := p.X - s.Origin.X
	dy := p.Y - s.Origin.Y
	return Point{
		X: s.Origin.X + dx*cos - dy*sin,
		Y: s.Origin.Y + dx*sin + dy*cos,
	}
}

// RotateVec rotates a direction vector into world orientation,
// ignoring translation.
func (s Space) RotateVec(v Point) Point {
	if s.Theta == 0 {
		return v
	}
	sin, cos := math.Sincos(s.Theta)
	return Point{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// UnrotateVec rotates a world direction vector back into local orientation.
func (s Space) UnrotateVec(v Point) Point {
	if s.Theta == 0 {
		return v
	}
	sin, cos := math.Sincos(-s.Theta)
	return Point{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
