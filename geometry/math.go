package geometry

import "math"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the unit interval.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Near reports whether a and b differ by no more than tol.
func Near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// IsHorizontal returns true if the segment ab is more horizontal
// than vertical. Exactly diagonal segments count as horizontal.
func IsHorizontal(a, b Point) bool {
	return math.Abs(b.X-a.X) >= math.Abs(b.Y-a.Y)
}

// SolveQuadratic returns the real roots of a*t² + b*t + c = 0.
// Missing roots are NaN; when a is zero the linear root is returned
// as t1. A double root is reported once, in t1.
func SolveQuadratic(a, b, c float64) (t1, t2 float64) {
	t1, t2 = math.NaN(), math.NaN()
	if a == 0 {
		if b != 0 {
			t1 = -c / b
		}
		return t1, t2
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return t1, t2
	}
	if disc == 0 {
		return -b / (2 * a), t2
	}
	// Numerically stable form: avoid cancellation between -b and sqrt.
	q := -(b + math.Copysign(math.Sqrt(disc), b)) / 2
	t1 = q / a
	t2 = c / q
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2
}
