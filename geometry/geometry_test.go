package geometry

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"on segment", Point{5, 0}, Point{0, 0}, Point{10, 0}, 0},
		{"above middle", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{"past end", Point{13, 4}, Point{0, 0}, Point{10, 0}, 5},
		{"before start", Point{-3, -4}, Point{0, 0}, Point{10, 0}, 5},
		{"degenerate segment", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.p, tt.a, tt.b)
			if !Near(got, tt.want, Epsilon) {
				t.Errorf("DistanceToSegment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpaceRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		s := NewSpace(rng.Float64()*4*math.Pi-2*math.Pi, Point{rng.Float64() * 100, rng.Float64() * 100})
		p := Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		back := s.FromWorld(s.ToWorld(p))
		if !back.Near(p, 1e-9) {
			t.Fatalf("round trip moved %v to %v (theta=%v)", p, back, s.Theta)
		}
	}
}

func TestSpaceZeroThetaIsIdentity(t *testing.T) {
	s := NewSpace(0, Point{50, 50})
	p := Point{12.5, -7}
	if got := s.ToWorld(p); got != p {
		t.Errorf("ToWorld with theta=0 = %v, want %v", got, p)
	}
	if got := s.FromWorld(p); got != p {
		t.Errorf("FromWorld with theta=0 = %v, want %v", got, p)
	}
}

func TestSpaceKnownRotation(t *testing.T) {
	// Quarter turn about the origin maps (1,0) to (0,1).
	s := NewSpace(math.Pi/2, Point{})
	got := s.ToWorld(Point{1, 0})
	if !got.Near(Point{0, 1}, 1e-12) {
		t.Errorf("quarter turn = %v, want (0,1)", got)
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		r1, r2  float64 // NaN marks a missing root
	}{
		{"two roots", 1, -3, 2, 1, 2},
		{"double root", 1, -2, 1, 1, math.NaN()},
		{"no real roots", 1, 0, 1, math.NaN(), math.NaN()},
		{"linear", 0, 2, -4, 2, math.NaN()},
		{"constant", 0, 0, 1, math.NaN(), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1, t2 := SolveQuadratic(tt.a, tt.b, tt.c)
			if !sameRoot(t1, tt.r1) || !sameRoot(t2, tt.r2) {
				t.Errorf("SolveQuadratic(%v,%v,%v) = %v,%v want %v,%v",
					tt.a, tt.b, tt.c, t1, t2, tt.r1, tt.r2)
			}
		})
	}
}

func sameRoot(got, want float64) bool {
	if math.IsNaN(want) {
		return math.IsNaN(got)
	}
	return Near(got, want, 1e-9)
}

func TestCubicBoundsContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		c := Cubic{
			P0: Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100},
			C1: Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100},
			C2: Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100},
			P1: Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100},
		}
		b := c.Bounds()
		for j := 0; j <= 256; j++ {
			p := c.At(float64(j) / 256)
			if p.X < b.MinX-1e-9 || p.X > b.MaxX+1e-9 ||
				p.Y < b.MinY-1e-9 || p.Y > b.MaxY+1e-9 {
				t.Fatalf("case %d: sampled point %v escapes bounds %+v", i, p, b)
			}
		}
	}
}

func TestCubicBoundsOvershoot(t *testing.T) {
	// A curve whose control points pull it above the chord must report
	// bounds taller than the endpoint box.
	c := Cubic{P0: Point{0, 0}, C1: Point{0, 100}, C2: Point{100, 100}, P1: Point{100, 0}}
	b := c.Bounds()
	if b.MaxY <= 0 {
		t.Fatalf("bounds %+v do not include curve overshoot", b)
	}
	if b.MaxY > 100 {
		t.Fatalf("bounds %+v exceed the control hull", b)
	}
}

func TestCubicFlattenBudget(t *testing.T) {
	c := Cubic{P0: Point{0, 0}, C1: Point{0, 1000}, C2: Point{1000, 1000}, P1: Point{1000, 0}}
	pts := c.Flatten([]Point{c.P0}, 1e-6, 32)
	if len(pts) > 33 {
		t.Errorf("flatten produced %d points, budget 32", len(pts))
	}
	if pts[len(pts)-1] != c.P1 && len(pts) < 32 {
		t.Errorf("flatten under budget should end at P1, got %v", pts[len(pts)-1])
	}
}

func TestCatmullRomCubicsEndpoints(t *testing.T) {
	pts := []Point{{0, 0}, {50, 30}, {100, 0}, {150, 40}}
	cubics := CatmullRomCubics(pts)
	if len(cubics) != 3 {
		t.Fatalf("got %d cubics, want 3", len(cubics))
	}
	for i, c := range cubics {
		if !c.P0.Equals(pts[i]) || !c.P1.Equals(pts[i+1]) {
			t.Errorf("segment %d spans %v..%v, want %v..%v", i, c.P0, c.P1, pts[i], pts[i+1])
		}
	}
	if got := CatmullRomCubics(pts[:1]); got != nil {
		t.Errorf("single point should yield nil, got %v", got)
	}
}

func TestRectEdgeDepth(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"center", Point{50, 25}, 25},
		{"near left edge", Point{5, 25}, 5},
		{"outside right", Point{110, 25}, -10},
		{"outside corner", Point{103, 54}, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.EdgeDepth(tt.p); !Near(got, tt.want, 1e-9) {
				t.Errorf("EdgeDepth(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestNearestBoundaryPoint(t *testing.T) {
	r := NewRect(0, 0, 100, 50)
	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"outside left", Point{-10, 25}, Point{0, 25}},
		{"inside near top", Point{50, 5}, Point{50, 0}},
		{"outside corner", Point{110, 60}, Point{100, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.NearestBoundaryPoint(tt.p); !got.Near(tt.want, 1e-9) {
				t.Errorf("NearestBoundaryPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
