package binding

import (
	"math"
	"testing"

	"arrowgeo/core"
	"arrowgeo/geometry"
)

func box(id core.ID, rect geometry.Rect) *core.Element {
	return &core.Element{ID: id, Rect: rect, Data: &core.BoxData{StrokeWidth: 2}}
}

func TestResolveInsideBinding(t *testing.T) {
	target := box("t", geometry.NewRect(100, 100, 40, 20))
	b := &core.Binding{ElementID: "t", Anchor: geometry.Point{X: 0.5, Y: 0.5}, Mode: core.BindInside}
	got := ResolveBoundPoint(b, target, geometry.Point{})
	want := geometry.Point{X: 120, Y: 110}
	if !got.Near(want, 1e-9) {
		t.Errorf("inside binding = %v, want %v", got, want)
	}
}

func TestResolveInsideBindingRotated(t *testing.T) {
	target := box("t", geometry.NewRect(0, 0, 40, 20))
	target.Angle = math.Pi / 2
	// Anchor at the local right-center rotates a quarter turn about (20,10).
	b := &core.Binding{ElementID: "t", Anchor: geometry.Point{X: 1, Y: 0.5}, Mode: core.BindInside}
	got := ResolveBoundPoint(b, target, geometry.Point{})
	want := geometry.Point{X: 20, Y: 30}
	if !got.Near(want, 1e-9) {
		t.Errorf("rotated inside binding = %v, want %v", got, want)
	}
}

func TestResolveOrbitBindingRayCrossing(t *testing.T) {
	// Reference to the left of the target: the ray toward the center
	// anchor crosses the gapped boundary on the left side.
	target := box("t", geometry.NewRect(100, 0, 40, 40))
	b := &core.Binding{ElementID: "t", Anchor: geometry.Point{X: 0.5, Y: 0.5}, Mode: core.BindOrbit, Gap: 4}
	got := ResolveBoundPoint(b, target, geometry.Point{X: 0, Y: 20})
	// Effective gap is 4 + strokeWidth/2 = 5, so the boundary sits at x=95.
	want := geometry.Point{X: 95, Y: 20}
	if !got.Near(want, 1e-9) {
		t.Errorf("orbit binding = %v, want %v", got, want)
	}
}

func TestResolveOrbitBindingReferenceInside(t *testing.T) {
	// A reference inside the target exits through the natural crossing.
	target := box("t", geometry.NewRect(0, 0, 40, 40))
	b := &core.Binding{ElementID: "t", Anchor: geometry.Point{X: 1, Y: 0.5}, Mode: core.BindOrbit}
	got := ResolveBoundPoint(b, target, geometry.Point{X: 20, Y: 20})
	want := geometry.Point{X: 41, Y: 20} // gap = strokeWidth/2 = 1
	if !got.Near(want, 1e-9) {
		t.Errorf("orbit from inside = %v, want %v", got, want)
	}
}

func TestResolveOrbitBindingFallback(t *testing.T) {
	// Reference coincides with the anchor point: no directed ray exists,
	// fall back to the nearest boundary point to the anchor.
	target := box("t", geometry.NewRect(0, 0, 40, 40))
	b := &core.Binding{ElementID: "t", Anchor: geometry.Point{X: 0.5, Y: 0.25}, Mode: core.BindOrbit}
	anchorAbs := geometry.Point{X: 20, Y: 10}
	got := ResolveBoundPoint(b, target, anchorAbs)
	want := geometry.Point{X: 20, Y: -1} // nearest edge is the top, gapped by 1
	if !got.Near(want, 1e-9) {
		t.Errorf("fallback = %v, want %v", got, want)
	}
}

func TestBindingIdempotence(t *testing.T) {
	target := box("t", geometry.NewRect(30, 40, 60, 25))
	target.Angle = 0.4
	b := &core.Binding{ElementID: "t", Anchor: geometry.Point{X: 0.8, Y: 0.2}, Mode: core.BindOrbit, Gap: 3}
	ref := geometry.Point{X: -10, Y: 5}
	first := ResolveBoundPoint(b, target, ref)
	second := ResolveBoundPoint(b, target, ref)
	if !first.Near(second, 1e-12) {
		t.Errorf("resolving twice differs: %v vs %v", first, second)
	}
}

func TestClassifyHover(t *testing.T) {
	el := box("t", geometry.NewRect(0, 0, 100, 100))
	outsideRef := geometry.Point{X: -100, Y: 50}
	tests := []struct {
		name     string
		pointer  geometry.Point
		ref      geometry.Point
		wantMode core.BindingMode
		wantOK   bool
	}{
		{"deep inside", geometry.Point{X: 50, Y: 50}, outsideRef, core.BindInside, true},
		{"inside near edge", geometry.Point{X: 3, Y: 50}, outsideRef, core.BindOrbit, true},
		{"inside near edge, ref inside", geometry.Point{X: 3, Y: 50}, geometry.Point{X: 50, Y: 50}, core.BindInside, true},
		{"just outside", geometry.Point{X: -4, Y: 50}, outsideRef, core.BindOrbit, true},
		{"far outside", geometry.Point{X: -50, Y: 50}, outsideRef, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := ClassifyHover(tt.pointer, tt.ref, el, 5)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && h.Mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", h.Mode, tt.wantMode)
			}
		})
	}
}

func TestPickTargetHysteresisAndZOrder(t *testing.T) {
	left := box("left", geometry.NewRect(0, 0, 100, 100))
	right := box("right", geometry.NewRect(104, 0, 100, 100))
	cands := []Candidate{{Element: left, Z: 0}, {Element: right, Z: 1}}
	ref := geometry.Point{X: -100, Y: 50}

	// Pointer equidistant from both boundaries: z-order breaks the tie.
	h, ok := PickTarget(geometry.Point{X: 102, Y: 50}, ref, cands, "", 5)
	if !ok || h.Target.ID != "right" {
		t.Fatalf("tie should go to higher z, got %+v ok=%v", h.Target, ok)
	}

	// Hysteresis keeps the current target despite the tie.
	h, ok = PickTarget(geometry.Point{X: 102, Y: 50}, ref, cands, "left", 5)
	if !ok || h.Target.ID != "left" {
		t.Fatalf("hysteresis should keep current target, got %v", h.Target.ID)
	}
}

func arrowBoundTo(id, target core.ID, rect geometry.Rect) *core.Element {
	return &core.Element{
		ID:   id,
		Rect: rect,
		Data: &core.ArrowData{
			LinearData: core.LinearData{
				NormPoints:  []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
				StrokeWidth: 1,
				StartBinding: &core.Binding{
					ElementID: target,
					Anchor:    geometry.Point{X: 0.5, Y: 0.5},
					Mode:      core.BindOrbit,
				},
			},
		},
	}
}

func TestResolveUpdatesBoundArrowOnly(t *testing.T) {
	a := box("A", geometry.NewRect(0, 0, 40, 40))
	c := box("C", geometry.NewRect(500, 500, 10, 10))
	arrow := arrowBoundTo("B", "A", geometry.NewRect(60, 60, 100, 100))
	base := []*core.Element{a, c, arrow}

	r := NewResolver()
	// Prime the index.
	r.Resolve(base, nil, nil, 1)

	// Move A and resolve the change.
	movedA := a.Clone()
	movedA.Rect = geometry.NewRect(10, 10, 40, 40)
	result := r.Resolve(base, []*core.Element{movedA}, []core.ID{"A"}, 2)

	updated, ok := result["B"]
	if !ok {
		t.Fatalf("bound arrow missing from result: %v", result)
	}
	if _, ok := result["C"]; ok {
		t.Error("unbound element C must never appear in the result")
	}
	if _, ok := result["A"]; ok {
		t.Error("the moved target itself is not a resolver output")
	}

	// The start point must equal the direct binding computation against
	// A's new state, referenced from the arrow's adjacent control point.
	l := arrow.Linear()
	refWorld := geometry.Point{X: 160, Y: 160} // second control point of B
	want := ResolveBoundPoint(l.StartBinding, movedA, refWorld)
	gotWorld := worldStart(updated)
	if !gotWorld.Near(want, 1e-6) {
		t.Errorf("start point = %v, want %v", gotWorld, want)
	}
}

func worldStart(el *core.Element) geometry.Point {
	l := el.Linear()
	p := l.NormPoints[0]
	local := geometry.Point{
		X: el.Rect.MinX + p.X*el.Rect.Width(),
		Y: el.Rect.MinY + p.Y*el.Rect.Height(),
	}
	return el.Space().ToWorld(local)
}

func TestResolveSkipsUnchangedArrows(t *testing.T) {
	a := box("A", geometry.NewRect(0, 0, 40, 40))
	arrow := arrowBoundTo("B", "A", geometry.NewRect(60, 60, 100, 100))
	base := []*core.Element{a, arrow}

	r := NewResolver()
	first := r.Resolve(base, nil, []core.ID{"A"}, 1)
	// Commit the settled arrow, then resolve the same state again: the
	// arrow no longer moves, so it is dropped from the result.
	if settled, ok := first["B"]; ok {
		base = []*core.Element{a, settled}
	}
	second := r.Resolve(base, nil, []core.ID{"A"}, 2)
	if _, ok := second["B"]; ok {
		t.Errorf("arrow with no net change should be dropped, got %v", second)
	}
}

func TestResolverIndexMaintenance(t *testing.T) {
	a := box("A", geometry.NewRect(0, 0, 40, 40))
	b := box("B", geometry.NewRect(200, 0, 40, 40))
	arrow := arrowBoundTo("X", "A", geometry.NewRect(60, 60, 100, 100))
	base := []*core.Element{a, b, arrow}

	r := NewResolver()
	r.Resolve(base, nil, nil, 1)
	if _, ok := r.index["A"]["X"]; !ok {
		t.Fatal("index missing A→X after build")
	}

	// Rebind the arrow from A to B; incremental update must move the
	// inverted entry and prune the empty bucket.
	rebound := arrow.Clone()
	rebound.Linear().StartBinding.ElementID = "B"
	r.Resolve(base, []*core.Element{rebound}, []core.ID{"X"}, 2)
	if _, ok := r.index["A"]; ok {
		t.Error("empty bucket A should be pruned")
	}
	if _, ok := r.index["B"]["X"]; !ok {
		t.Error("index missing B→X after rebind")
	}
}

func TestResolverVersionJumpRebuilds(t *testing.T) {
	a := box("A", geometry.NewRect(0, 0, 40, 40))
	arrow := arrowBoundTo("X", "A", geometry.NewRect(60, 60, 100, 100))
	base := []*core.Element{a, arrow}

	r := NewResolver()
	r.Resolve(base, nil, nil, 1)

	// A jump of more than one version wipes and rebuilds; an arrow added
	// in the gap is picked up even though it was never in changed ids.
	late := arrowBoundTo("Y", "A", geometry.NewRect(300, 300, 50, 50))
	base = append(base, late)
	result := r.Resolve(base, nil, []core.ID{"A"}, 5)
	if _, ok := result["Y"]; !ok {
		t.Error("rebuild after version jump should index the new arrow")
	}
}

func TestResolverInvalidate(t *testing.T) {
	a := box("A", geometry.NewRect(0, 0, 40, 40))
	arrow := arrowBoundTo("X", "A", geometry.NewRect(60, 60, 100, 100))
	base := []*core.Element{a, arrow}

	r := NewResolver()
	r.Resolve(base, nil, nil, 3)
	r.Invalidate()
	// Version regression after undo: with the explicit invalidation the
	// resolver rebuilds instead of trusting the stale index.
	result := r.Resolve(base, nil, []core.ID{"A"}, 1)
	if _, ok := result["X"]; !ok {
		t.Error("resolve after Invalidate should rebuild and find the arrow")
	}
}

func TestResolveDualBoundSettles(t *testing.T) {
	a := box("A", geometry.NewRect(0, 0, 40, 40))
	b := box("B", geometry.NewRect(200, 0, 40, 40))
	arrow := &core.Element{
		ID:   "X",
		Rect: geometry.NewRect(40, 10, 160, 20),
		Data: &core.ArrowData{
			LinearData: core.LinearData{
				NormPoints:   []geometry.Point{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}},
				StrokeWidth:  1,
				StartBinding: &core.Binding{ElementID: "A", Anchor: geometry.Point{X: 0.5, Y: 0.5}, Mode: core.BindOrbit},
				EndBinding:   &core.Binding{ElementID: "B", Anchor: geometry.Point{X: 0.5, Y: 0.5}, Mode: core.BindOrbit},
			},
		},
	}
	base := []*core.Element{a, b, arrow}
	r := NewResolver()
	r.Resolve(base, nil, nil, 1)

	movedB := b.Clone()
	movedB.Rect = geometry.NewRect(200, 100, 40, 40)
	result := r.Resolve(base, []*core.Element{movedB}, []core.ID{"B"}, 2)
	updated, ok := result["X"]
	if !ok {
		t.Fatal("dual-bound arrow missing from result")
	}

	// Both endpoints must sit on their targets' gapped boundaries.
	l := updated.Linear()
	pts := make([]geometry.Point, len(l.NormPoints))
	for i, p := range l.NormPoints {
		local := geometry.Point{
			X: updated.Rect.MinX + p.X*updated.Rect.Width(),
			Y: updated.Rect.MinY + p.Y*updated.Rect.Height(),
		}
		pts[i] = updated.Space().ToWorld(local)
	}
	gapA := a.Rect.Inflate(EffectiveGap(l.StartBinding, a))
	gapB := movedB.Rect.Inflate(EffectiveGap(l.EndBinding, movedB))
	if d := -gapA.EdgeDepth(pts[0]); math.Abs(gapA.EdgeDepth(pts[0])) > 1e-6 {
		t.Errorf("start point %v is %v off A's boundary", pts[0], d)
	}
	if d := -gapB.EdgeDepth(pts[len(pts)-1]); math.Abs(gapB.EdgeDepth(pts[len(pts)-1])) > 1e-6 {
		t.Errorf("end point %v is %v off B's boundary", pts[len(pts)-1], d)
	}
}
