// Package handles derives the editable control-point overlay of an
// arrow-like element: turning handles, insertable midpoints and loop
// markers, plus hit testing against them.
package handles

import (
	"math"
	"sort"

	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/shape"
)

// Kind classifies an overlay handle.
type Kind int

const (
	// Turning sits on a control point and drags it.
	Turning Kind = iota
	// Midpoint sits between two control points and inserts a new one.
	Midpoint
	// LoopInner and LoopOuter are the paired markers shown when the path
	// closes on itself, replacing the endpoint turning handles.
	LoopInner
	LoopOuter
)

// Handle radii are scaled from the caller's base tolerance but never
// shrink below the visual marker size.
const (
	minVisualRadius = 6.0
	turningScale    = 1.5
	midpointScale   = 1.0
	loopInnerScale  = 1.2
	loopOuterScale  = 2.0
)

// Handle is one editable marker in world space. Index is the control
// point index for Turning, the leading control point for Midpoint, and 0
// for loop handles.
type Handle struct {
	Kind  Kind
	Index int
	Pos   geometry.Point
}

// Overlay is the full editable-handle set of one element.
type Overlay struct {
	Handles []Handle
	// Loop is set when the endpoints were merged into a loop pair.
	Loop bool
}

// BuildOverlay derives the overlay for an element: one rotation-aware
// turning handle per control point, one midpoint handle per segment,
// and — when the first and last world points are within loopThreshold —
// a loop pair replacing the endpoint turning handles. Non-linear
// elements yield an empty overlay.
func BuildOverlay(el *core.Element, loopThreshold float64) Overlay {
	pts := shape.WorldPoints(el)
	if len(pts) < 2 {
		return Overlay{}
	}

	var o Overlay
	o.Loop = pts[0].DistanceTo(pts[len(pts)-1]) <= loopThreshold

	first, last := 0, len(pts)-1
	for i, p := range pts {
		if o.Loop && (i == first || i == last) {
			continue
		}
		o.Handles = append(o.Handles, Handle{Kind: Turning, Index: i, Pos: p})
	}
	for i := 0; i < len(pts)-1; i++ {
		o.Handles = append(o.Handles, Handle{
			Kind:  Midpoint,
			Index: i,
			Pos:   pts[i].Lerp(pts[i+1], 0.5),
		})
	}
	if o.Loop {
		center := pts[first].Lerp(pts[last], 0.5)
		o.Handles = append(o.Handles,
			Handle{Kind: LoopInner, Pos: center},
			Handle{Kind: LoopOuter, Pos: center},
		)
	}
	return o
}

// Radius returns the hit radius for a handle kind, scaled from tolerance
// with the visual-size floor.
func Radius(kind Kind, tolerance float64) float64 {
	var scale float64
	switch kind {
	case Turning:
		scale = turningScale
	case Midpoint:
		scale = midpointScale
	case LoopInner:
		scale = loopInnerScale
	default:
		scale = loopOuterScale
	}
	return math.Max(tolerance*scale, minVisualRadius)
}

// Hit returns the handle under p, if any. Turning handles are checked
// nearest-first so overlapping markers resolve to the closest one; loop
// handles are checked inner before outer; midpoints come last.
func (o Overlay) Hit(p geometry.Point, tolerance float64) (Handle, bool) {
	turning := make([]Handle, 0, len(o.Handles))
	var loops, mids []Handle
	for _, h := range o.Handles {
		switch h.Kind {
		case Turning:
			turning = append(turning, h)
		case LoopInner, LoopOuter:
			loops = append(loops, h)
		default:
			mids = append(mids, h)
		}
	}

	sort.SliceStable(turning, func(i, j int) bool {
		return p.DistanceTo(turning[i].Pos) < p.DistanceTo(turning[j].Pos)
	})
	for _, h := range turning {
		if p.DistanceTo(h.Pos) <= Radius(Turning, tolerance) {
			return h, true
		}
	}

	sort.SliceStable(loops, func(i, j int) bool {
		return loops[i].Kind == LoopInner && loops[j].Kind == LoopOuter
	})
	for _, h := range loops {
		if p.DistanceTo(h.Pos) <= Radius(h.Kind, tolerance) {
			return h, true
		}
	}

	for _, h := range mids {
		if p.DistanceTo(h.Pos) <= Radius(Midpoint, tolerance) {
			return h, true
		}
	}
	return Handle{}, false
}
