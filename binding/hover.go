package binding

import (
	"math"

	"arrowgeo/core"
	"arrowgeo/geometry"
)

// HysteresisFactor scales the currently bound target's distance score so
// small pointer moves don't flip an existing binding to a rival target.
const HysteresisFactor = 0.7

// Candidate is a potential binding target with its z-order (higher is
// closer to the viewer).
type Candidate struct {
	Element *core.Element
	Z       int
}

// Hover is a classified pointer position against one target.
type Hover struct {
	Target *core.Element
	Mode   core.BindingMode
	Anchor geometry.Point // normalized within the target rect
	Score  float64        // lower is better
}

// ClassifyHover decides whether a pointer position binds to el and how.
// A pointer strictly inside binds inside, but only when it is buried
// deeper than a snap-proportional threshold or the reference point is
// also inside (otherwise a grab near the edge means orbit). A pointer
// within snap distance of the boundary binds orbit. Anything else does
// not bind.
func ClassifyHover(pointer, reference geometry.Point, el *core.Element, snap float64) (Hover, bool) {
	space := el.Space()
	p := space.FromWorld(pointer)
	depth := el.Rect.EdgeDepth(p)

	anchor := normalizedIn(el.Rect, p)

	if depth > 0 {
		refInside := el.Rect.Contains(space.FromWorld(reference))
		if depth > snap*2 || refInside {
			return Hover{Target: el, Mode: core.BindInside, Anchor: anchor, Score: 0}, true
		}
		return Hover{Target: el, Mode: core.BindOrbit, Anchor: anchor, Score: depth}, true
	}
	if -depth <= snap {
		return Hover{Target: el, Mode: core.BindOrbit, Anchor: anchor, Score: -depth}, true
	}
	return Hover{}, false
}

// PickTarget classifies the pointer against every candidate and returns
// the best hover: lowest score, with hysteresis favouring the currently
// bound target and ties broken by highest z-order.
func PickTarget(pointer, reference geometry.Point, candidates []Candidate, current core.ID, snap float64) (Hover, bool) {
	var best Hover
	bestScore := math.Inf(1)
	bestZ := -1
	found := false

	for _, c := range candidates {
		h, ok := ClassifyHover(pointer, reference, c.Element, snap)
		if !ok {
			continue
		}
		score := h.Score
		if c.Element.ID == current && current != "" {
			score *= HysteresisFactor
		}
		if !found || score < bestScore || (score == bestScore && c.Z > bestZ) {
			best, bestScore, bestZ = h, score, c.Z
			found = true
		}
	}
	return best, found
}

func normalizedIn(r geometry.Rect, p geometry.Point) geometry.Point {
	var n geometry.Point
	if w := r.Width(); w != 0 {
		n.X = geometry.Clamp01((p.X - r.MinX) / w)
	}
	if h := r.Height(); h != 0 {
		n.Y = geometry.Clamp01((p.Y - r.MinY) / h)
	}
	return n
}
