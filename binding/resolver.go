package binding

import (
	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/routing"
	"arrowgeo/shape"
)

// MaxFixedPointPasses bounds the relaxation loop used when both ends of
// an arrow are bound and must settle against each other's updated
// position. Convergence beyond two passes is best-effort.
const MaxFixedPointPasses = 4

// settleTolerance is the endpoint movement below which the dual-bound
// relaxation stops early.
const settleTolerance = 1e-6

// targetPair is an arrow's bound target ids, "" when an end is unbound.
// It is the cheap change-detection snapshot behind the inverted index.
type targetPair struct {
	start, end core.ID
}

// Resolver maintains the binding index (target id → arrows bound to it)
// and recomputes the endpoints of arrows affected by a change batch. The
// index is derived state: it can be rebuilt from the document at any
// time, and a non-monotonic version history must Invalidate it.
type Resolver struct {
	index    map[core.ID]map[core.ID]struct{}
	snapshot map[core.ID]targetPair
	version  uint64
	valid    bool
}

// NewResolver returns an empty resolver; the first Resolve call builds
// the index.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Invalidate discards the index so the next Resolve rebuilds it in full.
// Required after undo/redo or any other non-monotonic version jump.
func (r *Resolver) Invalidate() {
	r.index = nil
	r.snapshot = nil
	r.valid = false
}

// Resolve recomputes the bound endpoints of every arrow affected by the
// changed element ids, reading elements from base with overlay elements
// shadowing them. It returns replacement elements for the arrows whose
// geometry actually changed; unrelated and unchanged arrows never appear.
// version is the document's monotonic element version: a regression or a
// jump of more than one triggers a full index rebuild, otherwise the
// index is updated incrementally from the changed set.
func (r *Resolver) Resolve(base, overlay []*core.Element, changed []core.ID, version uint64) map[core.ID]*core.Element {
	lookup, order := mergeElements(base, overlay)

	if !r.valid || version < r.version || version > r.version+1 {
		r.rebuild(order)
	} else {
		for _, id := range changed {
			r.reindex(id, lookup)
		}
	}
	r.version = version
	r.valid = true

	changedSet := make(map[core.ID]bool, len(changed))
	for _, id := range changed {
		changedSet[id] = true
	}

	// Union of the inverted index over the changed ids.
	candidates := make(map[core.ID]bool)
	for _, id := range changed {
		for arrowID := range r.index[id] {
			candidates[arrowID] = true
		}
	}

	result := make(map[core.ID]*core.Element)
	for arrowID := range candidates {
		if updated := r.updateArrow(arrowID, lookup, changedSet); updated != nil {
			result[arrowID] = updated
		}
	}
	return result
}

// rebuild reconstructs the whole index from the merged element list.
func (r *Resolver) rebuild(all []*core.Element) {
	r.index = make(map[core.ID]map[core.ID]struct{})
	r.snapshot = make(map[core.ID]targetPair)
	for _, el := range all {
		pair := targetsOf(el)
		if pair == (targetPair{}) {
			continue
		}
		r.snapshot[el.ID] = pair
		r.addEntries(el.ID, pair)
	}
}

// reindex refreshes one element's inverted entries, skipping when its
// target pair is unchanged and pruning buckets that empty out.
func (r *Resolver) reindex(id core.ID, lookup core.Lookup) {
	var pair targetPair
	if el := lookup.Element(id); el != nil {
		pair = targetsOf(el)
	}
	old, had := r.snapshot[id]
	if had && old == pair {
		return
	}
	if had {
		r.removeEntries(id, old)
	}
	if pair == (targetPair{}) {
		delete(r.snapshot, id)
		return
	}
	r.snapshot[id] = pair
	r.addEntries(id, pair)
}

func (r *Resolver) addEntries(arrowID core.ID, pair targetPair) {
	for _, t := range [2]core.ID{pair.start, pair.end} {
		if t == "" {
			continue
		}
		bucket := r.index[t]
		if bucket == nil {
			bucket = make(map[core.ID]struct{})
			r.index[t] = bucket
		}
		bucket[arrowID] = struct{}{}
	}
}

func (r *Resolver) removeEntries(arrowID core.ID, pair targetPair) {
	for _, t := range [2]core.ID{pair.start, pair.end} {
		if t == "" {
			continue
		}
		if bucket := r.index[t]; bucket != nil {
			delete(bucket, arrowID)
			if len(bucket) == 0 {
				delete(r.index, t)
			}
		}
	}
}

// updateArrow recomputes the endpoints of one candidate arrow. Returns
// nil when nothing needed recomputing or the result is identical.
func (r *Resolver) updateArrow(arrowID core.ID, lookup core.Lookup, changed map[core.ID]bool) *core.Element {
	el := lookup.Element(arrowID)
	if el == nil {
		return nil
	}
	l := el.Linear()
	if l == nil || len(l.NormPoints) < 2 {
		return nil
	}

	needsStart := l.StartBinding != nil && changed[l.StartBinding.ElementID]
	needsEnd := l.EndBinding != nil && changed[l.EndBinding.ElementID]
	if !needsStart && !needsEnd {
		return nil
	}
	// Dual-bound consistency: when both ends are bound and either needs
	// updating, both are recomputed together so each settles against the
	// other's new position.
	if l.StartBinding != nil && l.EndBinding != nil {
		needsStart, needsEnd = true, true
	}

	updated := el.Clone()
	ul := updated.Linear()
	world := shape.WorldPoints(updated)

	passes := 1
	if needsStart && needsEnd {
		passes = MaxFixedPointPasses
	}
	for pass := 0; pass < passes; pass++ {
		var moved float64
		if needsStart {
			if target := lookup.Element(ul.StartBinding.ElementID); target != nil {
				next := ResolveBoundPoint(ul.StartBinding, target, world[1])
				moved += next.DistanceTo(world[0])
				world[0] = next
			}
		}
		if needsEnd {
			if target := lookup.Element(ul.EndBinding.ElementID); target != nil {
				next := ResolveBoundPoint(ul.EndBinding, target, world[len(world)-2])
				moved += next.DistanceTo(world[len(world)-1])
				world[len(world)-1] = next
			}
		}
		if moved <= settleTolerance {
			break
		}
	}

	if ul.Kind == core.ShaftElbow {
		world = routing.ReconcileElbow(updated, world, lookup)
	}
	shape.RecentreElement(updated, world)

	if sameRect(updated.Rect, el.Rect) && samePoints(ul.NormPoints, l.NormPoints) {
		return nil
	}
	return updated
}

func sameRect(a, b geometry.Rect) bool {
	return geometry.Near(a.MinX, b.MinX, settleTolerance) &&
		geometry.Near(a.MinY, b.MinY, settleTolerance) &&
		geometry.Near(a.MaxX, b.MaxX, settleTolerance) &&
		geometry.Near(a.MaxY, b.MaxY, settleTolerance)
}

// targetsOf returns an element's bound target ids, or the zero pair for
// elements without bindings.
func targetsOf(el *core.Element) targetPair {
	l := el.Linear()
	if l == nil {
		return targetPair{}
	}
	var pair targetPair
	if l.StartBinding != nil {
		pair.start = l.StartBinding.ElementID
	}
	if l.EndBinding != nil {
		pair.end = l.EndBinding.ElementID
	}
	return pair
}

// mergeElements layers overlay over base, preserving base z-order and
// appending overlay-only elements.
func mergeElements(base, overlay []*core.Element) (core.MapLookup, []*core.Element) {
	lookup := make(core.MapLookup, len(base)+len(overlay))
	order := make([]*core.Element, 0, len(base)+len(overlay))
	for _, el := range base {
		lookup[el.ID] = el
		order = append(order, el)
	}
	for _, el := range overlay {
		if _, ok := lookup[el.ID]; ok {
			for i, existing := range order {
				if existing.ID == el.ID {
					order[i] = el
					break
				}
			}
		} else {
			order = append(order, el)
		}
		lookup[el.ID] = el
	}
	return lookup, order
}

func samePoints(a, b []geometry.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Near(b[i], settleTolerance) {
			return false
		}
	}
	return true
}
