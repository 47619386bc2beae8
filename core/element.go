// Package core contains the fundamental types used throughout the arrow
// engine: elements, their type-specific payloads, bindings and the document
// interfaces the engine consumes.
package core

import (
	"arrowgeo/geometry"
)

// ID uniquely identifies an element within a document.
type ID string

// Element is a positioned item in the document. Rect is the element's
// local-space box; Angle is the rotation about the rect's center.
type Element struct {
	ID      ID      `json:"id"`
	Rect    geometry.Rect
	Angle   float64 `json:"angle,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Data    Data    `json:"-"` // marshalled by the element codec
}

// Space returns the element's rotation space (about the rect center).
func (e *Element) Space() geometry.Space {
	return geometry.NewSpace(e.Angle, e.Rect.Center())
}

// Linear returns the element's linear payload, or nil if the element is
// not arrow-like.
func (e *Element) Linear() *LinearData {
	if l, ok := e.Data.(LinearPayload); ok {
		return l.Linear()
	}
	return nil
}

// StrokeWidth returns the payload's stroke width, or 0 for payloads
// without one.
func (e *Element) StrokeWidth() float64 {
	switch d := e.Data.(type) {
	case LinearPayload:
		return d.Linear().StrokeWidth
	case *BoxData:
		return d.StrokeWidth
	}
	return 0
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	c := *e
	if e.Data != nil {
		c.Data = e.Data.clone()
	}
	return &c
}

// Lookup resolves element ids to live elements. Implementations return
// nil for unknown ids.
type Lookup interface {
	Element(id ID) *Element
}

// Document exposes the element set and a monotonic version counter that
// advances on every mutation batch. Non-monotonic histories (undo/redo)
// must invalidate derived state explicitly instead.
type Document interface {
	Elements() []*Element
	ElementsVersion() uint64
}

// MapLookup is a Lookup over a plain map.
type MapLookup map[ID]*Element

// Element returns the element with the given id, or nil.
func (m MapLookup) Element(id ID) *Element {
	return m[id]
}

// LayeredLookup consults overlay first, then base. It is how the resolver
// sees in-progress replacements on top of the committed document.
type LayeredLookup struct {
	Base    Lookup
	Overlay Lookup
}

// Element returns the overlay's element if present, else the base's.
func (l LayeredLookup) Element(id ID) *Element {
	if l.Overlay != nil {
		if el := l.Overlay.Element(id); el != nil {
			return el
		}
	}
	if l.Base == nil {
		return nil
	}
	return l.Base.Element(id)
}
