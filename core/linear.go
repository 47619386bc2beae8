package core

import (
	"arrowgeo/geometry"
)

// ShaftKind selects how an arrow-like element's path is constructed.
type ShaftKind int

const (
	// ShaftStraight draws the control points as a polyline.
	ShaftStraight ShaftKind = iota
	// ShaftCurved draws a Catmull-Rom spline through the control points.
	ShaftCurved
	// ShaftElbow restricts the path to horizontal and vertical runs.
	ShaftElbow
)

// String returns the persisted name of the kind.
func (k ShaftKind) String() string {
	switch k {
	case ShaftCurved:
		return "curved"
	case ShaftElbow:
		return "elbow"
	default:
		return "straight"
	}
}

// Arrowhead is the decoration drawn at a path end.
type Arrowhead int

const (
	// HeadNone leaves an end bare.
	HeadNone Arrowhead = iota
	// HeadChevron is the classic open two-stroke arrow.
	HeadChevron
	// HeadTriangle is a filled triangle pointing along the path.
	HeadTriangle
	// HeadInvertedTriangle is a filled triangle pointing back at the shaft.
	HeadInvertedTriangle
	// HeadSquare is a filled quad aligned to the path direction.
	HeadSquare
	// HeadCircle is a filled disc centered behind the tip.
	HeadCircle
	// HeadDiamond is a filled rhombus.
	HeadDiamond
	// HeadBar is a single stroke crossing the path.
	HeadBar
)

// Closed reports whether the head is a closed (filled) style. Closed styles
// retract the shaft so it never shows through the fill.
func (a Arrowhead) Closed() bool {
	switch a {
	case HeadTriangle, HeadInvertedTriangle, HeadSquare, HeadCircle, HeadDiamond:
		return true
	}
	return false
}

// String returns the persisted name of the head style.
func (a Arrowhead) String() string {
	switch a {
	case HeadChevron:
		return "arrow"
	case HeadTriangle:
		return "triangle"
	case HeadInvertedTriangle:
		return "inverted-triangle"
	case HeadSquare:
		return "square"
	case HeadCircle:
		return "circle"
	case HeadDiamond:
		return "diamond"
	case HeadBar:
		return "bar"
	default:
		return "none"
	}
}

// StrokeStyle is the line style of a shaft.
type StrokeStyle int

const (
	// StrokeSolid is an unbroken line.
	StrokeSolid StrokeStyle = iota
	// StrokeDashed is a dashed line.
	StrokeDashed
	// StrokeDotted is a dotted line.
	StrokeDotted
)

// String returns the persisted name of the style.
func (s StrokeStyle) String() string {
	switch s {
	case StrokeDashed:
		return "dashed"
	case StrokeDotted:
		return "dotted"
	default:
		return "solid"
	}
}

// BindingMode says how a bound endpoint follows its target.
type BindingMode int

const (
	// BindInside pins the endpoint to the anchor inside the target.
	BindInside BindingMode = iota
	// BindOrbit keeps the endpoint on the target boundary, optionally
	// gapped, re-aimed toward the line's prior direction.
	BindOrbit
)

// String returns the persisted name of the mode.
func (m BindingMode) String() string {
	if m == BindOrbit {
		return "orbit"
	}
	return "inside"
}

// End selects one extremity of a linear path.
type End int

const (
	// AtStart is the first control point.
	AtStart End = iota
	// AtEnd is the last control point.
	AtEnd
)

// Binding anchors one end of an arrow-like element to a target element.
// Anchor is a normalized point in the target's local rect, clamped to
// [0,1]². Gap applies to orbit mode only.
type Binding struct {
	ElementID ID             `json:"elementId"`
	Anchor    geometry.Point `json:"anchor"`
	Mode      BindingMode    `json:"mode"`
	Gap       float64        `json:"gap,omitempty"`
}

// Clamped returns a copy with the anchor clamped to the unit square.
func (b Binding) Clamped() Binding {
	b.Anchor.X = geometry.Clamp01(b.Anchor.X)
	b.Anchor.Y = geometry.Clamp01(b.Anchor.Y)
	return b
}

// FixedSegment is a user-pinned orthogonal run of an elbow path. Index is
// the segment's position in the expanded point list; Start and End are the
// pinned world coordinates.
type FixedSegment struct {
	Index int            `json:"index"`
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`
}

// LinearData is the state shared by every arrow-like payload: ordered
// control points normalized to [0,1] within the element rect, stroke
// attributes, shaft kind, per-end heads and bindings.
type LinearData struct {
	NormPoints   []geometry.Point `json:"points"`
	StrokeWidth  float64          `json:"strokeWidth"`
	Style        StrokeStyle      `json:"strokeStyle"`
	Color        string           `json:"strokeColor,omitempty"`
	Kind         ShaftKind        `json:"shape"`
	StartHead    Arrowhead        `json:"startArrowhead"`
	EndHead      Arrowhead        `json:"endArrowhead"`
	StartBinding *Binding         `json:"startBinding,omitempty"`
	EndBinding   *Binding         `json:"endBinding,omitempty"`
}

// Head returns the arrowhead at the given end.
func (l *LinearData) Head(end End) Arrowhead {
	if end == AtStart {
		return l.StartHead
	}
	return l.EndHead
}

// Binding returns the binding at the given end, or nil.
func (l *LinearData) Binding(end End) *Binding {
	if end == AtStart {
		return l.StartBinding
	}
	return l.EndBinding
}

// SetBinding replaces the binding at the given end.
func (l *LinearData) SetBinding(end End, b *Binding) {
	if end == AtStart {
		l.StartBinding = b
	} else {
		l.EndBinding = b
	}
}

// Data is an element's type-specific payload.
type Data interface {
	// TypeName is the persisted payload discriminator.
	TypeName() string
	clone() Data
}

// LinearPayload is implemented by payloads carrying a linear path.
type LinearPayload interface {
	Data
	Linear() *LinearData
}

// ArrowData is the payload of an arrow element. It carries the elbow-only
// extras on top of the shared linear state.
type ArrowData struct {
	LinearData
	// FixedSegments are user-pinned orthogonal runs, elbow kind only.
	FixedSegments []FixedSegment `json:"fixedSegments,omitempty"`
	// StartIsSpecial / EndIsSpecial mark an endpoint sitting exactly on
	// the target boundary rather than routed with a stand-off gap.
	StartIsSpecial bool `json:"startIsSpecial,omitempty"`
	EndIsSpecial   bool `json:"endIsSpecial,omitempty"`
}

// TypeName returns "arrow".
func (a *ArrowData) TypeName() string { return "arrow" }

// Linear returns the shared linear state.
func (a *ArrowData) Linear() *LinearData { return &a.LinearData }

func (a *ArrowData) clone() Data {
	c := *a
	c.NormPoints = append([]geometry.Point(nil), a.NormPoints...)
	c.FixedSegments = append([]FixedSegment(nil), a.FixedSegments...)
	if a.StartBinding != nil {
		b := *a.StartBinding
		c.StartBinding = &b
	}
	if a.EndBinding != nil {
		b := *a.EndBinding
		c.EndBinding = &b
	}
	return &c
}

// LineData is the payload of a plain (non-arrow) multi-point line. It has
// no elbow extras; its kind is still straight or curved.
type LineData struct {
	LinearData
}

// TypeName returns "line".
func (l *LineData) TypeName() string { return "line" }

// Linear returns the shared linear state.
func (l *LineData) Linear() *LinearData { return &l.LinearData }

func (l *LineData) clone() Data {
	c := *l
	c.NormPoints = append([]geometry.Point(nil), l.NormPoints...)
	if l.StartBinding != nil {
		b := *l.StartBinding
		c.StartBinding = &b
	}
	if l.EndBinding != nil {
		b := *l.EndBinding
		c.EndBinding = &b
	}
	return &c
}

// BoxData is the payload of a plain bindable shape. The engine only needs
// its stroke width (orbit gaps scale from it) and fill hint.
type BoxData struct {
	StrokeWidth float64 `json:"strokeWidth"`
	Filled      bool    `json:"filled,omitempty"`
}

// TypeName returns "box".
func (b *BoxData) TypeName() string { return "box" }

func (b *BoxData) clone() Data {
	c := *b
	return &c
}
