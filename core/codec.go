package core

import (
	"encoding/json"
	"fmt"

	"arrowgeo/geometry"
)

// Enum names are persisted as strings; unknown names decode to the
// field's default rather than failing the whole element.

// MarshalJSON encodes the kind by name.
func (k ShaftKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name, defaulting to straight.
func (k *ShaftKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*k = ShaftStraight
		return nil
	}
	switch s {
	case "curved":
		*k = ShaftCurved
	case "elbow":
		*k = ShaftElbow
	default:
		*k = ShaftStraight
	}
	return nil
}

// MarshalJSON encodes the head style by name.
func (a Arrowhead) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a head style name, defaulting to none.
func (a *Arrowhead) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*a = HeadNone
		return nil
	}
	switch s {
	case "arrow":
		*a = HeadChevron
	case "triangle":
		*a = HeadTriangle
	case "inverted-triangle":
		*a = HeadInvertedTriangle
	case "square":
		*a = HeadSquare
	case "circle":
		*a = HeadCircle
	case "diamond":
		*a = HeadDiamond
	case "bar":
		*a = HeadBar
	default:
		*a = HeadNone
	}
	return nil
}

// MarshalJSON encodes the stroke style by name.
func (s StrokeStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a stroke style name, defaulting to solid.
func (s *StrokeStyle) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		*s = StrokeSolid
		return nil
	}
	switch name {
	case "dashed":
		*s = StrokeDashed
	case "dotted":
		*s = StrokeDotted
	default:
		*s = StrokeSolid
	}
	return nil
}

// MarshalJSON encodes the binding mode by name.
func (m BindingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a binding mode name, defaulting to inside.
func (m *BindingMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*m = BindInside
		return nil
	}
	if s == "orbit" {
		*m = BindOrbit
	} else {
		*m = BindInside
	}
	return nil
}

// elementJSON is the persisted shape of an element. The rect is stored as
// x/y/width/height; the payload is discriminated by Type.
type elementJSON struct {
	ID      ID              `json:"id"`
	Type    string          `json:"type"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Angle   float64         `json:"angle,omitempty"`
	Opacity float64         `json:"opacity,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON encodes the element with its payload inline.
func (e *Element) MarshalJSON() ([]byte, error) {
	ej := elementJSON{
		ID:      e.ID,
		X:       e.Rect.MinX,
		Y:       e.Rect.MinY,
		Width:   e.Rect.Width(),
		Height:  e.Rect.Height(),
		Angle:   e.Angle,
		Opacity: e.Opacity,
	}
	if e.Data != nil {
		ej.Type = e.Data.TypeName()
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", ej.Type, err)
		}
		ej.Data = raw
	} else {
		ej.Type = "box"
	}
	return json.Marshal(ej)
}

// UnmarshalJSON decodes an element, recovering malformed payload fields to
// their documented defaults. Unknown payload types decode as boxes.
func (e *Element) UnmarshalJSON(data []byte) error {
	var ej elementJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}
	e.ID = ej.ID
	e.Rect = geometry.NewRect(ej.X, ej.Y, ej.Width, ej.Height)
	e.Angle = ej.Angle
	e.Opacity = ej.Opacity

	switch ej.Type {
	case "arrow":
		d := &ArrowData{}
		if len(ej.Data) > 0 {
			// Field-level fallbacks live in the enum decoders; a payload
			// that fails wholesale still yields a usable default arrow.
			_ = json.Unmarshal(ej.Data, d)
		}
		sanitizeLinear(&d.LinearData)
		e.Data = d
	case "line":
		d := &LineData{}
		if len(ej.Data) > 0 {
			_ = json.Unmarshal(ej.Data, d)
		}
		sanitizeLinear(&d.LinearData)
		e.Data = d
	default:
		d := &BoxData{}
		if len(ej.Data) > 0 {
			_ = json.Unmarshal(ej.Data, d)
		}
		e.Data = d
	}
	return nil
}

// sanitizeLinear enforces the decode guarantees: at least two control
// points, normalized coordinates in [0,1], anchors clamped.
func sanitizeLinear(l *LinearData) {
	if len(l.NormPoints) < 2 {
		l.NormPoints = []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	}
	for i, p := range l.NormPoints {
		l.NormPoints[i] = geometry.Point{X: geometry.Clamp01(p.X), Y: geometry.Clamp01(p.Y)}
	}
	if l.StartBinding != nil {
		b := l.StartBinding.Clamped()
		l.StartBinding = &b
	}
	if l.EndBinding != nil {
		b := l.EndBinding.Clamped()
		l.EndBinding = &b
	}
}

// Scene is a whole persisted document: the element list plus the version
// counter, so fixtures round-trip through one file.
type Scene struct {
	Elements []*Element `json:"elements"`
	Version  uint64     `json:"version,omitempty"`
}

// Lookup returns a MapLookup over the scene's elements.
func (s *Scene) Lookup() MapLookup {
	m := make(MapLookup, len(s.Elements))
	for _, el := range s.Elements {
		m[el.ID] = el
	}
	return m
}

// ZOrder returns the index of id in the element list, or -1. Later
// elements are above earlier ones.
func (s *Scene) ZOrder(id ID) int {
	for i, el := range s.Elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
