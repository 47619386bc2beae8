package core

import (
	"encoding/json"
	"testing"

	"arrowgeo/geometry"
)

func TestElementRoundTrip(t *testing.T) {
	el := &Element{
		ID:    "a1",
		Rect:  geometry.NewRect(10, 20, 100, 50),
		Angle: 0.5,
		Data: &ArrowData{
			LinearData: LinearData{
				NormPoints:  []geometry.Point{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}},
				StrokeWidth: 2,
				Style:       StrokeDashed,
				Kind:        ShaftElbow,
				EndHead:     HeadTriangle,
				StartBinding: &Binding{
					ElementID: "box1",
					Anchor:    geometry.Point{X: 0.5, Y: 0.5},
					Mode:      BindOrbit,
					Gap:       4,
				},
			},
			FixedSegments: []FixedSegment{{Index: 1, Start: geometry.Point{X: 30, Y: 45}, End: geometry.Point{X: 80, Y: 45}}},
			EndIsSpecial:  true,
		},
	}

	raw, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Element
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	arrow, ok := back.Data.(*ArrowData)
	if !ok {
		t.Fatalf("payload decoded as %T, want *ArrowData", back.Data)
	}
	if back.Rect != el.Rect || back.Angle != el.Angle {
		t.Errorf("rect/angle changed: %+v angle=%v", back.Rect, back.Angle)
	}
	if arrow.Kind != ShaftElbow || arrow.Style != StrokeDashed || arrow.EndHead != HeadTriangle {
		t.Errorf("enums changed: kind=%v style=%v head=%v", arrow.Kind, arrow.Style, arrow.EndHead)
	}
	if arrow.StartBinding == nil || arrow.StartBinding.Mode != BindOrbit || arrow.StartBinding.ElementID != "box1" {
		t.Errorf("binding changed: %+v", arrow.StartBinding)
	}
	if len(arrow.FixedSegments) != 1 || arrow.FixedSegments[0].Index != 1 {
		t.Errorf("fixed segments changed: %+v", arrow.FixedSegments)
	}
	if !arrow.EndIsSpecial {
		t.Error("EndIsSpecial flag lost")
	}
}

func TestDecodeDefaults(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing points", `{"id":"a","type":"arrow","x":0,"y":0,"width":10,"height":10,"data":{"strokeWidth":1}}`},
		{"single point", `{"id":"a","type":"arrow","x":0,"y":0,"width":10,"height":10,"data":{"points":[{"x":0.5,"y":0.5}]}}`},
		{"no data at all", `{"id":"a","type":"arrow","x":0,"y":0,"width":10,"height":10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var el Element
			if err := json.Unmarshal([]byte(tt.json), &el); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			l := el.Linear()
			if l == nil {
				t.Fatal("arrow decoded without linear payload")
			}
			if len(l.NormPoints) != 2 {
				t.Fatalf("got %d points, want canonical 2-point default", len(l.NormPoints))
			}
			if l.NormPoints[0] != (geometry.Point{X: 0, Y: 0}) || l.NormPoints[1] != (geometry.Point{X: 1, Y: 1}) {
				t.Errorf("default points = %v", l.NormPoints)
			}
		})
	}
}

func TestDecodeUnknownEnumNames(t *testing.T) {
	raw := `{"id":"a","type":"arrow","x":0,"y":0,"width":10,"height":10,
		"data":{"points":[{"x":0,"y":0},{"x":1,"y":1}],
		"shape":"zigzag","strokeStyle":"wavy","endArrowhead":"harpoon"}}`
	var el Element
	if err := json.Unmarshal([]byte(raw), &el); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	l := el.Linear()
	if l.Kind != ShaftStraight {
		t.Errorf("unknown shape decoded to %v, want straight", l.Kind)
	}
	if l.Style != StrokeSolid {
		t.Errorf("unknown stroke style decoded to %v, want solid", l.Style)
	}
	if l.EndHead != HeadNone {
		t.Errorf("unknown arrowhead decoded to %v, want none", l.EndHead)
	}
}

func TestDecodeClampsCoordinates(t *testing.T) {
	raw := `{"id":"a","type":"line","x":0,"y":0,"width":10,"height":10,
		"data":{"points":[{"x":-0.5,"y":2},{"x":0.5,"y":0.5}],
		"startBinding":{"elementId":"b","anchor":{"x":1.5,"y":-1},"mode":"orbit"}}}`
	var el Element
	if err := json.Unmarshal([]byte(raw), &el); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	l := el.Linear()
	if l.NormPoints[0] != (geometry.Point{X: 0, Y: 1}) {
		t.Errorf("point not clamped: %v", l.NormPoints[0])
	}
	if l.StartBinding.Anchor != (geometry.Point{X: 1, Y: 0}) {
		t.Errorf("anchor not clamped: %v", l.StartBinding.Anchor)
	}
}

func TestCloneIsDeep(t *testing.T) {
	el := &Element{
		ID:   "a1",
		Rect: geometry.NewRect(0, 0, 10, 10),
		Data: &ArrowData{
			LinearData: LinearData{
				NormPoints: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
				EndBinding: &Binding{ElementID: "t"},
			},
		},
	}
	c := el.Clone()
	cl := c.Linear()
	cl.NormPoints[0] = geometry.Point{X: 0.9, Y: 0.9}
	cl.EndBinding.ElementID = "other"
	if el.Linear().NormPoints[0] != (geometry.Point{X: 0, Y: 0}) {
		t.Error("clone shares the point slice")
	}
	if el.Linear().EndBinding.ElementID != "t" {
		t.Error("clone shares the binding")
	}
}

func TestLayeredLookup(t *testing.T) {
	base := MapLookup{"a": {ID: "a", Opacity: 1}}
	overlay := MapLookup{"a": {ID: "a", Opacity: 0.5}, "b": {ID: "b"}}
	l := LayeredLookup{Base: base, Overlay: overlay}
	if got := l.Element("a"); got.Opacity != 0.5 {
		t.Error("overlay should shadow base")
	}
	if l.Element("b") == nil {
		t.Error("overlay-only element missing")
	}
	if l.Element("c") != nil {
		t.Error("unknown id should be nil")
	}
}
