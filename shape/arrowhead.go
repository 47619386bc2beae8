package shape

import (
	"arrowgeo/core"
	"arrowgeo/geometry"
)

// HeadLength returns the along-path size of an arrowhead for the given
// stroke width. Width across the path is 0.6 of this.
func HeadLength(strokeWidth float64) float64 {
	return strokeWidth*4 + 12
}

// InsetFor returns how far the shaft is retracted from the tip so it
// never shows through a closed (filled) head. Open styles need none.
func InsetFor(head core.Arrowhead, strokeWidth float64) float64 {
	if head.Closed() {
		return HeadLength(strokeWidth)
	}
	return 0
}

// DirectionSampleOffset returns how far back along the path the head's
// orientation reference is sampled, so the head follows the curve near
// its base instead of the exact tip tangent.
func DirectionSampleOffset(head core.Arrowhead, strokeWidth float64) float64 {
	switch {
	case head == core.HeadNone:
		return 0
	case head.Closed():
		return HeadLength(strokeWidth)
	default:
		return HeadLength(strokeWidth) / 2
	}
}

// HeadShape is the exact vector shape of one arrowhead. Exactly one of
// Strokes, Polygon or Radius>0 is populated, by style:
// open strokes for chevron and bar, a closed polygon for triangle,
// inverted-triangle, square and diamond, a filled disc for circle.
type HeadShape struct {
	Style   core.Arrowhead
	Strokes [][2]geometry.Point
	Polygon []geometry.Point
	Center  geometry.Point
	Radius  float64
}

// BuildHead synthesizes the arrowhead at tip pointing along dir (a unit
// vector from the shaft toward the tip). HeadNone and a zero dir yield a
// zero shape.
func BuildHead(tip, dir geometry.Point, style core.Arrowhead, strokeWidth float64) HeadShape {
	if style == core.HeadNone || dir == (geometry.Point{}) {
		return HeadShape{Style: core.HeadNone}
	}
	length := HeadLength(strokeWidth)
	half := length * 0.6 / 2
	back := tip.Sub(dir.Scale(length))
	side := dir.Perp().Scale(half)

	switch style {
	case core.HeadChevron:
		return HeadShape{
			Style: style,
			Strokes: [][2]geometry.Point{
				{tip, back.Add(side)},
				{tip, back.Sub(side)},
			},
		}
	case core.HeadTriangle:
		return HeadShape{
			Style:   style,
			Polygon: []geometry.Point{tip, back.Add(side), back.Sub(side)},
		}
	case core.HeadInvertedTriangle:
		return HeadShape{
			Style:   style,
			Polygon: []geometry.Point{tip.Add(side), tip.Sub(side), back},
		}
	case core.HeadSquare:
		return HeadShape{
			Style:   style,
			Polygon: []geometry.Point{tip.Add(side), tip.Sub(side), back.Sub(side), back.Add(side)},
		}
	case core.HeadDiamond:
		mid := tip.Sub(dir.Scale(length / 2))
		return HeadShape{
			Style:   style,
			Polygon: []geometry.Point{tip, mid.Add(side), back, mid.Sub(side)},
		}
	case core.HeadCircle:
		r := length / 2
		return HeadShape{
			Style:  style,
			Center: tip.Sub(dir.Scale(r)),
			Radius: r,
		}
	case core.HeadBar:
		return HeadShape{
			Style:   style,
			Strokes: [][2]geometry.Point{{tip.Add(side), tip.Sub(side)}},
		}
	}
	return HeadShape{Style: core.HeadNone}
}

// Heads builds both arrowheads of an element from its shaft. Ends without
// a head style yield zero shapes.
func Heads(el *core.Element, s Shaft) (start, end HeadShape) {
	l := el.Linear()
	if l == nil || len(s.Points) < 2 {
		return HeadShape{}, HeadShape{}
	}
	if l.StartHead != core.HeadNone {
		dir := s.DirectionAt(core.AtStart, DirectionSampleOffset(l.StartHead, l.StrokeWidth))
		start = BuildHead(s.Start(), dir, l.StartHead, l.StrokeWidth)
	}
	if l.EndHead != core.HeadNone {
		dir := s.DirectionAt(core.AtEnd, DirectionSampleOffset(l.EndHead, l.StrokeWidth))
		end = BuildHead(s.End(), dir, l.EndHead, l.StrokeWidth)
	}
	return start, end
}

// MaxHeadExtent returns the largest distance any rendered head geometry
// can reach from the path, used to inflate hit-test bounds.
func MaxHeadExtent(l *core.LinearData) float64 {
	if l == nil {
		return 0
	}
	var extent float64
	if l.StartHead != core.HeadNone {
		extent = HeadLength(l.StrokeWidth)
	}
	if l.EndHead != core.HeadNone {
		if e := HeadLength(l.StrokeWidth); e > extent {
			extent = e
		}
	}
	return extent
}
