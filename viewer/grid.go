// Package viewer is an interactive terminal front end for the arrow
// engine: it rasterizes elements onto a cell grid and lets the keyboard
// drag shapes around while bound arrows re-resolve live.
package viewer

import (
	"math"
	"strings"

	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/hittest"
	"arrowgeo/shape"
)

// Grid is a rune matrix the scene is sampled onto. World coordinates are
// scaled by Scale before plotting; terminal cells being roughly twice as
// tall as wide, Y is additionally halved.
type Grid struct {
	Width, Height int
	Scale         float64
	cells         []rune
}

// NewGrid returns a cleared grid of the given size.
func NewGrid(width, height int, scale float64) *Grid {
	g := &Grid{Width: width, Height: height, Scale: scale}
	g.cells = make([]rune, width*height)
	g.Clear()
	return g
}

// Clear resets every cell to space.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = ' '
	}
}

// Get returns the rune at a cell, or space when out of bounds.
func (g *Grid) Get(x, y int) rune {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return ' '
	}
	return g.cells[y*g.Width+x]
}

// Set places a rune, ignoring out-of-bounds cells.
func (g *Grid) Set(x, y int, r rune) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.cells[y*g.Width+x] = r
}

// Cell maps a world point to its grid cell.
func (g *Grid) Cell(p geometry.Point) (int, int) {
	return int(math.Round(p.X * g.Scale)), int(math.Round(p.Y * g.Scale / 2))
}

// String renders the grid with newlines between rows.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		b.WriteString(strings.TrimRight(string(g.cells[y*g.Width:(y+1)*g.Width]), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// DrawScene samples every element of the scene onto the grid: boxes as
// outlines, arrow-like elements as their cached drawable polylines with
// head markers at decorated tips.
func (g *Grid) DrawScene(scene *core.Scene, tester *hittest.Tester) {
	g.Clear()
	for _, el := range scene.Elements {
		if el.Linear() != nil {
			g.drawArrow(el, tester)
		} else {
			g.drawBox(el)
		}
	}
}

func (g *Grid) drawBox(el *core.Element) {
	x0, y0 := g.Cell(geometry.Point{X: el.Rect.MinX, Y: el.Rect.MinY})
	x1, y1 := g.Cell(geometry.Point{X: el.Rect.MaxX, Y: el.Rect.MaxY})
	for x := x0; x <= x1; x++ {
		g.Set(x, y0, '─')
		g.Set(x, y1, '─')
	}
	for y := y0; y <= y1; y++ {
		g.Set(x0, y, '│')
		g.Set(x1, y, '│')
	}
	g.Set(x0, y0, '┌')
	g.Set(x1, y0, '┐')
	g.Set(x0, y1, '└')
	g.Set(x1, y1, '┘')
}

func (g *Grid) drawArrow(el *core.Element, tester *hittest.Tester) {
	l := el.Linear()
	pts := tester.ShaftPoints(el)
	dist := 0.0
	for i := 0; i < len(pts)-1; i++ {
		g.plot(pts[i], pts[i+1], l.Style, dist)
		dist += pts[i].DistanceTo(pts[i+1])
	}
	if l.EndHead != core.HeadNone && len(pts) >= 2 {
		x, y := g.Cell(pts[len(pts)-1])
		g.Set(x, y, headRune(pts[len(pts)-2], pts[len(pts)-1]))
	}
	if l.StartHead != core.HeadNone && len(pts) >= 2 {
		x, y := g.Cell(pts[0])
		g.Set(x, y, headRune(pts[1], pts[0]))
	}
}

// plot samples the world segment ab onto cells, stepping at sub-cell
// resolution so no cell on the way is skipped. offset is the distance
// already travelled along the shaft, keeping dash phase continuous
// across legs.
func (g *Grid) plot(a, b geometry.Point, style core.StrokeStyle, offset float64) {
	length := a.DistanceTo(b)
	steps := int(length*g.Scale)*2 + 1
	r := segRune(a, b)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if !strokeOn(style, offset+length*t) {
			continue
		}
		x, y := g.Cell(a.Lerp(b, t))
		g.Set(x, y, r)
	}
}

// strokeOn reports whether the stroke pattern is inked at the given
// distance along the shaft.
func strokeOn(style core.StrokeStyle, d float64) bool {
	switch style {
	case core.StrokeDashed:
		return math.Mod(d, 6) < 4
	case core.StrokeDotted:
		return math.Mod(d, 3) < 1.5
	default:
		return true
	}
}

func segRune(a, b geometry.Point) rune {
	dx, dy := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
	switch {
	case dy <= dx/2:
		return '─'
	case dx <= dy/2:
		return '│'
	case (b.X-a.X)*(b.Y-a.Y) > 0:
		return '\\'
	default:
		return '/'
	}
}

// headRune picks a pointer glyph for the travel direction from a to tip.
func headRune(a, tip geometry.Point) rune {
	dx, dy := tip.X-a.X, tip.Y-a.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dy >= 0 {
		return '▼'
	}
	return '▲'
}

// DemoScene builds the built-in scene shown when no file is given: two
// boxes with a straight orbit-bound arrow, plus an elbow arrow bound to
// the lower box.
func DemoScene() *core.Scene {
	boxA := &core.Element{ID: "a", Rect: geometry.NewRect(10, 10, 30, 14), Data: &core.BoxData{StrokeWidth: 2}}
	boxB := &core.Element{ID: "b", Rect: geometry.NewRect(80, 30, 30, 14), Data: &core.BoxData{StrokeWidth: 2}}
	link := &core.Element{
		ID:   "link",
		Rect: geometry.NewRect(40, 17, 40, 20),
		Data: &core.ArrowData{
			LinearData: core.LinearData{
				NormPoints:   []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
				StrokeWidth:  2,
				EndHead:      core.HeadChevron,
				StartBinding: &core.Binding{ElementID: "a", Anchor: geometry.Point{X: 0.5, Y: 0.5}, Mode: core.BindOrbit, Gap: 2},
				EndBinding:   &core.Binding{ElementID: "b", Anchor: geometry.Point{X: 0.5, Y: 0.5}, Mode: core.BindOrbit, Gap: 2},
			},
		},
	}
	elbow := &core.Element{
		ID:   "elbow",
		Rect: geometry.NewRect(10, 40, 70, 10),
		Data: &core.ArrowData{
			LinearData: core.LinearData{
				NormPoints:  []geometry.Point{{X: 0, Y: 1}, {X: 1, Y: 0}},
				StrokeWidth: 2,
				Kind:        core.ShaftElbow,
				EndHead:     core.HeadTriangle,
				EndBinding:  &core.Binding{ElementID: "b", Anchor: geometry.Point{X: 0, Y: 0.5}, Mode: core.BindOrbit, Gap: 2},
			},
		},
	}
	return &core.Scene{Elements: []*core.Element{boxA, boxB, link, elbow}, Version: 1}
}

// applyUpdates commits resolver replacements into the scene in place.
func applyUpdates(scene *core.Scene, updates map[core.ID]*core.Element) {
	for i, el := range scene.Elements {
		if repl, ok := updates[el.ID]; ok {
			scene.Elements[i] = repl
		}
	}
}

// MoveElement shifts one element and re-resolves every arrow bound to
// it, committing the replacements into the scene.
func MoveElement(scene *core.Scene, r Resolver, id core.ID, dx, dy float64) {
	var moved *core.Element
	for i, el := range scene.Elements {
		if el.ID == id {
			moved = el.Clone()
			moved.Rect = geometry.Rect{
				MinX: el.Rect.MinX + dx, MinY: el.Rect.MinY + dy,
				MaxX: el.Rect.MaxX + dx, MaxY: el.Rect.MaxY + dy,
			}
			scene.Elements[i] = moved
			break
		}
	}
	if moved == nil {
		return
	}
	scene.Version++
	applyUpdates(scene, r.Resolve(scene.Elements, nil, []core.ID{id}, scene.Version))
}

// Resolver is the slice of the binding resolver the viewer needs.
type Resolver interface {
	Resolve(base, overlay []*core.Element, changed []core.ID, version uint64) map[core.ID]*core.Element
}

// BoundsOfScene returns the union of every element's drawable bounds,
// used to size the grid.
func BoundsOfScene(scene *core.Scene) geometry.Rect {
	var b geometry.Rect
	first := true
	for _, el := range scene.Elements {
		r := el.Rect
		if el.Linear() != nil {
			r = shape.ExactBounds(el)
		}
		if first {
			b, first = r, false
		} else {
			b = b.Union(r)
		}
	}
	return b
}
