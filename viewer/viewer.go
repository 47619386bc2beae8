package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"arrowgeo/binding"
	"arrowgeo/core"
	"arrowgeo/geometry"
	"arrowgeo/hittest"
)

var (
	styleDefault  = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Viewer runs the interactive session: it owns the screen, the scene
// and the engine pieces, and re-resolves bindings after every edit.
type Viewer struct {
	screen   tcell.Screen
	scene    *core.Scene
	resolver *binding.Resolver
	tester   *hittest.Tester
	grid     *Grid

	selected int // index into boxIDs
	boxIDs   []core.ID
	status   string
}

// New prepares a viewer over the given scene. The caller still owns the
// scene and can inspect it after Run returns.
func New(scene *core.Scene) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	screen.EnableMouse()

	v := &Viewer{
		screen:   screen,
		scene:    scene,
		resolver: binding.NewResolver(),
		tester:   hittest.NewTester(),
	}
	for _, el := range scene.Elements {
		if el.Linear() == nil {
			v.boxIDs = append(v.boxIDs, el.ID)
		}
	}
	w, h := screen.Size()
	v.grid = NewGrid(w, h-1, 1)
	return v, nil
}

// Run blocks until the user quits.
func (v *Viewer) Run() {
	defer v.screen.Fini()
	v.status = "arrows move the selected box · tab selects · click hit-tests · q quits"
	for {
		v.draw()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := v.screen.Size()
			v.grid = NewGrid(w, h-1, 1)
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				v.handleClick(ev)
			}
		}
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		if len(v.boxIDs) > 0 {
			v.selected = (v.selected + 1) % len(v.boxIDs)
		}
	case tcell.KeyUp:
		v.move(0, -2)
	case tcell.KeyDown:
		v.move(0, 2)
	case tcell.KeyLeft:
		v.move(-2, 0)
	case tcell.KeyRight:
		v.move(2, 0)
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}
	return true
}

func (v *Viewer) move(dx, dy float64) {
	if len(v.boxIDs) == 0 {
		return
	}
	MoveElement(v.scene, v.resolver, v.boxIDs[v.selected], dx, dy)
	hits, misses, _, size := v.tester.Stats()
	v.status = fmt.Sprintf("moved %s · cache %d hit / %d miss, %d entries",
		v.boxIDs[v.selected], hits, misses, size)
}

// handleClick hit-tests the click against every element, topmost first.
func (v *Viewer) handleClick(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	p := geometry.Point{X: float64(cx), Y: float64(cy) * 2}
	for i := len(v.scene.Elements) - 1; i >= 0; i-- {
		el := v.scene.Elements[i]
		if v.tester.Hit(el, p, 2) {
			v.status = fmt.Sprintf("hit %s at (%.0f, %.0f)", el.ID, p.X, p.Y)
			for j, id := range v.boxIDs {
				if id == el.ID {
					v.selected = j
				}
			}
			return
		}
	}
	v.status = fmt.Sprintf("no hit at (%.0f, %.0f)", p.X, p.Y)
}

func (v *Viewer) draw() {
	v.screen.Clear()
	v.grid.DrawScene(v.scene, v.tester)
	sel := core.ID("")
	if len(v.boxIDs) > 0 {
		sel = v.boxIDs[v.selected]
	}
	selRect := geometry.Rect{}
	if el := v.scene.Lookup().Element(sel); el != nil {
		selRect = el.Rect
	}
	for y := 0; y < v.grid.Height; y++ {
		for x := 0; x < v.grid.Width; x++ {
			r := v.grid.Get(x, y)
			if r == ' ' {
				continue
			}
			style := styleDefault
			wp := geometry.Point{X: float64(x), Y: float64(y) * 2}
			if selRect.Width() > 0 && selRect.Inflate(1).Contains(wp) {
				style = styleSelected
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	for i, r := range v.status {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, styleStatus)
	}
}
