// Package terminal is an interactive tcell viewer for routed diagrams.
// Bends and anchor handles are dragged with the mouse.
package terminal

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/editor"
	"edgeflow/geometry"
	"edgeflow/interaction"
	"edgeflow/logging"
	"fmt"
	"math"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
)

// Options configure a Viewer.
type Options struct {
	Filename      string  // where 's' saves; empty disables saving
	CellWidth     float64 // canvas units per terminal column
	CellHeight    float64 // canvas units per terminal row
	Confirmations bool    // ask before quitting with unsaved changes
}

// panStep is how many cells the arrow keys scroll.
const panStep = 4

// radiusStep is the corner radius change per '+' or '-'.
const radiusStep = 2.0

// Viewer shows a diagram and edits its routing records.
type Viewer struct {
	store  *editor.Store
	router *connections.Router
	ctl    *interaction.Controller
	opts   Options

	pan        geometry.Point // canvas point at the top-left of the screen
	selected   string         // selected edge id
	status     string
	confirming bool
	showHelp   bool
	jumping    bool
	jumpLabels map[rune]string
	routes     map[string]connections.Route

	copy func(string) error
	save func(string, *diagram.Diagram) error
}

// NewViewer creates a viewer over store.
func NewViewer(store *editor.Store, router *connections.Router, opts Options) *Viewer {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	v := &Viewer{
		store:  store,
		router: router,
		ctl:    interaction.NewController(store),
		opts:   opts,
		copy:   clipboard.WriteAll,
		save:   diagram.Save,
	}
	v.reroute()
	if d := store.Diagram(); len(d.Edges) > 0 {
		v.selected = d.Edges[0].ID
	}
	return v
}

// Selected returns the selected edge id.
func (v *Viewer) Selected() string {
	return v.selected
}

// Status returns the current status message.
func (v *Viewer) Status() string {
	return v.status
}

func (v *Viewer) reroute() {
	v.routes = v.router.RouteAll(v.store.Diagram())
}

// toCanvas maps the centre of a terminal cell to canvas coordinates.
func (v *Viewer) toCanvas(x, y int) geometry.Point {
	return geometry.Pt(
		v.pan.X+(float64(x)+0.5)*v.opts.CellWidth,
		v.pan.Y+(float64(y)+0.5)*v.opts.CellHeight,
	)
}

// toCell maps a canvas point to the terminal cell containing it.
func (v *Viewer) toCell(p geometry.Point) (int, int) {
	return int(math.Floor((p.X - v.pan.X) / v.opts.CellWidth)),
		int(math.Floor((p.Y - v.pan.Y) / v.opts.CellHeight))
}

// HandleEvent applies one terminal event. It reports true when the viewer
// should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := v.toCanvas(x, y)
	_, _, dragging := v.ctl.Active()

	if ev.Buttons()&tcell.Button1 == 0 {
		if dragging {
			value, err := v.ctl.End()
			v.reroute()
			if err != nil {
				v.setStatus("drag failed: %v", err)
				return
			}
			v.setStatus("%s set to %s", v.dragTarget(), connections.FormatNumber(math.Round(value*1000)/1000))
		}
		return
	}

	if dragging {
		if _, err := v.ctl.Update(p); err != nil {
			v.setStatus("drag failed: %v", err)
		}
		v.reroute()
		return
	}
	v.press(p)
}

// tolerance is the hit radius in canvas units: one cell.
func (v *Viewer) tolerance() float64 {
	return math.Max(v.opts.CellWidth, v.opts.CellHeight)
}

// press starts a drag on the nearest grab point, or selects the edge
// under the pointer.
func (v *Viewer) press(p geometry.Point) {
	type hit struct {
		edgeID string
		dist   float64
		begin  func() error
	}
	best := hit{dist: math.Inf(1)}
	var lineHit string
	consider := func(h hit) {
		if h.dist <= v.tolerance() && h.dist < best.dist {
			best = h
		}
	}

	d := v.store.Diagram()
	for _, e := range d.Edges {
		route, ok := v.routes[e.ID]
		if !ok {
			continue
		}
		id := e.ID
		if idx, ok := route.DraggableSegment(); ok {
			seg := route.Segments[idx]
			consider(hit{id, geometry.DistanceToSegment(p, seg.Start, seg.End), func() error {
				return v.ctl.BeginBend(id, route, idx, p)
			}})
		}
		for _, h := range route.StubHandles() {
			if !e.Endpoint(h.End).Anchor.IsCardinal() {
				continue
			}
			end := h.End
			consider(hit{id, p.Distance(h.Point), func() error {
				return v.ctl.BeginHandle(id, end, p)
			}})
		}
		if lineHit == "" {
			pts := route.Polyline()
			for i := 1; i < len(pts); i++ {
				if geometry.DistanceToSegment(p, pts[i-1], pts[i]) <= v.tolerance() {
					lineHit = id
					break
				}
			}
		}
	}

	if best.begin == nil {
		// Plain selection when no grab point is in reach
		if lineHit != "" {
			v.selected = lineHit
		}
		return
	}
	v.selected = best.edgeID
	if err := best.begin(); err != nil {
		v.setStatus("%v", err)
		return
	}
	_, kind, _ := v.ctl.Active()
	v.setStatus("dragging %s of %s", kind, best.edgeID)
}

func (v *Viewer) dragTarget() string {
	return fmt.Sprintf("edge %s", v.selected)
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune || ev.Rune() != 'q' {
		v.confirming = false
	}
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if v.showHelp {
		v.showHelp = false
		return false
	}
	if v.jumping {
		if ev.Key() == tcell.KeyRune {
			v.jump(ev.Rune())
		} else {
			v.clearJump()
			v.setStatus("")
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if _, err := v.ctl.Cancel(); err == nil {
			v.reroute()
			v.setStatus("drag cancelled")
		}
	case tcell.KeyTab:
		v.cycleSelection(1)
	case tcell.KeyBacktab:
		v.cycleSelection(-1)
	case tcell.KeyLeft:
		v.pan.X -= panStep * v.opts.CellWidth
	case tcell.KeyRight:
		v.pan.X += panStep * v.opts.CellWidth
	case tcell.KeyUp:
		v.pan.Y -= panStep * v.opts.CellHeight
	case tcell.KeyDown:
		v.pan.Y += panStep * v.opts.CellHeight
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return false
}

func (v *Viewer) handleRune(r rune) bool {
	if _, _, dragging := v.ctl.Active(); dragging && r != 'q' {
		return false
	}

	switch r {
	case 'q':
		if v.opts.Confirmations && v.store.Changed() && !v.confirming {
			v.confirming = true
			v.setStatus("unsaved changes, press q again to quit")
			return false
		}
		return true
	case 'm':
		e, ok := v.store.Edge(v.selected)
		if !ok {
			return false
		}
		next := e.Mode().Next()
		if err := v.store.SetRouting(e.ID, next); err != nil {
			v.setStatus("%v", err)
			return false
		}
		v.setStatus("%s routing: %s", e.ID, next)
	case '+', '=':
		v.adjustRadius(radiusStep)
	case '-':
		v.adjustRadius(-radiusStep)
	case 'u':
		if !v.store.Undo() {
			v.setStatus("nothing to undo")
			return false
		}
		v.setStatus("undone")
	case 'r':
		if !v.store.Redo() {
			v.setStatus("nothing to redo")
			return false
		}
		v.setStatus("redone")
	case 's':
		v.saveFile()
	case 'f':
		v.startJump()
		return false
	case '?':
		v.showHelp = true
		return false
	case 'y':
		route, ok := v.routes[v.selected]
		if !ok {
			v.setStatus("no route selected")
			return false
		}
		if err := v.copy(route.Path); err != nil {
			v.setStatus("clipboard: %v", err)
			return false
		}
		v.setStatus("copied path of %s", v.selected)
		return false
	}
	v.reroute()
	return false
}

func (v *Viewer) adjustRadius(delta float64) {
	e, ok := v.store.Edge(v.selected)
	if !ok {
		return
	}
	r := math.Max(e.Radius()+delta, 0)
	if err := v.store.SetCornerRadius(e.ID, r); err != nil {
		v.setStatus("%v", err)
		return
	}
	v.setStatus("%s corner radius: %s", e.ID, connections.FormatNumber(r))
}

func (v *Viewer) saveFile() {
	if v.opts.Filename == "" {
		v.setStatus("no file name to save to")
		return
	}
	if err := v.save(v.opts.Filename, v.store.Diagram()); err != nil {
		v.setStatus("save failed: %v", err)
		return
	}
	v.store.MarkSaved()
	v.setStatus("saved %s", v.opts.Filename)
	logging.Logger().Info("diagram saved", "file", v.opts.Filename)
}

func (v *Viewer) cycleSelection(step int) {
	d := v.store.Diagram()
	if len(d.Edges) == 0 {
		return
	}
	i := d.EdgeIndex(v.selected)
	if i < 0 {
		i = 0
	} else {
		i = (i + step + len(d.Edges)) % len(d.Edges)
	}
	v.selected = d.Edges[i].ID
}

func (v *Viewer) setStatus(format string, args ...interface{}) {
	v.status = fmt.Sprintf(format, args...)
}
