package terminal

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"edgeflow/labels"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	styleSelected  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHandle    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleContainer = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleJump      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
)

// Draw renders the diagram and status line to s.
func (v *Viewer) Draw(s tcell.Screen) {
	s.Clear()
	width, height := s.Size()
	c := &cells{screen: s, width: width, height: height - 1}

	d := v.store.Diagram()
	for _, el := range d.Elements {
		v.drawElement(c, el)
	}
	for _, e := range d.Edges {
		route, ok := v.routes[e.ID]
		if !ok {
			continue
		}
		style := edgeStyle(e.Style)
		if e.ID == v.selected {
			style = styleSelected
		}
		v.drawRoute(c, route, style)
		for _, h := range connections.ArrowHeads(e, route) {
			x, y := v.toCell(h.Tip)
			c.put(x, y, arrowRune(h), style)
		}
	}
	if route, ok := v.routes[v.selected]; ok {
		v.drawHandles(c, d, route)
	}
	if v.jumping {
		v.drawJumpLabels(c, d)
	}
	if v.showHelp {
		drawHelp(c)
	}

	v.drawStatus(s, width, height-1)
	s.Show()
}

// cells clips drawing to the canvas area of the screen.
type cells struct {
	screen        tcell.Screen
	width, height int
}

func (c *cells) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

func (c *cells) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.put(x, y, r, style)
		x++
	}
}

// drawRoute rasterises the flattened route by sampling each run at a
// quarter of a cell. Runs are clipped to the visible cells first.
func (v *Viewer) drawRoute(c *cells, route connections.Route, style tcell.Style) {
	pts := route.Polyline()
	cw, ch := v.opts.CellWidth, v.opts.CellHeight
	view := geometry.NewBox(v.pan.X-cw, v.pan.Y-ch, float64(c.width+2)*cw, float64(c.height+2)*ch)
	step := math.Min(cw, ch) / 4
	for i := 1; i < len(pts); i++ {
		r := lineRune(pts[i-1], pts[i])
		a, b, ok := geometry.ClipSegment(pts[i-1], pts[i], view)
		if !ok {
			continue
		}
		n := int(math.Ceil(a.Distance(b) / step))
		for j := 0; j <= n; j++ {
			t := 1.0
			if n > 0 {
				t = float64(j) / float64(n)
			}
			x, y := v.toCell(a.Lerp(b, t))
			c.put(x, y, r, style)
		}
	}
}

func lineRune(a, b geometry.Point) rune {
	switch {
	case geometry.IsHorizontal(a, b):
		return '─'
	case geometry.IsVertical(a, b):
		return '│'
	default:
		return '·'
	}
}

func arrowRune(h connections.ArrowHead) rune {
	dir := h.Tip.Sub(h.Left.Midpoint(h.Right))
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dir.Y >= 0 {
		return '▼'
	}
	return '▲'
}

func (v *Viewer) drawElement(c *cells, el diagram.Element) {
	box := el.Box()
	x0, y0 := v.toCell(box.Position)
	x1, y1 := v.toCell(geometry.Pt(box.Right(), box.Bottom()))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	style := tcell.StyleDefault
	if el.Type == diagram.ElementContainer {
		style = styleContainer
	}
	if el.Type != diagram.ElementText {
		for x := x0 + 1; x < x1; x++ {
			c.put(x, y0, '─', style)
			c.put(x, y1, '─', style)
		}
		for y := y0 + 1; y < y1; y++ {
			c.put(x0, y, '│', style)
			c.put(x1, y, '│', style)
		}
		c.put(x0, y0, '┌', style)
		c.put(x1, y0, '┐', style)
		c.put(x0, y1, '└', style)
		c.put(x1, y1, '┘', style)
	}

	label := []rune(el.Text)
	if el.Text == "" && el.Type == diagram.ElementImage {
		label = []rune("[image]")
	}
	if room := x1 - x0 - 1; len(label) > room && room > 0 {
		label = label[:room]
	}
	cx := x0 + (x1-x0+1-len(label))/2
	c.text(cx, (y0+y1)/2, string(label), tcell.StyleDefault.Bold(true))
}

func (v *Viewer) drawHandles(c *cells, d *diagram.Diagram, route connections.Route) {
	if idx, ok := route.DraggableSegment(); ok {
		x, y := v.toCell(route.Segments[idx].Midpoint())
		c.put(x, y, '◆', styleHandle)
	}
	e, ok := d.Edge(v.selected)
	if !ok {
		return
	}
	for _, h := range route.StubHandles() {
		r := '○'
		if e.Endpoint(h.End).Anchor.IsCardinal() {
			r = '●'
		}
		x, y := v.toCell(h.Point)
		c.put(x, y, r, styleHandle)
	}
}

func (v *Viewer) drawJumpLabels(c *cells, d *diagram.Diagram) {
	for _, e := range d.Edges {
		r, ok := v.jumpLabel(e.ID)
		if !ok {
			continue
		}
		x, y := v.toCell(labels.PlaceOnRoute(v.routes[e.ID], nil))
		c.put(x, y, r, styleJump)
	}
}

// drawHelp centres the help box over the canvas.
func drawHelp(c *cells) {
	lines := HelpLines()
	width := len([]rune(lines[0]))
	x := (c.width - width) / 2
	y := (c.height - len(lines)) / 2
	for i, line := range lines {
		c.text(x, y+i, line, tcell.StyleDefault)
	}
}

func (v *Viewer) drawStatus(s tcell.Screen, width, row int) {
	line := " " + v.opts.Filename
	if v.opts.Filename == "" {
		line = " [unsaved]"
	}
	if v.store.Changed() {
		line += " *"
	}
	if e, ok := v.store.Edge(v.selected); ok {
		line += fmt.Sprintf(" | %s %s ratio %s radius %s", e.ID, e.Mode(),
			connections.FormatNumber(math.Round(e.Ratio()*1000)/1000), connections.FormatNumber(e.Radius()))
	}
	if v.status != "" {
		line += " | " + v.status
	} else {
		line += " | " + CompactHelp()
	}

	runes := []rune(line)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.SetContent(x, row, r, nil, styleStatus)
	}
}

// edgeStyle colours an edge by its stroke. The default dark stroke keeps
// the terminal's own foreground.
func edgeStyle(st diagram.Style) tcell.Style {
	if st.Stroke == "" || st.Stroke == "#333333" {
		return tcell.StyleDefault
	}
	col, err := colorful.Hex(st.Stroke)
	if err != nil {
		return tcell.StyleDefault
	}
	r, g, b := col.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
