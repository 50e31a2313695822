package export

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"edgeflow/labels"
)

// Fallback paints, from the original editor defaults.
const (
	defaultStroke     = "#333333"
	defaultFill       = "#ffffff"
	defaultBackground = "#ffffff"
	labelColor        = "#666666"
)

type edgeShape struct {
	edge     diagram.Edge
	route    connections.Route
	heads    []connections.ArrowHead
	label    string
	labelAt  geometry.Point
	labelBox geometry.Box
}

// scene is a diagram with every edge routed, ready to draw.
type scene struct {
	bounds     geometry.Box
	background string
	elements   []diagram.Element
	edges      []edgeShape
}

func buildScene(d *diagram.Diagram, opts Options) scene {
	s := scene{
		background: d.Canvas.Background,
		elements:   d.Elements,
	}
	if opts.Background != "" {
		s.background = opts.Background
	}
	if s.background == "" {
		s.background = defaultBackground
	}

	var bounds geometry.Box
	first := true
	grow := func(b geometry.Box) {
		if first {
			bounds, first = b, false
			return
		}
		bounds = bounds.Union(b)
	}

	for _, el := range d.Elements {
		grow(el.Box())
	}

	routes := opts.Router.RouteAll(d)
	for _, e := range d.Edges {
		route, ok := routes[e.ID]
		if !ok {
			continue
		}
		shape := edgeShape{
			edge:  e,
			route: route,
			heads: connections.ArrowHeads(e, route),
		}
		grow(geometry.Bounds(route.Polyline()))
		if e.Label != nil && e.Label.Text != "" {
			shape.label = e.Label.Text
			shape.labelAt = labels.PlaceOnRoute(route, e.Label)
			shape.labelBox = labels.Box(e.Label.Text, shape.labelAt)
			grow(shape.labelBox)
		}
		s.edges = append(s.edges, shape)
	}

	if first {
		bounds = geometry.NewBox(0, 0, d.Canvas.Width, d.Canvas.Height)
	}
	m := opts.Margin
	s.bounds = geometry.NewBox(bounds.Position.X-m, bounds.Position.Y-m,
		bounds.Size.Width+2*m, bounds.Size.Height+2*m)
	if s.bounds.Size.Width <= 0 {
		s.bounds.Size.Width = 1
	}
	if s.bounds.Size.Height <= 0 {
		s.bounds.Size.Height = 1
	}
	return s
}

func strokeOf(st diagram.Style) string {
	if st.Stroke == "" {
		return defaultStroke
	}
	return st.Stroke
}

func strokeWidthOf(st diagram.Style) float64 {
	if st.StrokeWidth <= 0 {
		return 1.5
	}
	return st.StrokeWidth
}

func opacityOf(st diagram.Style) float64 {
	if st.Opacity <= 0 || st.Opacity > 1 {
		return 1
	}
	return st.Opacity
}
