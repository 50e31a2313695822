// Package labels positions edge labels along planned routes.
package labels

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"unicode/utf8"
)

// Label box metrics, matching the editor's label background.
const (
	CharWidth  = 7.0
	LineHeight = 16.0
)

// Place returns the point at fraction t of the polyline's arclength.
// Out-of-range t pins to the first or last vertex exactly.
func Place(points []geometry.Point, t float64) geometry.Point {
	switch len(points) {
	case 0:
		return geometry.Point{}
	case 1:
		return points[0]
	}
	if !(t > 0) {
		return points[0]
	}
	if t >= 1 {
		return points[len(points)-1]
	}

	lengths := make([]float64, len(points)-1)
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		lengths[i] = points[i].Distance(points[i+1])
		total += lengths[i]
	}
	if total == 0 {
		return points[0]
	}

	target := t * total
	walked := 0.0
	for i, l := range lengths {
		if l > 0 && walked+l >= target {
			return points[i].Lerp(points[i+1], (target-walked)/l)
		}
		walked += l
	}
	return points[len(points)-1]
}

// PlaceOnRoute positions label on route. Curved routes are flattened first
// so the label sits on the drawn curve rather than its chord.
func PlaceOnRoute(route connections.Route, label *diagram.EdgeLabel) geometry.Point {
	t := diagram.DefaultLabelPosition
	if label != nil {
		t = label.Position
	}
	if route.Mode == diagram.RoutingCurved {
		return Place(route.Polyline(), t)
	}
	return Place(route.Points, t)
}

// Box returns the background rectangle for text centred on at.
func Box(text string, at geometry.Point) geometry.Box {
	w := float64(utf8.RuneCountInString(text)) * CharWidth
	return geometry.NewBox(at.X-w/2, at.Y-LineHeight/2, w, LineHeight)
}
