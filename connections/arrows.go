package connections

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
)

// arrowSpread is the half-width of an arrow head relative to its length.
const arrowSpread = 0.5

// ArrowHead is the triangle drawn at one end of a route.
type ArrowHead struct {
	Type  diagram.ArrowType
	Tip   geometry.Point
	Left  geometry.Point
	Right geometry.Point
}

// Polygon returns the head's outline, tip first.
func (a ArrowHead) Polygon() []geometry.Point {
	return []geometry.Point{a.Tip, a.Left, a.Right}
}

// Filled reports whether the head should be filled rather than stroked.
func (a ArrowHead) Filled() bool {
	return a.Type == diagram.ArrowFilled
}

// ArrowHeads returns the heads requested by e for route r.
func ArrowHeads(e diagram.Edge, r Route) []ArrowHead {
	var heads []ArrowHead
	if e.StartArrow != nil {
		if h, ok := arrowHeadAt(r, diagram.EndSource, *e.StartArrow); ok {
			heads = append(heads, h)
		}
	}
	if e.EndArrow != nil {
		if h, ok := arrowHeadAt(r, diagram.EndTarget, *e.EndArrow); ok {
			heads = append(heads, h)
		}
	}
	return heads
}

func arrowHeadAt(r Route, end diagram.End, style diagram.Arrow) (ArrowHead, bool) {
	tip, from, ok := arrowTangent(r, end)
	if !ok {
		return ArrowHead{}, false
	}
	size := style.Size
	if size <= 0 {
		size = 8
	}

	dir := tip.Sub(from).Normalize()
	perp := geometry.Pt(-dir.Y, dir.X)
	base := tip.Sub(dir.Scale(size))
	return ArrowHead{
		Type:  style.Type,
		Tip:   tip,
		Left:  base.Add(perp.Scale(size * arrowSpread)),
		Right: base.Sub(perp.Scale(size * arrowSpread)),
	}, true
}

// arrowTangent finds the end point of the route and a distinct point behind
// it along the drawn path, so the head follows the final direction of travel.
func arrowTangent(r Route, end diagram.End) (tip, from geometry.Point, ok bool) {
	var pts []geometry.Point
	for _, c := range r.Commands {
		pts = append(pts, c.Pts...)
	}
	if len(pts) < 2 {
		return geometry.Point{}, geometry.Point{}, false
	}

	if end == diagram.EndSource {
		tip = pts[0]
		for _, p := range pts[1:] {
			if p != tip {
				return tip, p, true
			}
		}
		return tip, tip, false
	}

	tip = pts[len(pts)-1]
	for i := len(pts) - 2; i >= 0; i-- {
		if pts[i] != tip {
			return tip, pts[i], true
		}
	}
	return tip, tip, false
}
