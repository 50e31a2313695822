package connections

import "edgeflow/geometry"

// DefaultCurveSteps is the number of chords used per curve when flattening.
const DefaultCurveSteps = 16

// Flatten approximates commands with a polyline, splitting each curve into
// steps chords. Straight commands contribute their end points unchanged.
func Flatten(cmds []Command, steps int) []geometry.Point {
	if steps < 1 {
		steps = DefaultCurveSteps
	}

	var out []geometry.Point
	var pen geometry.Point
	for _, c := range cmds {
		switch c.Op {
		case OpMove, OpLine:
			out = append(out, c.End())
		case OpQuad:
			for i := 1; i <= steps; i++ {
				out = append(out, geometry.QuadAt(pen, c.Pts[0], c.Pts[1], float64(i)/float64(steps)))
			}
		case OpCubic:
			for i := 1; i <= steps; i++ {
				out = append(out, geometry.CubicAt(pen, c.Pts[0], c.Pts[1], c.Pts[2], float64(i)/float64(steps)))
			}
		}
		pen = c.End()
	}
	return out
}

// Polyline returns the route flattened for drawing or hit testing.
func (r Route) Polyline() []geometry.Point {
	return Flatten(r.Commands, DefaultCurveSteps)
}
