package connections

import (
	"edgeflow/geometry"
)

// minVisibleRadius is the smallest corner radius worth drawing as a curve.
const minVisibleRadius = 1.0

// Corner is the rounding decision made for one interior vertex.
type Corner struct {
	Vertex  geometry.Point
	Radius  float64        // effective radius, 0 when the join is straight
	Start   geometry.Point // where the curve leaves the incoming run
	End     geometry.Point // where the curve joins the outgoing run
	Rounded bool
}

// EffectiveRadius clamps a requested radius to half the shorter of the two
// runs meeting at vertex, so a curve never passes the midpoint of either.
func EffectiveRadius(prev, vertex, next geometry.Point, requested float64) float64 {
	if !geometry.Finite(requested) || requested <= 0 {
		return 0
	}
	shorter := geometry.Min(prev.Distance(vertex), vertex.Distance(next))
	return geometry.Min(requested, shorter/2)
}

// roundCorner decides how the vertex between prev and next is joined.
// Collinear runs and radii under a pixel produce a straight join.
func roundCorner(prev, vertex, next geometry.Point, requested float64) Corner {
	c := Corner{Vertex: vertex, Start: vertex, End: vertex}

	in := vertex.Sub(prev)
	out := next.Sub(vertex)
	if in.IsZero() || out.IsZero() || geometry.Abs(in.Cross(out)) <= geometry.Epsilon {
		return c
	}

	r := EffectiveRadius(prev, vertex, next, requested)
	if r < minVisibleRadius {
		return c
	}

	c.Radius = r
	c.Rounded = true
	c.Start = vertex.Sub(in.Normalize().Scale(r))
	c.End = vertex.Add(out.Normalize().Scale(r))
	return c
}

// roundedPath strokes points as a polyline whose interior vertices are
// replaced by quadratic curves of at most radius.
func roundedPath(points []geometry.Point, radius float64) ([]Command, []Corner) {
	var b pathBuilder
	if len(points) == 0 {
		return nil, nil
	}
	b.moveTo(points[0])
	if len(points) == 1 {
		return b.cmds, nil
	}

	corners := make([]Corner, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		c := roundCorner(points[i-1], points[i], points[i+1], radius)
		corners = append(corners, c)
		if c.Rounded {
			b.lineTo(c.Start)
			b.quadTo(c.Vertex, c.End)
		} else {
			b.lineTo(c.Vertex)
		}
	}
	b.lineTo(points[len(points)-1])
	return b.cmds, corners
}
