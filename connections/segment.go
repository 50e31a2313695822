package connections

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
)

// Axis is the orientation of a straight run.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the string representation of an Axis.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Perpendicular returns the other axis.
func (a Axis) Perpendicular() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Role says which part of a route a segment is.
type Role int

const (
	RoleLine        Role = iota // the single run of a straight edge
	RoleSourceStub              // stand-off leaving the source anchor
	RoleConnector               // fixed run between a stub and a corner
	RoleBend                    // adjustable interior run
	RoleTargetStub              // stand-off entering the target anchor
)

// String returns the string representation of a Role.
func (r Role) String() string {
	switch r {
	case RoleSourceStub:
		return "source-stub"
	case RoleConnector:
		return "connector"
	case RoleBend:
		return "bend"
	case RoleTargetStub:
		return "target-stub"
	default:
		return "line"
	}
}

// Segment is one straight run of a route. Segments are recomputed on every
// plan and never persisted.
type Segment struct {
	Start     geometry.Point
	End       geometry.Point
	Direction Axis
	Draggable bool
	Role      Role
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() geometry.Point {
	return s.Start.Midpoint(s.End)
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// DragAxis is the axis a pointer moves along to drag the segment: a run is
// pushed sideways, never along its own length.
func (s Segment) DragAxis() Axis {
	return s.Direction.Perpendicular()
}

func axisOf(a, b geometry.Point) Axis {
	if geometry.IsVertical(a, b) {
		return Vertical
	}
	return Horizontal
}

func newSegment(a, b geometry.Point, role Role) Segment {
	return Segment{Start: a, End: b, Direction: axisOf(a, b), Role: role, Draggable: role == RoleBend}
}

// stubSegment keeps a stub's axis tied to its anchor even when the stub
// has no length.
func stubSegment(a, b geometry.Point, dir geometry.Point, role Role) Segment {
	s := newSegment(a, b, role)
	if dir.Y != 0 {
		s.Direction = Vertical
	} else {
		s.Direction = Horizontal
	}
	return s
}

// ExtensionAllowance is the pixel range one unit of midpoint ratio spans
// on the given axis: the distance between the stand-off points, floored
// at min so the drag range never collapses.
func ExtensionAllowance(p1, p2 geometry.Point, axis Axis, min float64) float64 {
	span := p2.X - p1.X
	if axis == Vertical {
		span = p2.Y - p1.Y
	}
	return geometry.Max(geometry.Abs(span), min)
}

// StubHandle is the grab point on a stub for dragging an anchor's offset.
type StubHandle struct {
	End    diagram.End
	Point  geometry.Point
	Anchor diagram.Anchor
}
