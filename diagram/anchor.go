package diagram

import (
	"edgeflow/geometry"
	"fmt"
)

// Anchor names an attachment point on an element's box.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
	AnchorCenter Anchor = "center"
	AnchorAuto   Anchor = "auto"
)

// MaxInteractiveOffset bounds anchor offsets produced by dragging so the
// point never escapes round a corner.
const MaxInteractiveOffset = 0.45

// ParseAnchor converts a string to an Anchor. The empty string means auto.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case AnchorTop, AnchorBottom, AnchorLeft, AnchorRight, AnchorCenter, AnchorAuto:
		return Anchor(s), nil
	case "":
		return AnchorAuto, nil
	default:
		return "", fmt.Errorf("unknown anchor: %q", s)
	}
}

// IsCardinal reports whether the anchor names one of the four box sides.
func (a Anchor) IsCardinal() bool {
	switch a {
	case AnchorTop, AnchorBottom, AnchorLeft, AnchorRight:
		return true
	}
	return false
}

// IsHorizontal reports whether the anchor sits on a left or right side,
// i.e. an edge leaving it travels horizontally.
func (a Anchor) IsHorizontal() bool {
	return a == AnchorLeft || a == AnchorRight
}

// Direction returns the outward unit vector of a cardinal anchor.
// Center and auto have no fixed direction and return the zero vector.
func (a Anchor) Direction() geometry.Point {
	switch a {
	case AnchorTop:
		return geometry.Pt(0, -1)
	case AnchorBottom:
		return geometry.Pt(0, 1)
	case AnchorLeft:
		return geometry.Pt(-1, 0)
	case AnchorRight:
		return geometry.Pt(1, 0)
	}
	return geometry.Point{}
}

// Opposite returns the anchor on the facing side.
func (a Anchor) Opposite() Anchor {
	switch a {
	case AnchorTop:
		return AnchorBottom
	case AnchorBottom:
		return AnchorTop
	case AnchorLeft:
		return AnchorRight
	case AnchorRight:
		return AnchorLeft
	default:
		return a
	}
}

// AnchorToward picks the cardinal side facing along v: the axis with the
// larger magnitude wins, ties go to the vertical axis.
func AnchorToward(v geometry.Point) Anchor {
	if geometry.Abs(v.X) > geometry.Abs(v.Y) {
		if v.X < 0 {
			return AnchorLeft
		}
		return AnchorRight
	}
	if v.Y < 0 {
		return AnchorTop
	}
	return AnchorBottom
}

// RoutingMode selects how an edge path is drawn.
type RoutingMode string

const (
	RoutingStraight   RoutingMode = "straight"
	RoutingCurved     RoutingMode = "curved"
	RoutingOrthogonal RoutingMode = "orthogonal"
)

// ParseRoutingMode converts a string to a RoutingMode. The empty string means orthogonal.
func ParseRoutingMode(s string) (RoutingMode, error) {
	switch RoutingMode(s) {
	case RoutingStraight, RoutingCurved, RoutingOrthogonal:
		return RoutingMode(s), nil
	case "":
		return RoutingOrthogonal, nil
	default:
		return "", fmt.Errorf("unknown routing mode: %q", s)
	}
}

// Next cycles orthogonal -> straight -> curved -> orthogonal.
func (m RoutingMode) Next() RoutingMode {
	switch m {
	case RoutingOrthogonal:
		return RoutingStraight
	case RoutingStraight:
		return RoutingCurved
	default:
		return RoutingOrthogonal
	}
}
