package connections

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
)

// ResolveAnchor turns an abstract anchor on box into a canvas point.
//
// Cardinal anchors sit on the midpoint of their side, displaced along that
// side by offset*width (top/bottom) or offset*height (left/right). Center
// ignores offset. Auto picks a side by comparing the axis deltas toward
// otherCenter, so it is recomputed, and may flip sides, whenever either
// endpoint moves.
func ResolveAnchor(box geometry.Box, anchor diagram.Anchor, offset float64, otherCenter geometry.Point) geometry.Point {
	if box.Size.Width == 0 && box.Size.Height == 0 {
		return box.Position
	}

	side := EffectiveAnchor(box, anchor, otherCenter)
	if side == diagram.AnchorCenter {
		return box.Center()
	}
	if anchor == diagram.AnchorAuto || !geometry.Finite(offset) {
		offset = 0
	}

	c := box.Center()
	switch side {
	case diagram.AnchorTop:
		return geometry.Pt(c.X+offset*box.Size.Width, box.Position.Y)
	case diagram.AnchorBottom:
		return geometry.Pt(c.X+offset*box.Size.Width, box.Bottom())
	case diagram.AnchorLeft:
		return geometry.Pt(box.Position.X, c.Y+offset*box.Size.Height)
	default:
		return geometry.Pt(box.Right(), c.Y+offset*box.Size.Height)
	}
}

// EffectiveAnchor returns the anchor actually used on box: cardinal anchors
// and center pass through, auto resolves to the side facing otherCenter.
func EffectiveAnchor(box geometry.Box, anchor diagram.Anchor, otherCenter geometry.Point) diagram.Anchor {
	switch anchor {
	case diagram.AnchorTop, diagram.AnchorBottom, diagram.AnchorLeft, diagram.AnchorRight, diagram.AnchorCenter:
		return anchor
	}
	return diagram.AnchorToward(otherCenter.Sub(box.Center()))
}

// Endpoints is a fully resolved connection: concrete points plus the
// anchors they were resolved from.
type Endpoints struct {
	Source       geometry.Point
	Target       geometry.Point
	SourceAnchor diagram.Anchor // effective; never auto
	TargetAnchor diagram.Anchor // effective; never auto
	SourceBox    geometry.Box
	TargetBox    geometry.Box
}

// ResolveEndpoints resolves both ends of an edge. Each auto anchor looks at
// the other box's center.
func ResolveEndpoints(src, dst geometry.Box, sp, tp diagram.ConnectionPoint) Endpoints {
	sc, tc := src.Center(), dst.Center()
	return Endpoints{
		Source:       ResolveAnchor(src, sp.Anchor, sp.Offset, tc),
		Target:       ResolveAnchor(dst, tp.Anchor, tp.Offset, sc),
		SourceAnchor: EffectiveAnchor(src, sp.Anchor, tc),
		TargetAnchor: EffectiveAnchor(dst, tp.Anchor, sc),
		SourceBox:    src,
		TargetBox:    dst,
	}
}

// AnchorAt infers the anchor a user meant when dropping a connection at p
// inside box: the outer 30% bands select a side, the middle means auto.
func AnchorAt(box geometry.Box, p geometry.Point) diagram.Anchor {
	if box.Size.Width <= 0 || box.Size.Height <= 0 {
		return diagram.AnchorAuto
	}
	relX := (p.X - box.Position.X) / box.Size.Width
	relY := (p.Y - box.Position.Y) / box.Size.Height

	switch {
	case relX < 0.3:
		return diagram.AnchorLeft
	case relX > 0.7:
		return diagram.AnchorRight
	case relY < 0.3:
		return diagram.AnchorTop
	case relY > 0.7:
		return diagram.AnchorBottom
	}
	return diagram.AnchorAuto
}
