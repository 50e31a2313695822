// Package interaction turns pointer drags into routing record edits: a
// segment drag adjusts an edge's midpoint ratio and a stub handle drag
// adjusts an anchor offset.
package interaction

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"errors"
	"fmt"
)

var (
	ErrNotDraggable = errors.New("not draggable")
	ErrDragActive   = errors.New("a drag is already in progress")
	ErrNoSession    = errors.New("no drag in progress")
	ErrUnknownEdge  = errors.New("unknown edge")
)

// Kind identifies what a drag session edits.
type Kind int

const (
	KindBend   Kind = iota // midpoint ratio of an orthogonal bend
	KindHandle             // offset of an anchor
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if k == KindHandle {
		return "handle"
	}
	return "bend"
}

// Session tracks one pointer drag from press to release. Every method
// returns the value the routing record should hold afterwards.
type Session interface {
	Kind() Kind
	// Update recomputes the value for the pointer's current position.
	Update(pointer geometry.Point) float64
	// End finishes the drag and returns the final value.
	End() float64
	// Cancel abandons the drag and returns the starting value.
	Cancel() float64
}

// axisDelta is the pointer movement along axis.
func axisDelta(axis connections.Axis, from, to geometry.Point) float64 {
	if axis == connections.Vertical {
		return to.Y - from.Y
	}
	return to.X - from.X
}

type segmentDrag struct {
	axis      connections.Axis
	origin    geometry.Point
	allowance float64
	start     float64
	current   float64
}

// BeginSegmentDrag starts dragging the draggable bend of route. Movement
// across the segment maps onto the midpoint ratio at one unit per twice
// the route's extension allowance, clamped to [0, 1].
func BeginSegmentDrag(route connections.Route, segIndex int, startRatio float64, pointer geometry.Point) (Session, error) {
	if segIndex < 0 || segIndex >= len(route.Segments) {
		return nil, fmt.Errorf("segment %d out of range: %w", segIndex, ErrNotDraggable)
	}
	seg := route.Segments[segIndex]
	if !seg.Draggable || route.Allowance <= 0 {
		return nil, fmt.Errorf("%s segment %d: %w", seg.Role, segIndex, ErrNotDraggable)
	}
	if !geometry.Finite(startRatio) {
		startRatio = diagram.DefaultMidpointRatio
	}
	return &segmentDrag{
		axis:      seg.DragAxis(),
		origin:    pointer,
		allowance: route.Allowance,
		start:     startRatio,
		current:   startRatio,
	}, nil
}

func (s *segmentDrag) Kind() Kind { return KindBend }

func (s *segmentDrag) Update(pointer geometry.Point) float64 {
	delta := axisDelta(s.axis, s.origin, pointer)
	s.current = geometry.Clamp(s.start+delta/(2*s.allowance), 0, 1)
	return s.current
}

func (s *segmentDrag) End() float64 { return s.current }

func (s *segmentDrag) Cancel() float64 {
	s.current = s.start
	return s.start
}

type offsetDrag struct {
	axis    connections.Axis
	origin  geometry.Point
	length  float64
	start   float64
	current float64
}

// BeginOffsetDrag starts sliding a cardinal anchor along its box edge.
// Movement along the edge maps onto the offset as a fraction of the edge
// length, clamped to ±MaxInteractiveOffset. Center and auto anchors have
// no edge to slide along.
func BeginOffsetDrag(anchor diagram.Anchor, box geometry.Box, startOffset float64, pointer geometry.Point) (Session, error) {
	if !anchor.IsCardinal() {
		return nil, fmt.Errorf("%s anchor: %w", anchor, ErrNotDraggable)
	}
	if !geometry.Finite(startOffset) {
		startOffset = 0
	}
	d := &offsetDrag{
		axis:    connections.Horizontal,
		origin:  pointer,
		length:  box.Size.Width,
		start:   startOffset,
		current: startOffset,
	}
	if anchor.IsHorizontal() {
		d.axis = connections.Vertical
		d.length = box.Size.Height
	}
	return d, nil
}

func (d *offsetDrag) Kind() Kind { return KindHandle }

func (d *offsetDrag) Update(pointer geometry.Point) float64 {
	if d.length <= 0 {
		return d.current
	}
	delta := axisDelta(d.axis, d.origin, pointer)
	d.current = geometry.Clamp(d.start+delta/d.length,
		-diagram.MaxInteractiveOffset, diagram.MaxInteractiveOffset)
	return d.current
}

func (d *offsetDrag) End() float64 { return d.current }

func (d *offsetDrag) Cancel() float64 {
	d.current = d.start
	return d.start
}
