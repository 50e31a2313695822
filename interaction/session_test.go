package interaction

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"errors"
	"math"
	"testing"
)

func horizontalRoute() connections.Route {
	// allowance 160, bend at x=200
	return connections.PlanPath(geometry.Pt(100, 30), geometry.Pt(300, 230),
		diagram.AnchorRight, diagram.AnchorLeft, diagram.RoutingOrthogonal, 0.5, 8)
}

func TestBeginSegmentDrag(t *testing.T) {
	route := horizontalRoute()
	idx, ok := route.DraggableSegment()
	if !ok {
		t.Fatal("route has no draggable segment")
	}
	start := route.Segments[idx].Midpoint()

	s, err := BeginSegmentDrag(route, idx, 0.5, start)
	if err != nil {
		t.Fatalf("BeginSegmentDrag failed: %v", err)
	}
	if s.Kind() != KindBend {
		t.Errorf("kind: got %s", s.Kind())
	}

	tests := []struct {
		name  string
		delta geometry.Point
		want  float64
	}{
		{"no movement", geometry.Pt(0, 0), 0.5},
		{"along the segment is ignored", geometry.Pt(0, 80), 0.5},
		{"right by one allowance", geometry.Pt(160, 0), 1},
		{"left by half an allowance", geometry.Pt(-80, 0), 0.25},
		{"clamped low", geometry.Pt(-1000, 0), 0},
		{"clamped high", geometry.Pt(1000, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Update(start.Add(tt.delta)); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	s.Update(start.Add(geometry.Pt(32, 0)))
	if got := s.End(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("End: got %v, want 0.6", got)
	}
	if got := s.Cancel(); got != 0.5 {
		t.Errorf("Cancel: got %v, want the start value", got)
	}
}

// Dragging by d pixels and feeding the resulting ratio back to the planner
// moves the bend by d pixels.
func TestSegmentDragRoundTrip(t *testing.T) {
	route := horizontalRoute()
	idx, _ := route.DraggableSegment()
	before := route.Segments[idx].Start.X

	s, _ := BeginSegmentDrag(route, idx, 0.5, geometry.Pt(before, 100))
	ratio := s.Update(geometry.Pt(before+48, 120))

	after := connections.PlanPath(geometry.Pt(100, 30), geometry.Pt(300, 230),
		diagram.AnchorRight, diagram.AnchorLeft, diagram.RoutingOrthogonal, ratio, 8)
	if got := after.Segments[idx].Start.X; math.Abs(got-(before+48)) > 1e-9 {
		t.Errorf("bend moved to %v, want %v", got, before+48)
	}
}

func TestBeginSegmentDrag_VerticalRoute(t *testing.T) {
	route := connections.PlanPath(geometry.Pt(50, 60), geometry.Pt(50, 300),
		diagram.AnchorBottom, diagram.AnchorTop, diagram.RoutingOrthogonal, 0.5, 8)
	idx, _ := route.DraggableSegment()
	s, err := BeginSegmentDrag(route, idx, 0.5, geometry.Pt(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	// allowance is max(200, 100); sideways motion does nothing
	if got := s.Update(geometry.Pt(500, 100)); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("got %v, want 0.75", got)
	}
}

func TestBeginSegmentDrag_Errors(t *testing.T) {
	route := horizontalRoute()
	if _, err := BeginSegmentDrag(route, 0, 0.5, geometry.Point{}); !errors.Is(err, ErrNotDraggable) {
		t.Errorf("stub: expected ErrNotDraggable, got %v", err)
	}
	if _, err := BeginSegmentDrag(route, 99, 0.5, geometry.Point{}); !errors.Is(err, ErrNotDraggable) {
		t.Errorf("out of range: expected ErrNotDraggable, got %v", err)
	}

	mixed := connections.PlanPath(geometry.Pt(100, 30), geometry.Pt(350, 200),
		diagram.AnchorRight, diagram.AnchorTop, diagram.RoutingOrthogonal, 0.5, 8)
	for i := range mixed.Segments {
		if _, err := BeginSegmentDrag(mixed, i, 0.5, geometry.Point{}); err == nil {
			t.Errorf("mixed route segment %d should not be draggable", i)
		}
	}
}

func TestBeginSegmentDrag_NonFiniteStart(t *testing.T) {
	route := horizontalRoute()
	idx, _ := route.DraggableSegment()
	s, _ := BeginSegmentDrag(route, idx, math.NaN(), geometry.Point{})
	if got := s.Cancel(); got != 0.5 {
		t.Errorf("NaN start should fall back to 0.5, got %v", got)
	}
}

func TestBeginOffsetDrag(t *testing.T) {
	box := geometry.NewBox(0, 0, 100, 60)

	tests := []struct {
		name   string
		anchor diagram.Anchor
		start  float64
		delta  geometry.Point
		want   float64
	}{
		{"top follows x", diagram.AnchorTop, 0, geometry.Pt(25, 40), 0.25},
		{"bottom follows x", diagram.AnchorBottom, 0.1, geometry.Pt(-20, 0), -0.1},
		{"left follows y", diagram.AnchorLeft, 0, geometry.Pt(90, 15), 0.25},
		{"right follows y", diagram.AnchorRight, 0, geometry.Pt(0, -12), -0.2},
		{"clamped high", diagram.AnchorTop, 0, geometry.Pt(500, 0), 0.45},
		{"clamped low", diagram.AnchorLeft, 0, geometry.Pt(0, -500), -0.45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := geometry.Pt(10, 10)
			s, err := BeginOffsetDrag(tt.anchor, box, tt.start, origin)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Update(origin.Add(tt.delta)); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if s.Kind() != KindHandle {
				t.Errorf("kind: got %s", s.Kind())
			}
		})
	}
}

func TestBeginOffsetDrag_Errors(t *testing.T) {
	box := geometry.NewBox(0, 0, 100, 60)
	for _, a := range []diagram.Anchor{diagram.AnchorCenter, diagram.AnchorAuto} {
		if _, err := BeginOffsetDrag(a, box, 0, geometry.Point{}); !errors.Is(err, ErrNotDraggable) {
			t.Errorf("%s: expected ErrNotDraggable, got %v", a, err)
		}
	}
}

func TestBeginOffsetDrag_ZeroLengthEdge(t *testing.T) {
	flat := geometry.NewBox(0, 0, 0, 60)
	s, err := BeginOffsetDrag(diagram.AnchorTop, flat, 0.2, geometry.Point{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Update(geometry.Pt(40, 40)); got != 0.2 {
		t.Errorf("zero-width top edge should keep the offset, got %v", got)
	}
}
