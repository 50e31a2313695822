package connections

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
	"testing"
)

func scenarioDiagram() *diagram.Diagram {
	d := diagram.New("scenario")
	d.Elements = []diagram.Element{
		{ID: "a", Type: diagram.ElementNode, Position: geometry.Pt(0, 0), Size: geometry.Size{Width: 100, Height: 60}},
		{ID: "b", Type: diagram.ElementContainer, Position: geometry.Pt(300, 0), Size: geometry.Size{Width: 100, Height: 60}},
	}
	d.Edges = []diagram.Edge{
		{
			ID:      "ortho",
			Source:  diagram.ConnectionPoint{ElementID: "a", Anchor: diagram.AnchorRight},
			Target:  diagram.ConnectionPoint{ElementID: "b", Anchor: diagram.AnchorLeft},
			Routing: diagram.RoutingOrthogonal,
		},
		{
			ID:      "line",
			Source:  diagram.ConnectionPoint{ElementID: "a", Anchor: diagram.AnchorAuto},
			Target:  diagram.ConnectionPoint{ElementID: "b", Anchor: diagram.AnchorAuto},
			Routing: diagram.RoutingStraight,
		},
		{
			ID:     "dangling",
			Source: diagram.ConnectionPoint{ElementID: "a", Anchor: diagram.AnchorTop},
			Target: diagram.ConnectionPoint{ElementID: "gone", Anchor: diagram.AnchorTop},
		},
	}
	return d
}

func TestRouter_RouteAll(t *testing.T) {
	r := NewRouter(DefaultOptions(), 16)
	routes := r.RouteAll(scenarioDiagram())

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes (dangling skipped), got %d", len(routes))
	}
	if _, ok := routes["dangling"]; ok {
		t.Error("dangling edge should not be routed")
	}
	if got := routes["line"].Path; got != "M 100,30 L 300,30" {
		t.Errorf("auto straight path: got %q", got)
	}
	ortho := routes["ortho"]
	idx, ok := ortho.DraggableSegment()
	if !ok || ortho.Segments[idx].Start.X != 200 {
		t.Errorf("orthogonal bend should sit at x=200: %+v", ortho.Segments)
	}
}

func TestRouter_CacheReuse(t *testing.T) {
	r := NewRouter(DefaultOptions(), 16)
	d := scenarioDiagram()

	first, _ := r.Route(d, d.Edges[0])
	second, _ := r.Route(d, d.Edges[0])
	if first.Path != second.Path {
		t.Error("cached route differs from planned route")
	}
	hits, misses, _, _ := r.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}

	// Moving an endpoint changes the key
	d.Elements[1].Position = geometry.Pt(300, 200)
	moved, _ := r.Route(d, d.Edges[0])
	if moved.Path == first.Path {
		t.Error("route should be recomputed after the target moved")
	}

	// Changing the ratio changes the key too
	d.Edges[0].SetRatio(0)
	shifted, _ := r.Route(d, d.Edges[0])
	idx, _ := shifted.DraggableSegment()
	if shifted.Segments[idx].Start.X != 40 {
		t.Errorf("ratio 0 should put the bend at x=40, got %v", shifted.Segments[idx].Start.X)
	}
}

func TestRouter_WithoutCache(t *testing.T) {
	r := NewRouter(DefaultOptions(), 0)
	d := scenarioDiagram()
	if _, ok := r.Route(d, d.Edges[0]); !ok {
		t.Fatal("route failed without cache")
	}
	if r.CacheStats() != "RouteCache[disabled]" {
		t.Errorf("CacheStats: got %q", r.CacheStats())
	}
}
