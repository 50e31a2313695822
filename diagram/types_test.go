package diagram

import (
	"edgeflow/geometry"
	"strings"
	"testing"
)

func TestParseAnchor(t *testing.T) {
	for _, s := range []string{"top", "bottom", "left", "right", "center", "auto"} {
		a, err := ParseAnchor(s)
		if err != nil {
			t.Errorf("ParseAnchor(%q) returned error: %v", s, err)
		}
		if string(a) != s {
			t.Errorf("ParseAnchor(%q) = %q", s, a)
		}
	}
	if a, _ := ParseAnchor(""); a != AnchorAuto {
		t.Errorf("empty anchor should default to auto, got %q", a)
	}
	if _, err := ParseAnchor("dynamic"); err == nil {
		t.Error("expected error for unsupported anchor")
	}
}

func TestAnchorToward(t *testing.T) {
	tests := []struct {
		v    geometry.Point
		want Anchor
	}{
		{geometry.Pt(10, 2), AnchorRight},
		{geometry.Pt(-10, 2), AnchorLeft},
		{geometry.Pt(1, 5), AnchorBottom},
		{geometry.Pt(1, -5), AnchorTop},
		{geometry.Pt(5, 5), AnchorBottom}, // tie goes vertical
		{geometry.Pt(0, 0), AnchorBottom},
	}
	for _, tt := range tests {
		if got := AnchorToward(tt.v); got != tt.want {
			t.Errorf("AnchorToward(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestAnchorDirection(t *testing.T) {
	if d := AnchorLeft.Direction(); d != geometry.Pt(-1, 0) {
		t.Errorf("left direction: got %v", d)
	}
	if d := AnchorTop.Direction(); d != geometry.Pt(0, -1) {
		t.Errorf("top direction: got %v", d)
	}
	if !AnchorAuto.Direction().IsZero() {
		t.Error("auto has no fixed direction")
	}
	if AnchorTop.Opposite() != AnchorBottom || AnchorRight.Opposite() != AnchorLeft {
		t.Error("Opposite returned wrong side")
	}
}

func TestRoutingModeCycle(t *testing.T) {
	m := RoutingOrthogonal
	seen := []RoutingMode{m}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	want := []RoutingMode{RoutingOrthogonal, RoutingStraight, RoutingCurved, RoutingOrthogonal}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("cycle step %d: got %s, want %s", i, seen[i], want[i])
		}
	}
	if _, err := ParseRoutingMode("spline"); err == nil {
		t.Error("expected error for unknown routing mode")
	}
}

func TestEdgeDefaults(t *testing.T) {
	var e Edge
	if e.Ratio() != 0.5 {
		t.Errorf("default ratio: got %v, want 0.5", e.Ratio())
	}
	if e.Radius() != 8 {
		t.Errorf("default radius: got %v, want 8", e.Radius())
	}
	if e.Mode() != RoutingOrthogonal {
		t.Errorf("default mode: got %s", e.Mode())
	}

	e.SetRadius(0)
	if e.Radius() != 0 {
		t.Errorf("explicit zero radius must be kept, got %v", e.Radius())
	}
	e.SetRatio(5)
	if e.Ratio() != 5 {
		t.Errorf("out-of-range ratio must be kept, got %v", e.Ratio())
	}
}

func TestDiagramClone(t *testing.T) {
	d := New("clone")
	d.Elements = []Element{
		{ID: "a", Type: ElementContainer, ChildIDs: []string{"b"}},
		{ID: "b", Type: ElementNode},
	}
	e := Edge{ID: "e", Source: ConnectionPoint{ElementID: "a"}, Target: ConnectionPoint{ElementID: "b"}}
	e.SetRatio(0.3)
	e.Label = &EdgeLabel{Text: "calls", Position: 0.5}
	d.Edges = []Edge{e}

	clone := d.Clone()
	*clone.Edges[0].MidpointRatio = 0.9
	clone.Edges[0].Label.Text = "changed"
	clone.Elements[0].ChildIDs[0] = "z"

	if d.Edges[0].Ratio() != 0.3 {
		t.Errorf("clone shares ratio pointer: original now %v", d.Edges[0].Ratio())
	}
	if d.Edges[0].Label.Text != "calls" {
		t.Error("clone shares label pointer")
	}
	if d.Elements[0].ChildIDs[0] != "b" {
		t.Error("clone shares child id slice")
	}

	var nilDiagram *Diagram
	if nilDiagram.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestEnsureUniqueIDs(t *testing.T) {
	d := &Diagram{
		Elements: []Element{
			{ID: "node-0", Type: ElementNode},
			{ID: "", Type: ElementNode},
			{ID: "node-0", Type: ElementText},
		},
		Edges: []Edge{
			{ID: "edge-0"},
			{ID: "edge-0"},
			{ID: ""},
		},
	}
	EnsureUniqueIDs(d)

	seen := make(map[string]bool)
	for _, el := range d.Elements {
		if el.ID == "" || seen[el.ID] {
			t.Errorf("element id %q is empty or duplicated", el.ID)
		}
		seen[el.ID] = true
	}
	for _, e := range d.Edges {
		if e.ID == "" || seen[e.ID] {
			t.Errorf("edge id %q is empty or duplicated", e.ID)
		}
		seen[e.ID] = true
	}
	if d.Elements[0].ID != "node-0" || d.Edges[0].ID != "edge-0" {
		t.Error("existing unique ids should be preserved")
	}
	if d.Elements[1].ID != "node-1" {
		t.Errorf("blank node id: got %q, want node-1", d.Elements[1].ID)
	}
	if d.Elements[2].ID != "text-0" {
		t.Errorf("duplicate text id: got %q, want text-0", d.Elements[2].ID)
	}
}

func TestDecodeKeepsStoredRatio(t *testing.T) {
	src := `{
		"elements": [
			{"id": "a", "type": "node", "position": {"x": 0, "y": 0}, "size": {"width": 100, "height": 60}},
			{"id": "b", "type": "node", "position": {"x": 300, "y": 0}, "size": {"width": 100, "height": 60}}
		],
		"edges": [
			{"id": "e1", "source": {"elementId": "a", "anchor": "right"}, "target": {"elementId": "b", "anchor": "left"},
			 "routing": "orthogonal", "midpointRatio": 5.0},
			{"id": "e2", "source": {"elementId": "a", "anchor": "auto"}, "target": {"elementId": "b", "anchor": "auto"},
			 "routing": "curved"}
		]
	}`
	d, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Version != Version {
		t.Errorf("missing version should default to %s, got %q", Version, d.Version)
	}
	if got := d.Edges[0].Ratio(); got != 5 {
		t.Errorf("stored ratio must not be clamped on load: got %v", got)
	}
	if got := d.Edges[1].Ratio(); got != 0.5 {
		t.Errorf("absent ratio should default to 0.5, got %v", got)
	}
	box, ok := d.Box("b")
	if !ok || box != geometry.NewBox(300, 0, 100, 60) {
		t.Errorf("Box(b) = %+v, %v", box, ok)
	}
	if _, ok := d.Box("missing"); ok {
		t.Error("dangling id should not resolve")
	}
}
