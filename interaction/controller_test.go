package interaction_test

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/editor"
	"edgeflow/geometry"
	"edgeflow/interaction"
	"errors"
	"math"
	"testing"
)

func setup(t *testing.T) (*editor.Store, *interaction.Controller, string) {
	t.Helper()
	store := editor.NewStore(nil, 20)
	a := store.AddNode("A", geometry.Pt(0, 0))
	b := store.AddNode("B", geometry.Pt(300, 200))
	id, err := store.AddEdge(
		diagram.ConnectionPoint{ElementID: a, Anchor: diagram.AnchorRight},
		diagram.ConnectionPoint{ElementID: b, Anchor: diagram.AnchorLeft})
	if err != nil {
		t.Fatal(err)
	}
	return store, interaction.NewController(store), id
}

func currentRoute(t *testing.T, store *editor.Store, id string) connections.Route {
	t.Helper()
	e, _ := store.Edge(id)
	route, ok := connections.NewRouter(connections.DefaultOptions(), 0).Route(store, e)
	if !ok {
		t.Fatalf("edge %s did not route", id)
	}
	return route
}

func TestController_BendDrag(t *testing.T) {
	store, ctl, id := setup(t)
	route := currentRoute(t, store, id)
	idx, _ := route.DraggableSegment()
	grab := route.Segments[idx].Midpoint()

	if err := ctl.BeginBend(id, route, idx, grab); err != nil {
		t.Fatalf("BeginBend failed: %v", err)
	}
	if active, kind, ok := ctl.Active(); !ok || active != id || kind != interaction.KindBend {
		t.Errorf("Active: got %q %s %v", active, kind, ok)
	}

	// Live preview writes every update through
	v, err := ctl.Update(grab.Add(geometry.Pt(-35, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if e, _ := store.Edge(id); e.Ratio() != v {
		t.Errorf("store not updated during drag: got %v, want %v", e.Ratio(), v)
	}

	final, err := ctl.End()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(final-0.375) > 1e-9 {
		t.Errorf("final ratio: got %v, want 0.375", final)
	}
	if _, _, ok := ctl.Active(); ok {
		t.Error("no drag should be active after End")
	}

	// The whole drag is one undo step
	store.Undo()
	if e, _ := store.Edge(id); e.MidpointRatio != nil {
		t.Errorf("undo should restore the default ratio, got %v", e.Ratio())
	}
}

func TestController_SingleActiveDrag(t *testing.T) {
	store, ctl, id := setup(t)
	route := currentRoute(t, store, id)
	idx, _ := route.DraggableSegment()

	if err := ctl.BeginBend(id, route, idx, geometry.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := ctl.BeginHandle(id, diagram.EndSource, geometry.Point{}); !errors.Is(err, interaction.ErrDragActive) {
		t.Errorf("expected ErrDragActive, got %v", err)
	}
	if _, err := ctl.End(); err != nil {
		t.Fatal(err)
	}
	if _, err := ctl.Update(geometry.Point{}); !errors.Is(err, interaction.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if _, err := ctl.Cancel(); !errors.Is(err, interaction.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestController_HandleDragCancel(t *testing.T) {
	store, ctl, id := setup(t)
	undoBefore := store.CanUndo()

	if err := ctl.BeginHandle(id, diagram.EndTarget, geometry.Pt(300, 230)); err != nil {
		t.Fatalf("BeginHandle failed: %v", err)
	}
	v, _ := ctl.Update(geometry.Pt(300, 245))
	if math.Abs(v-0.25) > 1e-9 {
		t.Errorf("offset: got %v, want 0.25", v)
	}
	if e, _ := store.Edge(id); e.Target.Offset != v {
		t.Errorf("store offset: got %v", e.Target.Offset)
	}

	got, err := ctl.Cancel()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Cancel should report the start value, got %v", got)
	}
	if e, _ := store.Edge(id); e.Target.Offset != 0 {
		t.Errorf("Cancel should restore the offset, got %v", e.Target.Offset)
	}

	// The cancelled drag leaves no undo step behind
	store.Undo()
	if _, ok := store.Edge(id); ok && undoBefore {
		t.Error("undo after a cancelled drag should revert the edge creation")
	}
}

func TestController_UnchangedDragLeavesNoUndoPoint(t *testing.T) {
	store, ctl, id := setup(t)
	route := currentRoute(t, store, id)
	idx, _ := route.DraggableSegment()
	grab := route.Segments[idx].Midpoint()

	// Press and release on the bend without moving
	if err := ctl.BeginBend(id, route, idx, grab); err != nil {
		t.Fatal(err)
	}
	if _, err := ctl.Update(grab); err != nil {
		t.Fatal(err)
	}
	if _, err := ctl.End(); err != nil {
		t.Fatal(err)
	}
	if e, _ := store.Edge(id); e.MidpointRatio != nil {
		t.Errorf("unchanged drag should keep the stored record, got %v", e.Ratio())
	}

	store.Undo()
	if _, ok := store.Edge(id); ok {
		t.Error("undo after an unchanged drag should revert the edge creation")
	}
}

func TestController_CancelKeepsRedo(t *testing.T) {
	store, ctl, id := setup(t)
	// An edge to undo, so there is something to redo
	e, _ := store.Edge(id)
	extra, err := store.AddEdge(
		diagram.ConnectionPoint{ElementID: e.Target.ElementID, Anchor: diagram.AnchorTop},
		diagram.ConnectionPoint{ElementID: e.Source.ElementID, Anchor: diagram.AnchorBottom})
	if err != nil {
		t.Fatal(err)
	}
	store.Undo()

	route := currentRoute(t, store, id)
	idx, _ := route.DraggableSegment()
	grab := route.Segments[idx].Midpoint()
	if err := ctl.BeginBend(id, route, idx, grab); err != nil {
		t.Fatal(err)
	}
	ctl.Update(grab.Add(geometry.Pt(70, 0)))
	if _, err := ctl.Cancel(); err != nil {
		t.Fatal(err)
	}

	if !store.Redo() {
		t.Fatal("cancelled drag destroyed the redo stack")
	}
	if _, ok := store.Edge(extra); !ok {
		t.Errorf("redo should restore %s", extra)
	}
}

func TestController_Errors(t *testing.T) {
	store, ctl, id := setup(t)

	if err := ctl.BeginHandle("missing", diagram.EndSource, geometry.Point{}); !errors.Is(err, interaction.ErrUnknownEdge) {
		t.Errorf("expected ErrUnknownEdge, got %v", err)
	}

	store.UpdateEdge(id, func(e *diagram.Edge) { e.Source.Anchor = diagram.AnchorAuto })
	if err := ctl.BeginHandle(id, diagram.EndSource, geometry.Point{}); !errors.Is(err, interaction.ErrNotDraggable) {
		t.Errorf("auto anchor: expected ErrNotDraggable, got %v", err)
	}
	if _, _, ok := ctl.Active(); ok {
		t.Error("a failed begin must not leave a drag active")
	}
}
