// Package editor holds the document being edited: element and edge
// operations with undo/redo.
package editor

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"edgeflow/logging"
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrNotFound is returned for element or edge ids not in the document.
var ErrNotFound = errors.New("not found")

// Default sizes for new elements.
var (
	DefaultNodeSize = geometry.Size{Width: 120, Height: 60}
	DefaultTextSize = geometry.Size{Width: 200, Height: 30}
)

// DefaultEdgeStyle is the paint given to new edges.
var DefaultEdgeStyle = diagram.Style{Stroke: "#333333", StrokeWidth: 1.5, Opacity: 1}

// Store owns a diagram. Every structural change records an undo point
// first; drag previews write through UpdateEdge after a single Snapshot.
type Store struct {
	mu      sync.RWMutex
	doc     *diagram.Diagram
	history *StructHistory
	changed bool

	edgeRadius float64 // corner radius given to new edges

	// changedBeforeSnapshot is the changed flag DiscardSnapshot restores.
	changedBeforeSnapshot bool
}

// NewStore wraps d. A nil d starts an empty diagram.
func NewStore(d *diagram.Diagram, historySize int) *Store {
	if d == nil {
		d = diagram.New("Untitled Diagram")
	}
	return &Store{doc: d, history: NewStructHistory(historySize), edgeRadius: diagram.DefaultCornerRadius}
}

// SetEdgeRadius sets the corner radius recorded on edges added later.
// Negative values are treated as 0.
func (s *Store) SetEdgeRadius(r float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edgeRadius = math.Max(r, 0)
}

// Diagram returns a copy of the current document.
func (s *Store) Diagram() *diagram.Diagram {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Box returns the geometry of an element.
func (s *Store) Box(id string) (geometry.Box, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Box(id)
}

// Element returns an element by id.
func (s *Store) Element(id string) (diagram.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Element(id)
}

// Edge returns an edge by id.
func (s *Store) Edge(id string) (diagram.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Edge(id)
}

// Changed reports whether the document was modified since it was loaded
// or last marked saved.
func (s *Store) Changed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changed
}

// MarkSaved clears the changed flag.
func (s *Store) MarkSaved() {
	s.mu.Lock()
	s.changed = false
	s.mu.Unlock()
}

// save records an undo point. Callers hold the write lock.
func (s *Store) save() {
	s.history.SaveState(s.doc)
	s.changed = true
}

// AddElement adds el, assigning an id when it has none.
func (s *Store) AddElement(el diagram.Element) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el.Type == "" {
		el.Type = diagram.ElementNode
	}
	if el.ID == "" {
		el.ID = diagram.NextID(s.doc, string(el.Type))
	} else if s.doc.ElementIndex(el.ID) >= 0 || s.doc.EdgeIndex(el.ID) >= 0 {
		return "", fmt.Errorf("element id %q already in use", el.ID)
	}

	s.save()
	s.doc.Elements = append(s.doc.Elements, el)
	return el.ID, nil
}

// AddNode adds a rounded node with the default size at position.
func (s *Store) AddNode(text string, position geometry.Point) string {
	id, _ := s.AddElement(diagram.Element{
		Type:     diagram.ElementNode,
		Position: position,
		Size:     DefaultNodeSize,
		Text:     text,
		Shape:    "rounded",
		Style:    diagram.Style{Fill: "#ffffff", Stroke: "#333333", StrokeWidth: 1, Opacity: 1, Radius: 6},
	})
	return id
}

// AddEdge connects two elements. Empty anchors default to auto; the edge
// is routed orthogonally with a barbed arrow at the target.
func (s *Store) AddEdge(source, target diagram.ConnectionPoint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cp := range []diagram.ConnectionPoint{source, target} {
		if s.doc.ElementIndex(cp.ElementID) < 0 {
			return "", fmt.Errorf("element %q: %w", cp.ElementID, ErrNotFound)
		}
	}
	if source.Anchor == "" {
		source.Anchor = diagram.AnchorAuto
	}
	if target.Anchor == "" {
		target.Anchor = diagram.AnchorAuto
	}

	e := diagram.Edge{
		ID:       diagram.NextID(s.doc, "edge"),
		Source:   source,
		Target:   target,
		Routing:  diagram.RoutingOrthogonal,
		EndArrow: &diagram.Arrow{Type: diagram.ArrowBarbed, Size: 8},
		Style:    DefaultEdgeStyle,
	}
	if s.edgeRadius != diagram.DefaultCornerRadius {
		e.SetRadius(s.edgeRadius)
	}
	s.save()
	s.doc.Edges = append(s.doc.Edges, e)
	return e.ID, nil
}

// ConnectAt connects source to target, attaching at the side of the target
// box nearest drop, the point where a connection drag was released.
func (s *Store) ConnectAt(sourceID, targetID string, drop geometry.Point) (string, error) {
	box, ok := s.Box(targetID)
	if !ok {
		return "", fmt.Errorf("element %q: %w", targetID, ErrNotFound)
	}
	return s.AddEdge(
		diagram.ConnectionPoint{ElementID: sourceID, Anchor: diagram.AnchorAuto},
		diagram.ConnectionPoint{ElementID: targetID, Anchor: connections.AnchorAt(box, drop)},
	)
}

// MoveElements translates the given elements by delta.
func (s *Store) MoveElements(ids []string, delta geometry.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexes, err := s.elementIndexes(ids)
	if err != nil {
		return err
	}
	s.save()
	for _, i := range indexes {
		el := &s.doc.Elements[i]
		el.Position = el.Position.Add(delta)
	}
	return nil
}

// ResizeElement sets an element's size.
func (s *Store) ResizeElement(id string, size geometry.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doc.ElementIndex(id)
	if i < 0 {
		return fmt.Errorf("element %q: %w", id, ErrNotFound)
	}
	s.save()
	s.doc.Elements[i].Size = size
	return nil
}

// DeleteElements removes the given elements and every edge touching them.
func (s *Store) DeleteElements(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.elementIndexes(ids); err != nil {
		return err
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	s.save()
	elements := s.doc.Elements[:0]
	for _, el := range s.doc.Elements {
		if !doomed[el.ID] {
			elements = append(elements, el)
		}
	}
	s.doc.Elements = elements

	edges := s.doc.Edges[:0]
	for _, e := range s.doc.Edges {
		if !doomed[e.Source.ElementID] && !doomed[e.Target.ElementID] {
			edges = append(edges, e)
		}
	}
	s.doc.Edges = edges
	return nil
}

// DeleteEdge removes one edge.
func (s *Store) DeleteEdge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doc.EdgeIndex(id)
	if i < 0 {
		return fmt.Errorf("edge %q: %w", id, ErrNotFound)
	}
	s.save()
	s.doc.Edges = append(s.doc.Edges[:i], s.doc.Edges[i+1:]...)
	return nil
}

// UpdateEdge applies fn to an edge in place. It records no undo point, so
// a drag can write many intermediate values after one Snapshot.
func (s *Store) UpdateEdge(id string, fn func(*diagram.Edge)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doc.EdgeIndex(id)
	if i < 0 {
		return fmt.Errorf("edge %q: %w", id, ErrNotFound)
	}
	fn(&s.doc.Edges[i])
	s.changed = true
	return nil
}

// SetRouting changes an edge's routing mode.
func (s *Store) SetRouting(id string, mode diagram.RoutingMode) error {
	return s.editEdge(id, func(e *diagram.Edge) { e.Routing = mode })
}

// SetCornerRadius changes an edge's corner radius. Negative values are
// stored as zero.
func (s *Store) SetCornerRadius(id string, radius float64) error {
	return s.editEdge(id, func(e *diagram.Edge) { e.SetRadius(geometry.Max(radius, 0)) })
}

// editEdge is UpdateEdge with an undo point.
func (s *Store) editEdge(id string, fn func(*diagram.Edge)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doc.EdgeIndex(id)
	if i < 0 {
		return fmt.Errorf("edge %q: %w", id, ErrNotFound)
	}
	s.save()
	fn(&s.doc.Edges[i])
	return nil
}

// Snapshot records an undo point for the current document.
func (s *Store) Snapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.SaveState(s.doc)
	s.changedBeforeSnapshot = s.changed
	return nil
}

// DiscardSnapshot drops the undo point Snapshot recorded, restoring the
// redo states and changed flag it replaced. The caller must already have
// put the document back the way it was.
func (s *Store) DiscardSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Drop()
	s.changed = s.changedBeforeSnapshot
}

// Undo restores the previous document. It reports false when there is
// nothing to undo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.history.Undo(s.doc)
	if prev == nil {
		return false
	}
	s.doc = prev
	s.changed = true
	undo, redo := s.history.Stats()
	logging.Logger().Debug("undo", "undo", undo, "redo", redo)
	return true
}

// Redo reapplies the most recently undone change.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.history.Redo(s.doc)
	if next == nil {
		return false
	}
	s.doc = next
	s.changed = true
	undo, redo := s.history.Stats()
	logging.Logger().Debug("redo", "undo", undo, "redo", redo)
	return true
}

// CanUndo reports whether Undo would change the document.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the document.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

func (s *Store) elementIndexes(ids []string) ([]int, error) {
	indexes := make([]int, 0, len(ids))
	for _, id := range ids {
		i := s.doc.ElementIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("element %q: %w", id, ErrNotFound)
		}
		indexes = append(indexes, i)
	}
	return indexes, nil
}
