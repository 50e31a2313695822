package interaction

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"edgeflow/logging"
	"fmt"
	"sync"
)

// Store is the document the controller edits.
type Store interface {
	diagram.BoxSource
	diagram.EdgeSource
	// UpdateEdge applies fn to the stored edge as one atomic write.
	UpdateEdge(id string, fn func(*diagram.Edge)) error
	// Snapshot records an undo point before the drag changes anything.
	Snapshot() error
	// DiscardSnapshot drops the most recent undo point after a cancelled drag.
	DiscardSnapshot()
}

type activeDrag struct {
	edgeID  string
	end     diagram.End
	session Session
	before  diagram.Edge
}

// Controller runs at most one drag session at a time and writes each
// intermediate value through to the store so views can redraw live.
type Controller struct {
	mu    sync.Mutex
	store Store
	drag  *activeDrag
}

// NewController creates a controller editing store.
func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// BeginBend starts dragging segment segIndex of route, the current route
// of edge edgeID.
func (c *Controller) BeginBend(edgeID string, route connections.Route, segIndex int, pointer geometry.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.prepare(edgeID)
	if err != nil {
		return err
	}
	s, err := BeginSegmentDrag(route, segIndex, e.Ratio(), pointer)
	if err != nil {
		return fmt.Errorf("edge %q: %w", edgeID, err)
	}
	return c.start(&activeDrag{edgeID: edgeID, session: s, before: e})
}

// BeginHandle starts dragging the anchor at one end of edge edgeID.
func (c *Controller) BeginHandle(edgeID string, end diagram.End, pointer geometry.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.prepare(edgeID)
	if err != nil {
		return err
	}
	cp := e.Endpoint(end)
	box, ok := c.store.Box(cp.ElementID)
	if !ok {
		return fmt.Errorf("edge %q %s element %q: %w", edgeID, end, cp.ElementID, ErrNotDraggable)
	}
	s, err := BeginOffsetDrag(cp.Anchor, box, cp.Offset, pointer)
	if err != nil {
		return fmt.Errorf("edge %q %s: %w", edgeID, end, err)
	}
	return c.start(&activeDrag{edgeID: edgeID, end: end, session: s, before: e})
}

func (c *Controller) prepare(edgeID string) (diagram.Edge, error) {
	if c.drag != nil {
		return diagram.Edge{}, ErrDragActive
	}
	e, ok := c.store.Edge(edgeID)
	if !ok {
		return diagram.Edge{}, fmt.Errorf("%q: %w", edgeID, ErrUnknownEdge)
	}
	return e, nil
}

func (c *Controller) start(d *activeDrag) error {
	if err := c.store.Snapshot(); err != nil {
		return fmt.Errorf("failed to snapshot before drag: %w", err)
	}
	c.drag = d
	logging.Logger().Debug("drag started", "edge", d.edgeID, "kind", d.session.Kind())
	return nil
}

// Update moves the active drag to pointer and stores the new value.
func (c *Controller) Update(pointer geometry.Point) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return 0, ErrNoSession
	}
	v := c.drag.session.Update(pointer)
	return v, c.write(c.drag, v)
}

// End finishes the active drag, keeping its final value. A drag that ends
// where it started leaves the edge and the history untouched.
func (c *Controller) End() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return 0, ErrNoSession
	}
	d := c.drag
	c.drag = nil
	v := d.session.End()
	if v == d.startValue() {
		err := c.restore(d)
		c.store.DiscardSnapshot()
		logging.Logger().Debug("drag ended unchanged", "edge", d.edgeID, "kind", d.session.Kind())
		return v, err
	}
	err := c.write(d, v)
	logging.Logger().Debug("drag ended", "edge", d.edgeID, "kind", d.session.Kind(), "value", v)
	return v, err
}

// Cancel abandons the active drag and restores the edge exactly as it
// was before the drag began.
func (c *Controller) Cancel() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return 0, ErrNoSession
	}
	d := c.drag
	c.drag = nil
	v := d.session.Cancel()
	err := c.restore(d)
	c.store.DiscardSnapshot()
	logging.Logger().Debug("drag cancelled", "edge", d.edgeID, "kind", d.session.Kind())
	return v, err
}

// restore writes back the value the edge held before d began.
func (c *Controller) restore(d *activeDrag) error {
	return c.store.UpdateEdge(d.edgeID, func(e *diagram.Edge) {
		if d.session.Kind() == KindBend {
			e.MidpointRatio = d.before.MidpointRatio
			return
		}
		e.Endpoint(d.end).Offset = d.before.Endpoint(d.end).Offset
	})
}

// Active reports the edge and kind of the running drag, if any.
func (c *Controller) Active() (edgeID string, kind Kind, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return "", 0, false
	}
	return c.drag.edgeID, c.drag.session.Kind(), true
}

// startValue is the stored value the drag began from.
func (d *activeDrag) startValue() float64 {
	if d.session.Kind() == KindBend {
		return d.before.Ratio()
	}
	return d.before.Endpoint(d.end).Offset
}

func (c *Controller) write(d *activeDrag, v float64) error {
	return c.store.UpdateEdge(d.edgeID, func(e *diagram.Edge) {
		if d.session.Kind() == KindBend {
			e.SetRatio(v)
			return
		}
		e.Endpoint(d.end).Offset = v
	})
}
