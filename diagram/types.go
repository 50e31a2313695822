// Package diagram contains the document model shared by the routing engine,
// the store and the exporters.
package diagram

import (
	"edgeflow/geometry"
)

// Default values for the persisted routing record.
const (
	DefaultMidpointRatio = 0.5
	DefaultCornerRadius  = 8.0
	DefaultLabelPosition = 0.5
	Version              = "1.0"
)

// ElementType distinguishes the kinds of boxed elements on the canvas.
type ElementType string

const (
	ElementNode      ElementType = "node"
	ElementContainer ElementType = "container"
	ElementText      ElementType = "text"
	ElementImage     ElementType = "image"
)

// Style holds the paint settings of an element or edge.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dash        string  `json:"strokeDasharray,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	Radius      float64 `json:"borderRadius,omitempty"`
}

// Element is a boxed item on the canvas: node, container, free text or image.
type Element struct {
	ID       string         `json:"id"`
	Type     ElementType    `json:"type"`
	Position geometry.Point `json:"position"`
	Size     geometry.Size  `json:"size"`
	Text     string         `json:"text,omitempty"`
	Shape    string         `json:"shape,omitempty"` // rectangle, rounded, pill, ...
	Src      string         `json:"src,omitempty"`   // image source for image elements
	Style    Style          `json:"style,omitempty"`
	ChildIDs []string       `json:"childIds,omitempty"` // containers only
}

// Box returns the element's geometry, the only projection routing needs.
func (e Element) Box() geometry.Box {
	return geometry.Box{Position: e.Position, Size: e.Size}
}

// ConnectionPoint is one abstract end of an edge.
type ConnectionPoint struct {
	ElementID string  `json:"elementId"`
	Anchor    Anchor  `json:"anchor"`
	Offset    float64 `json:"offset,omitempty"` // fraction of the anchor's edge, [-0.5, 0.5]
}

// EdgeLabel is text drawn at a fraction of the way along an edge.
type EdgeLabel struct {
	Text       string  `json:"text"`
	Position   float64 `json:"position"` // 0 = source, 1 = target
	Background string  `json:"background,omitempty"`
}

// ArrowType enumerates arrow head shapes.
type ArrowType string

const (
	ArrowFilled ArrowType = "filled"
	ArrowBarbed ArrowType = "barbed"
	ArrowOpen   ArrowType = "open"
)

// Arrow describes an arrow head at one end of an edge.
type Arrow struct {
	Type ArrowType `json:"type"`
	Size float64   `json:"size"`
}

// Edge connects two elements. Source, Target, Routing, MidpointRatio and
// CornerRadius together form the edge's routing record.
type Edge struct {
	ID      string          `json:"id"`
	Source  ConnectionPoint `json:"source"`
	Target  ConnectionPoint `json:"target"`
	Routing RoutingMode     `json:"routing"`

	// MidpointRatio positions the interior bend of an orthogonal route whose
	// anchors are both horizontal or both vertical. It has no effect on other
	// layouts. Any finite value is accepted; nil means 0.5.
	MidpointRatio *float64 `json:"midpointRatio,omitempty"`
	// CornerRadius rounds orthogonal corners. Nil means 8, zero disables rounding.
	CornerRadius *float64 `json:"cornerRadius,omitempty"`

	Label      *EdgeLabel `json:"label,omitempty"`
	StartArrow *Arrow     `json:"startArrow,omitempty"`
	EndArrow   *Arrow     `json:"endArrow,omitempty"`
	Style      Style      `json:"style,omitempty"`
}

// Ratio returns the stored midpoint ratio or its default.
func (e Edge) Ratio() float64 {
	if e.MidpointRatio == nil {
		return DefaultMidpointRatio
	}
	return *e.MidpointRatio
}

// Radius returns the stored corner radius or its default.
func (e Edge) Radius() float64 {
	if e.CornerRadius == nil {
		return DefaultCornerRadius
	}
	return *e.CornerRadius
}

// SetRatio stores a midpoint ratio.
func (e *Edge) SetRatio(r float64) {
	e.MidpointRatio = &r
}

// SetRadius stores a corner radius.
func (e *Edge) SetRadius(r float64) {
	e.CornerRadius = &r
}

// Mode returns the routing mode, defaulting to orthogonal.
func (e Edge) Mode() RoutingMode {
	if e.Routing == "" {
		return RoutingOrthogonal
	}
	return e.Routing
}

// Endpoint returns the source (end 0) or target (end 1) connection point.
func (e *Edge) Endpoint(end End) *ConnectionPoint {
	if end == EndTarget {
		return &e.Target
	}
	return &e.Source
}

// End identifies one end of an edge.
type End int

const (
	EndSource End = iota
	EndTarget
)

// String returns the string representation of an End.
func (e End) String() string {
	if e == EndTarget {
		return "target"
	}
	return "source"
}

// CanvasSettings are document-wide canvas properties.
type CanvasSettings struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background,omitempty"`
	GridSize   float64 `json:"gridSize,omitempty"`
	SnapToGrid bool    `json:"snapToGrid,omitempty"`
}

// Metadata contains optional diagram metadata.
type Metadata struct {
	Created string `json:"created,omitempty"`
	Author  string `json:"author,omitempty"`
}

// Diagram is a complete document: boxed elements plus the edges between them.
type Diagram struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Version  string         `json:"version,omitempty"`
	Canvas   CanvasSettings `json:"canvas"`
	Elements []Element      `json:"elements"`
	Edges    []Edge         `json:"edges"`
	Metadata Metadata       `json:"metadata,omitempty"`
}

// New returns an empty diagram with the original editor's canvas defaults.
func New(name string) *Diagram {
	return &Diagram{
		ID:      "new-diagram",
		Name:    name,
		Version: Version,
		Canvas: CanvasSettings{
			Width:      1920,
			Height:     1080,
			Background: "#ffffff",
			GridSize:   20,
		},
	}
}

// Element returns the element with the given id.
func (d *Diagram) Element(id string) (Element, bool) {
	for _, el := range d.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// ElementIndex returns the slice index of an element, or -1.
func (d *Diagram) ElementIndex(id string) int {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Box returns the geometry of the element with the given id.
func (d *Diagram) Box(id string) (geometry.Box, bool) {
	el, ok := d.Element(id)
	if !ok {
		return geometry.Box{}, false
	}
	return el.Box(), true
}

// Edge returns the edge with the given id.
func (d *Diagram) Edge(id string) (Edge, bool) {
	if i := d.EdgeIndex(id); i >= 0 {
		return d.Edges[i], true
	}
	return Edge{}, false
}

// EdgeIndex returns the slice index of an edge, or -1.
func (d *Diagram) EdgeIndex(id string) int {
	for i := range d.Edges {
		if d.Edges[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone creates a deep copy of the diagram
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}

	clone := &Diagram{
		ID:       d.ID,
		Name:     d.Name,
		Version:  d.Version,
		Canvas:   d.Canvas,
		Metadata: d.Metadata,
		Elements: make([]Element, len(d.Elements)),
		Edges:    make([]Edge, len(d.Edges)),
	}

	for i, el := range d.Elements {
		clone.Elements[i] = el
		if el.ChildIDs != nil {
			clone.Elements[i].ChildIDs = append([]string(nil), el.ChildIDs...)
		}
	}

	// Pointer fields must not be shared between history states
	for i, e := range d.Edges {
		clone.Edges[i] = e
		if e.MidpointRatio != nil {
			clone.Edges[i].SetRatio(*e.MidpointRatio)
		}
		if e.CornerRadius != nil {
			clone.Edges[i].SetRadius(*e.CornerRadius)
		}
		if e.Label != nil {
			label := *e.Label
			clone.Edges[i].Label = &label
		}
		if e.StartArrow != nil {
			arrow := *e.StartArrow
			clone.Edges[i].StartArrow = &arrow
		}
		if e.EndArrow != nil {
			arrow := *e.EndArrow
			clone.Edges[i].EndArrow = &arrow
		}
	}

	return clone
}
