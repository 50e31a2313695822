// Package validation checks diagram documents for routing records the
// engine cannot honour as written.
package validation

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
	"fmt"
	"math"
)

// DiagramValidator validates the elements and edges of a diagram.
type DiagramValidator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	strictMode bool // Also flag values that are legal but would be clamped or ignored
}

// ValidationError represents a validation problem with the item it was found on.
type ValidationError struct {
	ID      string // element or edge id
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.ID, e.Field, e.Message)
}

// NewDiagramValidator creates a new validator with default settings.
func NewDiagramValidator() *DiagramValidator {
	return &DiagramValidator{}
}

// SetStrictMode enables or disables strict validation.
func (v *DiagramValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate checks d and returns every problem found.
func (v *DiagramValidator) Validate(d *diagram.Diagram) []ValidationError {
	v.errors = nil

	ids := make(map[string]string) // id -> "element" or "edge"
	for _, el := range d.Elements {
		v.checkID(ids, el.ID, "element")
		v.checkElement(el)
	}
	for _, e := range d.Edges {
		v.checkID(ids, e.ID, "edge")
	}
	for _, e := range d.Edges {
		v.checkEdge(d, e)
	}

	return v.errors
}

func (v *DiagramValidator) checkID(ids map[string]string, id, kind string) {
	if id == "" {
		v.addError("", "id", "%s has an empty id", kind)
		return
	}
	if prev, ok := ids[id]; ok {
		v.addError(id, "id", "duplicate id, already used by an %s", prev)
		return
	}
	ids[id] = kind
}

func (v *DiagramValidator) checkElement(el diagram.Element) {
	switch el.Type {
	case diagram.ElementNode, diagram.ElementContainer, diagram.ElementText, diagram.ElementImage, "":
	default:
		v.addError(el.ID, "type", "unknown element type %q", el.Type)
	}
	if !finitePoint(el.Position) {
		v.addError(el.ID, "position", "position is not finite")
	}
	if !geometry.Finite(el.Size.Width) || !geometry.Finite(el.Size.Height) || el.Size.Width < 0 || el.Size.Height < 0 {
		v.addError(el.ID, "size", "size must be finite and non-negative, got %vx%v", el.Size.Width, el.Size.Height)
	}
}

// checkEdge validates the routing record of one edge.
func (v *DiagramValidator) checkEdge(d *diagram.Diagram, e diagram.Edge) {
	for _, end := range []diagram.End{diagram.EndSource, diagram.EndTarget} {
		cp := e.Endpoint(end)
		field := end.String()
		if d.ElementIndex(cp.ElementID) < 0 {
			v.addError(e.ID, field, "references missing element %q", cp.ElementID)
		}
		if _, err := diagram.ParseAnchor(string(cp.Anchor)); err != nil {
			v.addError(e.ID, field+".anchor", "%v", err)
		}
		if !geometry.Finite(cp.Offset) || math.Abs(cp.Offset) > 0.5 {
			v.addError(e.ID, field+".offset", "offset must be within [-0.5, 0.5], got %v", cp.Offset)
		} else if v.strictMode && cp.Offset != 0 && !cp.Anchor.IsCardinal() {
			v.addError(e.ID, field+".offset", "offset %v is ignored for %s anchors", cp.Offset, cp.Anchor)
		}
	}

	if _, err := diagram.ParseRoutingMode(string(e.Routing)); err != nil {
		v.addError(e.ID, "routing", "%v", err)
	}
	if e.MidpointRatio != nil {
		r := *e.MidpointRatio
		if !geometry.Finite(r) {
			v.addError(e.ID, "midpointRatio", "ratio must be finite, got %v", r)
		} else if v.strictMode && (r < 0 || r > 1) {
			v.addError(e.ID, "midpointRatio", "ratio %v is outside the draggable range [0, 1]", r)
		}
	}
	if e.CornerRadius != nil {
		if r := *e.CornerRadius; !geometry.Finite(r) || r < 0 {
			v.addError(e.ID, "cornerRadius", "radius must be finite and non-negative, got %v", r)
		}
	}
	if e.Label != nil && (!geometry.Finite(e.Label.Position) || e.Label.Position < 0 || e.Label.Position > 1) {
		v.addError(e.ID, "label.position", "label position must be within [0, 1], got %v", e.Label.Position)
	}
	for _, a := range []*diagram.Arrow{e.StartArrow, e.EndArrow} {
		if a == nil {
			continue
		}
		switch a.Type {
		case diagram.ArrowFilled, diagram.ArrowBarbed, diagram.ArrowOpen:
		default:
			v.addError(e.ID, "arrow", "unknown arrow type %q", a.Type)
		}
	}
}

// addError adds a validation error.
func (v *DiagramValidator) addError(id, field, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		ID:      id,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func finitePoint(p geometry.Point) bool {
	return geometry.Finite(p.X) && geometry.Finite(p.Y)
}
