package diagram

import "edgeflow/geometry"

// BoxSource looks up the geometry of an element by id.
// *Diagram and the editor store both satisfy it.
type BoxSource interface {
	// Box returns the element's box, or false for a dangling id.
	Box(id string) (geometry.Box, bool)
}

// EdgeSource looks up edges by id.
type EdgeSource interface {
	Edge(id string) (Edge, bool)
}
