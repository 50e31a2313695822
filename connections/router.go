package connections

import (
	"edgeflow/diagram"
	"edgeflow/logging"
)

// Router routes the edges of a diagram: it resolves endpoints from the
// element boxes, plans each path and memoizes the result.
type Router struct {
	planner *Planner
	cache   *RouteCache
}

// NewRouter creates a router. A cacheSize of zero disables caching.
func NewRouter(opts Options, cacheSize int) *Router {
	r := &Router{planner: NewPlanner(opts)}
	if cacheSize > 0 {
		r.cache = NewRouteCache(cacheSize)
	}
	return r
}

// Planner returns the router's planner.
func (r *Router) Planner() *Planner {
	return r.planner
}

// Endpoints resolves the concrete ends of e. It reports false when either
// element id is dangling; such edges are not drawn.
func (r *Router) Endpoints(boxes diagram.BoxSource, e diagram.Edge) (Endpoints, bool) {
	src, ok := boxes.Box(e.Source.ElementID)
	if !ok {
		return Endpoints{}, false
	}
	dst, ok := boxes.Box(e.Target.ElementID)
	if !ok {
		return Endpoints{}, false
	}
	return ResolveEndpoints(src, dst, e.Source, e.Target), true
}

// Route plans the path for e, or reports false for a dangling edge.
func (r *Router) Route(boxes diagram.BoxSource, e diagram.Edge) (Route, bool) {
	ends, ok := r.Endpoints(boxes, e)
	if !ok {
		logging.Logger().Debug("skipping dangling edge",
			"edge", e.ID, "source", e.Source.ElementID, "target", e.Target.ElementID)
		return Route{}, false
	}

	key := KeyFor(ends.SourceBox, ends.TargetBox, e)
	if r.cache != nil {
		if route, found := r.cache.Get(key); found {
			return route, true
		}
	}

	route := r.planner.Plan(Request{
		Source:        ends.Source,
		Target:        ends.Target,
		SourceAnchor:  ends.SourceAnchor,
		TargetAnchor:  ends.TargetAnchor,
		Mode:          e.Mode(),
		MidpointRatio: e.Ratio(),
		CornerRadius:  e.Radius(),
	})

	if r.cache != nil {
		r.cache.Put(key, route)
	}
	return route, true
}

// RouteAll routes every drawable edge of d, keyed by edge id.
func (r *Router) RouteAll(d *diagram.Diagram) map[string]Route {
	routes := make(map[string]Route, len(d.Edges))
	for _, e := range d.Edges {
		if route, ok := r.Route(d, e); ok {
			routes[e.ID] = route
		}
	}
	if r.cache != nil {
		logging.Logger().Debug("routed diagram", "edges", len(routes), "cache", r.cache.String())
	}
	return routes
}

// CacheStats describes the route cache, or "RouteCache[disabled]".
func (r *Router) CacheStats() string {
	if r.cache == nil {
		return "RouteCache[disabled]"
	}
	return r.cache.String()
}
