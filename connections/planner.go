package connections

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
)

// Planner defaults.
const (
	DefaultPadding      = 20.0  // stand-off length of orthogonal stubs
	DefaultMinExtension = 100.0 // floor for the extension allowance
)

// Options tunes the planner.
type Options struct {
	Padding      float64
	MinExtension float64
}

// DefaultOptions returns the standard planner settings.
func DefaultOptions() Options {
	return Options{Padding: DefaultPadding, MinExtension: DefaultMinExtension}
}

// withDefaults replaces unusable values with the defaults.
func (o Options) withDefaults() Options {
	if !geometry.Finite(o.Padding) || o.Padding < 0 {
		o.Padding = DefaultPadding
	}
	if !geometry.Finite(o.MinExtension) || o.MinExtension <= 0 {
		o.MinExtension = DefaultMinExtension
	}
	return o
}

// Request holds everything needed to plan one path.
type Request struct {
	Source        geometry.Point
	Target        geometry.Point
	SourceAnchor  diagram.Anchor
	TargetAnchor  diagram.Anchor
	Mode          diagram.RoutingMode
	MidpointRatio float64
	CornerRadius  float64
}

// Route is a planned path.
type Route struct {
	Mode     diagram.RoutingMode
	Path     string           // SVG path data
	Commands []Command        // the same path, structured
	Points   []geometry.Point // ordered vertices, used for label placement
	Segments []Segment        // orthogonal mode only
	Corners  []Corner         // orthogonal mode only, one per interior vertex

	// Allowance is the extension allowance the bend was placed with; zero
	// when the route has no draggable bend.
	Allowance float64

	// SourceDir and TargetDir are the outward stub directions used.
	SourceDir geometry.Point
	TargetDir geometry.Point
}

// DraggableSegment returns the index of the adjustable bend, if any.
func (r Route) DraggableSegment() (int, bool) {
	for i, s := range r.Segments {
		if s.Draggable {
			return i, true
		}
	}
	return -1, false
}

// HasBend reports whether the midpoint ratio affects this route.
func (r Route) HasBend() bool {
	_, ok := r.DraggableSegment()
	return ok
}

// StubHandles returns the offset-drag grab points: the midpoint of each
// stub whose anchor direction is known.
func (r Route) StubHandles() []StubHandle {
	var handles []StubHandle
	for _, s := range r.Segments {
		switch s.Role {
		case RoleSourceStub:
			handles = append(handles, StubHandle{
				End:    diagram.EndSource,
				Point:  s.Midpoint(),
				Anchor: diagram.AnchorToward(r.SourceDir),
			})
		case RoleTargetStub:
			handles = append(handles, StubHandle{
				End:    diagram.EndTarget,
				Point:  s.Midpoint(),
				Anchor: diagram.AnchorToward(r.TargetDir),
			})
		}
	}
	return handles
}

// Planner computes drawable paths. It holds only configuration.
type Planner struct {
	opts Options
}

// NewPlanner creates a planner with the given options.
func NewPlanner(opts Options) *Planner {
	return &Planner{opts: opts.withDefaults()}
}

// Options returns the planner settings.
func (p *Planner) Options() Options {
	return p.opts
}

var defaultPlanner = NewPlanner(DefaultOptions())

// Plan plans a path with the default options.
func Plan(req Request) Route {
	return defaultPlanner.Plan(req)
}

// PlanPath is the positional form of Plan.
func PlanPath(source, target geometry.Point, sourceAnchor, targetAnchor diagram.Anchor,
	mode diagram.RoutingMode, midpointRatio, cornerRadius float64) Route {
	return Plan(Request{
		Source:        source,
		Target:        target,
		SourceAnchor:  sourceAnchor,
		TargetAnchor:  targetAnchor,
		Mode:          mode,
		MidpointRatio: midpointRatio,
		CornerRadius:  cornerRadius,
	})
}

// Plan computes the path for req. It is total: degenerate geometry yields
// a collapsed but valid route.
func (p *Planner) Plan(req Request) Route {
	switch req.Mode {
	case diagram.RoutingStraight:
		return p.straight(req)
	case diagram.RoutingCurved:
		return p.curved(req)
	default:
		return p.orthogonal(req)
	}
}

func (p *Planner) straight(req Request) Route {
	var b pathBuilder
	b.moveTo(req.Source)
	b.lineTo(req.Target)
	return Route{
		Mode:     diagram.RoutingStraight,
		Path:     FormatPath(b.cmds),
		Commands: b.cmds,
		Points:   []geometry.Point{req.Source, req.Target},
		Segments: []Segment{newSegment(req.Source, req.Target, RoleLine)},
	}
}

// curved draws one cubic whose controls sit at 40% and 60% of the dominant
// axis delta, giving an S-curve along that axis.
func (p *Planner) curved(req Request) Route {
	s, t := req.Source, req.Target
	dx, dy := t.X-s.X, t.Y-s.Y

	var c1, c2 geometry.Point
	if geometry.Abs(dx) >= geometry.Abs(dy) {
		c1 = geometry.Pt(s.X+dx*0.4, s.Y)
		c2 = geometry.Pt(s.X+dx*0.6, t.Y)
	} else {
		c1 = geometry.Pt(s.X, s.Y+dy*0.4)
		c2 = geometry.Pt(t.X, s.Y+dy*0.6)
	}

	var b pathBuilder
	b.moveTo(s)
	b.cubicTo(c1, c2, t)
	return Route{
		Mode:     diagram.RoutingCurved,
		Path:     FormatPath(b.cmds),
		Commands: b.cmds,
		Points:   []geometry.Point{s, t},
	}
}

// stubDirection returns the outward unit vector for anchor. Anchors with no
// fixed side (auto, center) face the other end of the edge.
func stubDirection(anchor diagram.Anchor, from, toward geometry.Point) geometry.Point {
	if anchor.IsCardinal() {
		return anchor.Direction()
	}
	return diagram.AnchorToward(toward.Sub(from)).Direction()
}

func (p *Planner) orthogonal(req Request) Route {
	s, t := req.Source, req.Target
	ratio := req.MidpointRatio
	if !geometry.Finite(ratio) {
		ratio = diagram.DefaultMidpointRatio
	}

	sDir := stubDirection(req.SourceAnchor, s, t)
	tDir := stubDirection(req.TargetAnchor, t, s)
	p1 := s.Add(sDir.Scale(p.opts.Padding))
	p2 := t.Add(tDir.Scale(p.opts.Padding))
	sHorizontal := sDir.Y == 0
	tHorizontal := tDir.Y == 0

	route := Route{
		Mode:      diagram.RoutingOrthogonal,
		SourceDir: sDir,
		TargetDir: tDir,
	}

	var interior []geometry.Point
	var middle []Segment

	switch {
	case sHorizontal && tHorizontal:
		allowance := ExtensionAllowance(p1, p2, Horizontal, p.opts.MinExtension)
		x := (p1.X+p2.X)/2 + (ratio-0.5)*2*allowance
		c1, c2 := geometry.Pt(x, p1.Y), geometry.Pt(x, p2.Y)
		interior = []geometry.Point{c1, c2}
		middle = []Segment{
			{Start: p1, End: c1, Direction: Horizontal, Role: RoleConnector},
			{Start: c1, End: c2, Direction: Vertical, Role: RoleBend, Draggable: true},
			{Start: c2, End: p2, Direction: Horizontal, Role: RoleConnector},
		}
		route.Allowance = allowance

	case !sHorizontal && !tHorizontal:
		allowance := ExtensionAllowance(p1, p2, Vertical, p.opts.MinExtension)
		y := (p1.Y+p2.Y)/2 + (ratio-0.5)*2*allowance
		c1, c2 := geometry.Pt(p1.X, y), geometry.Pt(p2.X, y)
		interior = []geometry.Point{c1, c2}
		middle = []Segment{
			{Start: p1, End: c1, Direction: Vertical, Role: RoleConnector},
			{Start: c1, End: c2, Direction: Horizontal, Role: RoleBend, Draggable: true},
			{Start: c2, End: p2, Direction: Vertical, Role: RoleConnector},
		}
		route.Allowance = allowance

	default:
		// One horizontal and one vertical stub meet at a single corner;
		// there is no free run to adjust.
		var corner geometry.Point
		firstAxis := Vertical
		if sHorizontal {
			corner = geometry.Pt(p2.X, p1.Y)
			firstAxis = Horizontal
		} else {
			corner = geometry.Pt(p1.X, p2.Y)
		}
		interior = []geometry.Point{corner}
		middle = []Segment{
			{Start: p1, End: corner, Direction: firstAxis, Role: RoleConnector},
			{Start: corner, End: p2, Direction: firstAxis.Perpendicular(), Role: RoleConnector},
		}
	}

	route.Points = make([]geometry.Point, 0, len(interior)+4)
	route.Points = append(route.Points, s, p1)
	route.Points = append(route.Points, interior...)
	route.Points = append(route.Points, p2, t)

	route.Segments = make([]Segment, 0, len(middle)+2)
	route.Segments = append(route.Segments, stubSegment(s, p1, sDir, RoleSourceStub))
	route.Segments = append(route.Segments, middle...)
	route.Segments = append(route.Segments, stubSegment(p2, t, tDir, RoleTargetStub))

	route.Commands, route.Corners = roundedPath(route.Points, req.CornerRadius)
	route.Path = FormatPath(route.Commands)
	return route
}
