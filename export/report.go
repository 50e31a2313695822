package export

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	reportTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	reportHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	reportMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	reportWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// reportColumns are the table headings and widths.
var reportColumns = []struct {
	title string
	width int
}{
	{"EDGE", 12},
	{"MODE", 11},
	{"SOURCE", 18},
	{"TARGET", 18},
	{"RATIO", 7},
	{"RADIUS", 7},
	{"LENGTH", 9},
	{"BEND", 6},
}

// ReportExporter prints one styled row per edge describing its route.
type ReportExporter struct {
	opts Options
}

// NewReportExporter creates a new report exporter
func NewReportExporter(opts Options) *ReportExporter {
	return &ReportExporter{opts: opts.withDefaults()}
}

// GetFileExtension returns the file extension for reports
func (e *ReportExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ReportExporter) GetFormatName() string {
	return "Route report"
}

// Export describes every edge of d and its planned route.
func (e *ReportExporter) Export(d *diagram.Diagram) ([]byte, error) {
	routes := e.opts.Router.RouteAll(d)

	name := d.Name
	if name == "" {
		name = "Untitled Diagram"
	}
	lines := []string{
		reportTitle.Render(name),
		reportMuted.Render(fmt.Sprintf("%d elements, %d edges, %d routed", len(d.Elements), len(d.Edges), len(routes))),
		"",
	}

	var header []string
	for _, c := range reportColumns {
		header = append(header, reportHeader.Width(c.width).Render(c.title))
	}
	lines = append(lines, strings.Join(header, " "))

	edges := append([]diagram.Edge(nil), d.Edges...)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	for _, edge := range edges {
		route, ok := routes[edge.ID]
		lines = append(lines, reportRow(edge, route, ok))
	}

	lines = append(lines, "", reportMuted.Render(e.opts.Router.CacheStats()))
	return []byte(lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"), nil
}

func reportRow(e diagram.Edge, route connections.Route, routed bool) string {
	cells := []string{
		e.ID,
		string(e.Mode()),
		endpointLabel(e.Source),
		endpointLabel(e.Target),
		num(round2(e.Ratio())),
		num(round2(e.Radius())),
	}
	if routed {
		bend := "-"
		if route.HasBend() {
			bend = "yes"
		}
		cells = append(cells, num(round2(polylineLength(route.Polyline()))), bend)
	} else {
		cells = append(cells, reportWarn.Render("dangling"), "")
	}

	var out []string
	for i, c := range cells {
		out = append(out, lipgloss.NewStyle().Width(reportColumns[i].width).Render(c))
	}
	return strings.Join(out, " ")
}

func endpointLabel(cp diagram.ConnectionPoint) string {
	s := cp.ElementID + ":" + string(cp.Anchor)
	if cp.Offset != 0 && cp.Anchor.IsCardinal() {
		s += fmt.Sprintf("%+.2f", cp.Offset)
	}
	return s
}

func polylineLength(pts []geometry.Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
