package export

import (
	"bytes"
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"encoding/xml"
	"fmt"
	"strings"
)

// SVGExporter draws diagrams as SVG. Edge paths carry the planner's path
// strings unchanged.
type SVGExporter struct {
	opts Options
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter(opts Options) *SVGExporter {
	return &SVGExporter{opts: opts.withDefaults()}
}

// GetFileExtension returns the file extension for SVG
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}

// Export converts a diagram to an SVG document
func (e *SVGExporter) Export(d *diagram.Diagram) ([]byte, error) {
	s := buildScene(d, e.opts)
	w := &svgWriter{}

	b := s.bounds
	w.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	w.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"%s %s %s %s\">\n",
		num(b.Size.Width), num(b.Size.Height),
		num(b.Position.X), num(b.Position.Y), num(b.Size.Width), num(b.Size.Height))
	w.printf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\"/>\n",
		num(b.Position.X), num(b.Position.Y), num(b.Size.Width), num(b.Size.Height), w.attr(s.background))

	// Edges go underneath the elements they connect
	for _, shape := range s.edges {
		w.edge(shape)
	}
	for _, el := range s.elements {
		w.element(el)
	}
	for _, shape := range s.edges {
		if shape.label != "" {
			w.label(shape, s.background)
		}
	}

	w.printf("</svg>\n")
	return w.buf.Bytes(), nil
}

type svgWriter struct {
	buf bytes.Buffer
}

func (w *svgWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format, args...)
}

// attr escapes a value for use inside a double-quoted attribute.
func (w *svgWriter) attr(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func (w *svgWriter) edge(shape edgeShape) {
	st := shape.edge.Style
	stroke := w.attr(strokeOf(st))
	w.printf("  <g id=\"%s\">\n", w.attr(shape.edge.ID))
	w.printf("    <path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\"",
		shape.route.Path, stroke, num(strokeWidthOf(st)))
	if st.Dash != "" {
		w.printf(" stroke-dasharray=\"%s\"", w.attr(st.Dash))
	}
	if op := opacityOf(st); op < 1 {
		w.printf(" opacity=\"%s\"", num(op))
	}
	w.printf("/>\n")

	for _, h := range shape.heads {
		w.printf("    <path d=\"%s\"", headPath(h))
		if h.Filled() {
			w.printf(" fill=\"%s\"", stroke)
		} else {
			w.printf(" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\"", stroke, num(strokeWidthOf(st)))
		}
		w.printf("/>\n")
	}
	w.printf("  </g>\n")
}

// headPath outlines an arrow head: barbed heads are an open chevron,
// filled and open heads a closed triangle.
func headPath(h connections.ArrowHead) string {
	if h.Type == diagram.ArrowBarbed {
		return fmt.Sprintf("M %s L %s L %s", pt(h.Left), pt(h.Tip), pt(h.Right))
	}
	return fmt.Sprintf("M %s L %s L %s Z", pt(h.Tip), pt(h.Left), pt(h.Right))
}

func (w *svgWriter) element(el diagram.Element) {
	box := el.Box()
	if el.Type == diagram.ElementText {
		w.text(el.Text, box.Center(), "#1a1a1a", 14, "")
		return
	}

	st := el.Style
	fill := st.Fill
	if fill == "" {
		fill = defaultFill
	}
	if el.Type == diagram.ElementContainer && st.Fill == "" {
		fill = "none"
	}
	w.printf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"",
		num(box.Position.X), num(box.Position.Y), num(box.Size.Width), num(box.Size.Height))
	if st.Radius > 0 {
		w.printf(" rx=\"%s\"", num(st.Radius))
	}
	w.printf(" fill=\"%s\" stroke=\"%s\" stroke-width=\"%s\"", w.attr(fill), w.attr(strokeOf(st)), num(strokeWidthOf(st)))
	if st.Dash != "" {
		w.printf(" stroke-dasharray=\"%s\"", w.attr(st.Dash))
	}
	w.printf("/>\n")

	if el.Type == diagram.ElementImage && el.Src != "" {
		w.printf("  <image href=\"%s\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"/>\n",
			w.attr(el.Src), num(box.Position.X), num(box.Position.Y), num(box.Size.Width), num(box.Size.Height))
	}
	if el.Text != "" {
		w.text(el.Text, box.Center(), "#1a1a1a", 14, "")
	}
}

func (w *svgWriter) label(shape edgeShape, background string) {
	b := shape.labelBox
	w.printf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" rx=\"2\" fill=\"%s\"/>\n",
		num(b.Position.X), num(b.Position.Y), num(b.Size.Width), num(b.Size.Height), w.attr(background))
	w.text(shape.label, shape.labelAt, labelColor, 10, "italic")
}

func (w *svgWriter) text(s string, at geometry.Point, color string, size int, style string) {
	w.printf("  <text x=\"%s\" y=\"%s\" text-anchor=\"middle\" dominant-baseline=\"middle\" font-family=\"sans-serif\" font-size=\"%d\" fill=\"%s\"",
		num(at.X), num(at.Y), size, w.attr(color))
	if style != "" {
		w.printf(" font-style=\"%s\"", style)
	}
	w.printf(">%s</text>\n", w.attr(s))
}

func num(v float64) string {
	return connections.FormatNumber(v)
}

func pt(p geometry.Point) string {
	return num(p.X) + "," + num(p.Y)
}
