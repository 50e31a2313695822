package export

import (
	"bytes"
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/geometry"
	"edgeflow/logging"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Raster limits. A scene larger than these is drawn at a reduced scale.
const (
	maxRasterSide   = 16384
	maxRasterPixels = 64 << 20
)

// PNGExporter rasterises diagrams.
type PNGExporter struct {
	opts Options
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter(opts Options) *PNGExporter {
	return &PNGExporter{opts: opts.withDefaults()}
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}

// Export converts a diagram to PNG bytes
func (e *PNGExporter) Export(d *diagram.Diagram) ([]byte, error) {
	s := buildScene(d, e.opts)
	scale := fitScale(s.bounds.Size, e.opts.Scale)
	if scale < e.opts.Scale {
		logging.Logger().Warn("png export scaled down to fit raster limits",
			"width", s.bounds.Size.Width, "height", s.bounds.Size.Height,
			"scale", e.opts.Scale, "used", scale)
	}

	width := max(int(math.Ceil(s.bounds.Size.Width*scale)), 1)
	height := max(int(math.Ceil(s.bounds.Size.Height*scale)), 1)
	dc := gg.NewContext(width, height)
	setPaint(dc, s.background, 1, defaultBackground)
	dc.Clear()

	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	p := &pngPainter{dc: dc, font: ttfFont, scale: scale, origin: s.bounds.Position}

	// Edges first so they appear behind boxes
	for _, shape := range s.edges {
		p.edge(shape)
	}
	for _, el := range s.elements {
		p.element(el)
	}
	for _, shape := range s.edges {
		if shape.label != "" {
			p.label(shape, s.background)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// fitScale reduces scale until a canvas of size fits within
// maxRasterSide on each side and maxRasterPixels in total.
func fitScale(size geometry.Size, scale float64) float64 {
	fit := scale
	if side := math.Max(size.Width, size.Height) * fit; side > maxRasterSide {
		fit *= maxRasterSide / side
	}
	if area := size.Width * fit * size.Height * fit; area > maxRasterPixels {
		fit *= math.Sqrt(maxRasterPixels / area)
	}
	if fit == scale {
		return scale
	}
	// Rounding up must not push either side back over the limit
	return fit * (1 - 1e-6)
}

type pngPainter struct {
	dc     *gg.Context
	font   *truetype.Font
	scale  float64
	origin geometry.Point
}

// px converts a canvas point to image pixels.
func (p *pngPainter) px(pt geometry.Point) (float64, float64) {
	return (pt.X - p.origin.X) * p.scale, (pt.Y - p.origin.Y) * p.scale
}

func (p *pngPainter) face(size float64) font.Face {
	return truetype.NewFace(p.font, &truetype.Options{
		Size:    size * p.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// legible reports whether text of size renders at least a pixel tall.
func (p *pngPainter) legible(size float64) bool {
	return size*p.scale >= 1
}

// trace adds the route's commands to the current path.
func (p *pngPainter) trace(cmds []connections.Command) {
	for _, c := range cmds {
		switch c.Op {
		case connections.OpMove:
			p.dc.MoveTo(p.px(c.Pts[0]))
		case connections.OpLine:
			p.dc.LineTo(p.px(c.Pts[0]))
		case connections.OpQuad:
			x1, y1 := p.px(c.Pts[0])
			x, y := p.px(c.Pts[1])
			p.dc.QuadraticTo(x1, y1, x, y)
		case connections.OpCubic:
			x1, y1 := p.px(c.Pts[0])
			x2, y2 := p.px(c.Pts[1])
			x, y := p.px(c.Pts[2])
			p.dc.CubicTo(x1, y1, x2, y2, x, y)
		}
	}
}

func (p *pngPainter) edge(shape edgeShape) {
	st := shape.edge.Style
	dc := p.dc

	dc.SetLineWidth(strokeWidthOf(st) * p.scale)
	dc.SetDash(p.dashes(st.Dash)...)
	setPaint(dc, strokeOf(st), opacityOf(st), defaultStroke)
	p.trace(shape.route.Commands)
	dc.Stroke()
	dc.SetDash()

	for _, h := range shape.heads {
		if h.Type == diagram.ArrowBarbed {
			dc.MoveTo(p.px(h.Left))
			dc.LineTo(p.px(h.Tip))
			dc.LineTo(p.px(h.Right))
			dc.Stroke()
			continue
		}
		dc.MoveTo(p.px(h.Tip))
		dc.LineTo(p.px(h.Left))
		dc.LineTo(p.px(h.Right))
		dc.ClosePath()
		if h.Filled() {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	}
}

func (p *pngPainter) element(el diagram.Element) {
	dc := p.dc
	box := el.Box()
	x, y := p.px(box.Position)
	w, h := box.Size.Width*p.scale, box.Size.Height*p.scale
	st := el.Style

	if el.Type != diagram.ElementText {
		dc.DrawRoundedRectangle(x, y, w, h, st.Radius*p.scale)
		if el.Type != diagram.ElementContainer || st.Fill != "" {
			setPaint(dc, st.Fill, opacityOf(st), defaultFill)
			dc.FillPreserve()
		}
		dc.SetLineWidth(strokeWidthOf(st) * p.scale)
		dc.SetDash(p.dashes(st.Dash)...)
		setPaint(dc, strokeOf(st), opacityOf(st), defaultStroke)
		dc.Stroke()
		dc.SetDash()
	}

	if el.Text != "" && p.legible(14) {
		cx, cy := p.px(box.Center())
		dc.SetFontFace(p.face(14))
		setPaint(dc, "#1a1a1a", 1, defaultStroke)
		dc.DrawStringAnchored(el.Text, cx, cy, 0.5, 0.5)
	}
}

func (p *pngPainter) label(shape edgeShape, background string) {
	dc := p.dc
	x, y := p.px(shape.labelBox.Position)
	dc.DrawRoundedRectangle(x, y, shape.labelBox.Size.Width*p.scale, shape.labelBox.Size.Height*p.scale, 2*p.scale)
	setPaint(dc, background, 1, defaultBackground)
	dc.Fill()

	if !p.legible(10) {
		return
	}
	cx, cy := p.px(shape.labelAt)
	dc.SetFontFace(p.face(10))
	setPaint(dc, labelColor, 1, labelColor)
	dc.DrawStringAnchored(shape.label, cx, cy, 0.5, 0.5)
}

// dashes parses an SVG dash array such as "5,5" or "4 2" into pixels.
func (p *pngPainter) dashes(pattern string) []float64 {
	fields := strings.FieldsFunc(pattern, func(r rune) bool { return r == ',' || r == ' ' })
	var out []float64
	var sum float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil
		}
		out = append(out, v*p.scale)
		sum += v * p.scale
	}
	// Sub-pixel patterns are drawn solid
	if sum < 1 {
		return nil
	}
	return out
}

// setPaint selects a hex colour, falling back when hex does not parse.
func setPaint(dc *gg.Context, hex string, alpha float64, fallback string) {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallback)
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}
