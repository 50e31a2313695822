// Package export renders routed diagrams to files
package export

import (
	"edgeflow/connections"
	"edgeflow/diagram"
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents an export format
type Format string

const (
	// FormatSVG exports vector graphics with the routed path strings
	FormatSVG Format = "svg"
	// FormatPNG exports a raster image
	FormatPNG Format = "png"
	// FormatJSON exports the document itself
	FormatJSON Format = "json"
	// FormatReport exports a terminal-styled table of every route
	FormatReport Format = "report"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a diagram to the target format
	Export(d *diagram.Diagram) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// Options are shared by the exporters that draw routes.
type Options struct {
	Router     *connections.Router
	Scale      float64 // raster pixels per canvas unit
	Margin     float64 // canvas units around the drawing
	Background string  // overrides the diagram's canvas colour
}

// DefaultOptions returns options with an uncached default router.
func DefaultOptions() Options {
	return Options{
		Router: connections.NewRouter(connections.DefaultOptions(), 0),
		Scale:  1,
		Margin: 20,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Router == nil {
		o.Router = def.Router
	}
	if o.Scale <= 0 {
		o.Scale = def.Scale
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	return o
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatSVG:
		return NewSVGExporter(opts), nil
	case FormatPNG:
		return NewPNGExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatReport:
		return NewReportExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "report", "text", "txt":
		return FormatReport, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatSVG,
		FormatPNG,
		FormatJSON,
		FormatReport,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatSVG:    "SVG vector image",
		FormatPNG:    "PNG raster image",
		FormatJSON:   "Diagram document (JSON)",
		FormatReport: "Route report for the terminal",
	}
}
