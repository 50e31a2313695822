package export

import (
	"bytes"
	"edgeflow/diagram"
)

// JSONExporter exports diagrams to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a diagram to JSON
func (e *JSONExporter) Export(d *diagram.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := diagram.Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
