package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON diagram and repairs missing or duplicate ids.
func Decode(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode diagram: %w", err)
	}
	if d.Version == "" {
		d.Version = Version
	}
	EnsureUniqueIDs(&d)
	return &d, nil
}

// Load reads a diagram file.
func Load(filename string) (*Diagram, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// Encode writes the diagram as indented JSON.
func Encode(w io.Writer, d *Diagram) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Save writes the diagram to filename.
func Save(filename string, d *Diagram) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal diagram: %w", err)
	}
	return os.WriteFile(filename, append(data, '\n'), 0644)
}
