// Package config loads the optional ~/.edgeflow.yaml settings file.
package config

import (
	"edgeflow/connections"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name in the user's home directory.
const FileName = ".edgeflow.yaml"

// Config represents the optional edgeflow.yaml configuration.
type Config struct {
	Routing       RoutingConfig  `yaml:"routing"`
	Cache         CacheConfig    `yaml:"cache"`
	Export        ExportConfig   `yaml:"export"`
	Terminal      TerminalConfig `yaml:"terminal"`
	Log           LogConfig      `yaml:"log"`
	SaveDirectory string         `yaml:"save_directory,omitempty"`
	Confirmations bool           `yaml:"confirmations"`
}

// RoutingConfig tunes the path planner.
type RoutingConfig struct {
	Padding      float64 `yaml:"padding"`
	MinExtension float64 `yaml:"min_extension"`
	CornerRadius float64 `yaml:"corner_radius"` // given to edges added with -connect
}

// CacheConfig sizes the route cache. Zero disables it.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// ExportConfig controls raster and vector output.
type ExportConfig struct {
	Scale      float64 `yaml:"scale"`
	Margin     float64 `yaml:"margin"`
	Background string  `yaml:"background,omitempty"` // empty uses the diagram's canvas colour
}

// TerminalConfig maps canvas units onto terminal cells.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// LogConfig selects the log level; empty keeps logging silent.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Routing: RoutingConfig{
			Padding:      connections.DefaultPadding,
			MinExtension: connections.DefaultMinExtension,
			CornerRadius: 8,
		},
		Cache:         CacheConfig{Size: 256},
		Export:        ExportConfig{Scale: 1, Margin: 20},
		Terminal:      TerminalConfig{CellWidth: 8, CellHeight: 16},
		Confirmations: true,
	}
}

// PlannerOptions returns the routing settings as planner options.
func (c *Config) PlannerOptions() connections.Options {
	return connections.Options{Padding: c.Routing.Padding, MinExtension: c.Routing.MinExtension}
}

// DefaultPath returns ~/.edgeflow.yaml, or "" when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the config file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.SaveDirectory = expandHome(strings.TrimSpace(cfg.SaveDirectory))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Routing.Padding < 0:
		return fmt.Errorf("routing.padding must not be negative, got %v", c.Routing.Padding)
	case c.Routing.MinExtension <= 0:
		return fmt.Errorf("routing.min_extension must be positive, got %v", c.Routing.MinExtension)
	case c.Routing.CornerRadius < 0:
		return fmt.Errorf("routing.corner_radius must not be negative, got %v", c.Routing.CornerRadius)
	case c.Cache.Size < 0:
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	case c.Export.Scale <= 0:
		return fmt.Errorf("export.scale must be positive, got %v", c.Export.Scale)
	case c.Export.Margin < 0:
		return fmt.Errorf("export.margin must not be negative, got %v", c.Export.Margin)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("terminal cell size must be positive, got %vx%v", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}

// SavePath places filename in the configured save directory, creating it
// if needed. Without a save directory the name is returned unchanged.
func (c *Config) SavePath(filename string) (string, error) {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
