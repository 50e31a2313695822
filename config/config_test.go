package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edgeflow.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Routing.Padding != 20 || cfg.Routing.MinExtension != 100 || cfg.Cache.Size != 256 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg2, _ := Load(""); cfg2.Terminal.CellWidth != 8 {
		t.Error("empty path should give defaults")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
routing:
  padding: 30
  min_extension: 100
  corner_radius: 4
cache:
  size: 0
export:
  scale: 2
  margin: 20
  background: "#000000"
log:
  level: debug
confirmations: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Routing.Padding != 30 || cfg.Routing.CornerRadius != 4 {
		t.Errorf("routing: got %+v", cfg.Routing)
	}
	if cfg.Cache.Size != 0 || cfg.Export.Scale != 2 || cfg.Export.Background != "#000000" {
		t.Errorf("cache/export: got %+v %+v", cfg.Cache, cfg.Export)
	}
	if cfg.Log.Level != "debug" || cfg.Confirmations {
		t.Errorf("log/confirmations: got %q %v", cfg.Log.Level, cfg.Confirmations)
	}
	// Keys absent from the file keep their defaults
	if cfg.Terminal.CellHeight != 16 {
		t.Errorf("terminal defaults lost: %+v", cfg.Terminal)
	}
	if opts := cfg.PlannerOptions(); opts.Padding != 30 || opts.MinExtension != 100 {
		t.Errorf("PlannerOptions: got %+v", opts)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{"bad yaml", "routing: [", "failed to parse"},
		{"negative padding", "routing:\n  padding: -1\n", "routing.padding"},
		{"zero scale", "export:\n  scale: 0\n", "export.scale"},
		{"negative cache", "cache:\n  size: -3\n", "cache.size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestSavePath(t *testing.T) {
	cfg := Default()
	if got, err := cfg.SavePath("a.json"); err != nil || got != "a.json" {
		t.Errorf("no save directory: got %q, %v", got, err)
	}

	dir := filepath.Join(t.TempDir(), "diagrams")
	cfg.SaveDirectory = dir
	if got, err := cfg.SavePath("a.json"); err != nil || got != filepath.Join(dir, "a.json") {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("save directory should be created: %v", err)
	}
	if got, err := cfg.SavePath("/abs/a.json"); err != nil || got != "/abs/a.json" {
		t.Errorf("absolute paths pass through: got %q, %v", got, err)
	}
}

func TestSavePath_DirectoryNotCreatable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.SaveDirectory = filepath.Join(blocker, "diagrams")

	got, err := cfg.SavePath("a.json")
	if err == nil {
		t.Fatalf("expected an error for a save directory under a file, got %q", got)
	}
	if !strings.Contains(err.Error(), "save directory") {
		t.Errorf("error should name the save directory: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/diagrams"); got != filepath.Join(home, "diagrams") {
		t.Errorf("got %q", got)
	}
	if got := expandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("got %q", got)
	}
}
