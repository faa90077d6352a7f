package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Zoom.Min != 1 || cfg.Zoom.Max != 5 || cfg.Zoom.Step != 0.2 {
		t.Errorf("zoom defaults = %+v", cfg.Zoom)
	}
	if cfg.SettleDelay() != 100*time.Millisecond {
		t.Errorf("settle delay = %v, want 100ms", cfg.SettleDelay())
	}
	if cfg.PulseInterval() != 10*time.Second {
		t.Errorf("pulse interval = %v, want 10s", cfg.PulseInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galleria.yml")

	original := DefaultConfig()
	original.Window.Title = "herbarium"
	original.Window.Fullscreen = true
	original.Zoom.Max = 8
	original.Source = SourceConfig{Kind: SourceHTML, Path: "site/index.html", BaseDir: "site"}
	original.Workers = 4

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Window != original.Window {
		t.Errorf("window: got %+v, want %+v", loaded.Window, original.Window)
	}
	if loaded.Zoom != original.Zoom {
		t.Errorf("zoom: got %+v, want %+v", loaded.Zoom, original.Zoom)
	}
	if loaded.Source != original.Source {
		t.Errorf("source: got %+v, want %+v", loaded.Source, original.Source)
	}
	if loaded.Workers != 4 {
		t.Errorf("workers: got %d, want 4", loaded.Workers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("missing file should return defaults, got %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("width: got %d, want 1280", cfg.Window.Width)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galleria.yml")
	data := "zoom:\n  max: 3\nsource:\n  kind: catalog\n  path: photos.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Zoom.Max != 3 || cfg.Zoom.Min != 1 {
		t.Errorf("zoom = %+v, want max 3 over default min 1", cfg.Zoom)
	}
	if cfg.Source.Kind != SourceCatalog || cfg.Source.Path != "photos.db" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Thumbnails.Size != 80 {
		t.Errorf("thumbnails.size = %d, want default 80", cfg.Thumbnails.Size)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GALLERIA_WINDOW__WIDTH", "1920")
	t.Setenv("GALLERIA_DEBUG", "true")
	t.Setenv("GALLERIA_SOURCE__KIND", "html")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("width: got %d, want 1920", cfg.Window.Width)
	}
	if !cfg.Debug {
		t.Error("debug should be enabled from the environment")
	}
	if cfg.Source.Kind != SourceHTML {
		t.Errorf("source.kind: got %q", cfg.Source.Kind)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("zoom: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"zero min", func(c *Config) { c.Zoom.Min = 0 }, "zoom.min"},
		{"max below min", func(c *Config) { c.Zoom.Max = 0.5 }, "zoom.max"},
		{"min above 1", func(c *Config) { c.Zoom.Min = 2 }, "must include 1"},
		{"range below 1", func(c *Config) { c.Zoom.Min, c.Zoom.Max = 0.25, 0.5 }, "must include 1"},
		{"wider range", func(c *Config) { c.Zoom.Min, c.Zoom.Max = 0.5, 8 }, ""},
		{"zero step", func(c *Config) { c.Zoom.Step = 0 }, "zoom.step"},
		{"negative settle", func(c *Config) { c.Zoom.SettleDelayMS = -1 }, "settle_delay_ms"},
		{"unknown source", func(c *Config) { c.Source.Kind = "ftp" }, "source.kind"},
		{"no path", func(c *Config) { c.Source.Path = "" }, "source.path"},
		{"zero thumbnails", func(c *Config) { c.Thumbnails.Size = 0 }, "thumbnails.size"},
		{"negative gap", func(c *Config) { c.Thumbnails.Gap = -2 }, "thumbnails.gap"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPulseIntervalDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PulseMS = 0
	if cfg.PulseInterval() >= 0 {
		t.Errorf("pulse interval = %v, want negative (disabled)", cfg.PulseInterval())
	}
}
