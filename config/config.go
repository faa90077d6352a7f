// Package config loads galleria settings from a YAML file with GALLERIA_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment override. Nested keys are separated
// by a double underscore: GALLERIA_WINDOW__WIDTH sets window.width.
const EnvPrefix = "GALLERIA_"

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "galleria.yml"

// SourceKind selects where photos come from.
type SourceKind string

const (
	SourceHTML    SourceKind = "html"
	SourceDir     SourceKind = "dir"
	SourceCatalog SourceKind = "catalog"
)

var validSources = map[SourceKind]bool{
	SourceHTML:    true,
	SourceDir:     true,
	SourceCatalog: true,
}

// Config is the top-level configuration, corresponding to galleria.yml.
type Config struct {
	Window     WindowConfig    `yaml:"window" koanf:"window"`
	Zoom       ZoomConfig      `yaml:"zoom" koanf:"zoom"`
	Source     SourceConfig    `yaml:"source" koanf:"source"`
	Thumbnails ThumbnailConfig `yaml:"thumbnails" koanf:"thumbnails"`
	Workers    int             `yaml:"workers" koanf:"workers"`
	PulseMS    int             `yaml:"pulse_ms" koanf:"pulse_ms"`
	Debug      bool            `yaml:"debug" koanf:"debug"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title      string `yaml:"title" koanf:"title"`
	Width      int    `yaml:"width" koanf:"width"`
	Height     int    `yaml:"height" koanf:"height"`
	Fullscreen bool   `yaml:"fullscreen" koanf:"fullscreen"`
	ShowFPS    bool   `yaml:"show_fps" koanf:"show_fps"`
}

// ZoomConfig holds zoom bounds and the post-reset settle delay.
type ZoomConfig struct {
	Min           float64 `yaml:"min" koanf:"min"`
	Max           float64 `yaml:"max" koanf:"max"`
	Step          float64 `yaml:"step" koanf:"step"`
	SettleDelayMS int     `yaml:"settle_delay_ms" koanf:"settle_delay_ms"`
}

// SourceConfig says where to collect photos from. Path is the page, the
// directory or the catalog database depending on Kind.
type SourceConfig struct {
	Kind    SourceKind `yaml:"kind" koanf:"kind"`
	Path    string     `yaml:"path" koanf:"path"`
	Pattern string     `yaml:"pattern,omitempty" koanf:"pattern"`
	BaseDir string     `yaml:"base_dir,omitempty" koanf:"base_dir"`
}

// ThumbnailConfig holds thumbnail strip settings.
type ThumbnailConfig struct {
	Size int `yaml:"size" koanf:"size"`
	Gap  int `yaml:"gap" koanf:"gap"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "galleria",
			Width:  1280,
			Height: 800,
		},
		Zoom: ZoomConfig{
			Min:           1,
			Max:           5,
			Step:          0.2,
			SettleDelayMS: 100,
		},
		Source: SourceConfig{
			Kind: SourceDir,
			Path: ".",
		},
		Thumbnails: ThumbnailConfig{Size: 80, Gap: 8},
		Workers:    2,
		PulseMS:    10000,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey maps GALLERIA_ZOOM__MAX to zoom.max.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Zoom.Min <= 0 {
		return fmt.Errorf("zoom.min must be positive")
	}
	if c.Zoom.Max < c.Zoom.Min {
		return fmt.Errorf("zoom.max (%g) must not be below zoom.min (%g)", c.Zoom.Max, c.Zoom.Min)
	}
	if c.Zoom.Min > 1 || c.Zoom.Max < 1 {
		return fmt.Errorf("zoom range %g..%g must include 1, the unzoomed fit", c.Zoom.Min, c.Zoom.Max)
	}
	if c.Zoom.Step <= 0 {
		return fmt.Errorf("zoom.step must be positive")
	}
	if c.Zoom.SettleDelayMS < 0 {
		return fmt.Errorf("zoom.settle_delay_ms must be non-negative")
	}
	if !validSources[c.Source.Kind] {
		return fmt.Errorf("invalid source.kind %q: must be one of html, dir, catalog", c.Source.Kind)
	}
	if c.Source.Path == "" {
		return fmt.Errorf("source.path is required")
	}
	if c.Thumbnails.Size <= 0 {
		return fmt.Errorf("thumbnails.size must be positive")
	}
	if c.Thumbnails.Gap < 0 {
		return fmt.Errorf("thumbnails.gap must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}
	return nil
}

// SettleDelay returns the zoom settle delay as a duration.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Zoom.SettleDelayMS) * time.Millisecond
}

// PulseInterval returns the back button pulse interval. Zero or negative
// disables the pulse.
func (c *Config) PulseInterval() time.Duration {
	if c.PulseMS <= 0 {
		return -1
	}
	return time.Duration(c.PulseMS) * time.Millisecond
}
