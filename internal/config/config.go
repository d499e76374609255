// Package config loads pdfview settings from defaults, a YAML file and
// PDFVIEW_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/kk-code-lab/pdfview/internal/geometry"
)

const envPrefix = "PDFVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PDFVIEW_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// PDFVIEW_INITIAL_SCALE -> initial_scale, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
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

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Source == "" && len(c.Sources) == 0 {
		return fmt.Errorf("source is required")
	}
	if c.InitialScale < geometry.MinScale || c.InitialScale > geometry.MaxScale {
		return fmt.Errorf("initial_scale %v out of range [%v, %v]", c.InitialScale, geometry.MinScale, geometry.MaxScale)
	}
	if c.ResizeCooldown < 0 {
		return fmt.Errorf("resize_cooldown must be non-negative")
	}
	if c.PageConcurrency < 0 {
		return fmt.Errorf("page_concurrency must be non-negative")
	}
	if _, _, err := c.Width(); err != nil {
		return err
	}
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Width resolves container_width. fixed is false for "auto".
func (c *Config) Width() (px float64, fixed bool, err error) {
	w := strings.TrimSpace(c.ContainerWidth)
	if w == "" || strings.EqualFold(w, AutoWidth) {
		return 0, false, nil
	}
	px = geometry.Dimension(w)
	if px <= 0 {
		return 0, false, fmt.Errorf("invalid container_width %q: want %q or a size such as \"120px\"", c.ContainerWidth, AutoWidth)
	}
	return px, true, nil
}
