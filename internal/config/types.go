package config

import "time"

// Config is the pdfview configuration, corresponding to .pdfview.yml.
type Config struct {
	Source          string        `yaml:"source" koanf:"source"`
	Sources         []string      `yaml:"sources" koanf:"sources"`
	AutoBindResize  bool          `yaml:"auto_bind_resize" koanf:"auto_bind_resize"`
	InitialScale    float64       `yaml:"initial_scale" koanf:"initial_scale"`
	ResizeCooldown  time.Duration `yaml:"resize_cooldown" koanf:"resize_cooldown"`
	ContainerWidth  string        `yaml:"container_width" koanf:"container_width"`
	PageConcurrency int           `yaml:"page_concurrency" koanf:"page_concurrency"`
	Watch           bool          `yaml:"watch" koanf:"watch"`
	LogFile         string        `yaml:"log_file" koanf:"log_file"`
	LogLevel        string        `yaml:"log_level" koanf:"log_level"`
}
