package config

import "time"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".pdfview.yml"

// AutoWidth makes the page box follow the terminal width.
const AutoWidth = "auto"

// DefaultConfig returns a Config with the previewer's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Source:          "compressed.tracemonkey-pldi-09.pdf",
		AutoBindResize:  true,
		InitialScale:    1,
		ResizeCooldown:  200 * time.Millisecond,
		ContainerWidth:  AutoWidth,
		PageConcurrency: 0,
		LogLevel:        "info",
	}
}
