// Package config manages application configuration.
package config

import "time"

// Config represents the application configuration.
type Config struct {
	SiteRoot string       `yaml:"site_root"`
	Lookup   LookupConfig `yaml:"lookup"`
	Render   RenderConfig `yaml:"render"`
}

// LookupConfig controls image dimension lookup for captioned images.
type LookupConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxBytes  int64         `yaml:"max_bytes"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// RenderConfig contains page rendering options.
type RenderConfig struct {
	Concurrency int  `yaml:"concurrency"`
	Markdown    bool `yaml:"markdown"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SiteRoot: "source",
		Lookup: LookupConfig{
			Enabled:   true,
			Timeout:   10 * time.Second,
			MaxBytes:  8 << 20,
			UserAgent: "imgtag",
		},
		Render: RenderConfig{
			Concurrency: 8,
			Markdown:    false,
		},
	}
}
