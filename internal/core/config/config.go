// Package config handles configuration loading and validation for flare.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/flare/internal/core/styles"
	"github.com/colonyops/flare/internal/core/toast"
)

// Config holds the application configuration.
type Config struct {
	Toast   ToastConfig   `yaml:"toast"`
	TUI     TUIConfig     `yaml:"tui"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ToastConfig holds the toast manager defaults.
type ToastConfig struct {
	Position      string `yaml:"position"`       // default anchor, e.g. "bottom end"
	Duration      int    `yaml:"duration"`       // milliseconds, 0 = persistent
	MaxVisible    int    `yaml:"max_visible"`    // toasts shown while collapsed
	StackExpanded bool   `yaml:"stack_expanded"` // start with the stack expanded
	Width         int    `yaml:"width"`          // toast width in cells
}

// TUIConfig holds terminal presentation settings.
type TUIConfig struct {
	Theme    string `yaml:"theme"`
	Markdown bool   `yaml:"markdown"` // render toast text as markdown
}

// MetricsConfig holds the debug HTTP server settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // listen address, empty disables the server
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Toast: ToastConfig{
			Position:   string(toast.DefaultPosition),
			Duration:   int(toast.DefaultDuration / time.Millisecond),
			MaxVisible: toast.DefaultMaxVisible,
			Width:      44,
		},
		TUI: TUIConfig{
			Theme:    styles.DefaultTheme,
			Markdown: true,
		},
	}
}

// Load reads configuration from the given path, applies environment
// overrides from lookup and validates the result. If configPath is empty
// or doesn't exist, defaults are used. A nil lookup skips the environment.
func Load(configPath string, lookup func(string) (string, bool)) (*Config, error) {
	cfg, err := Read(configPath, lookup)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that report problems
// themselves.
func Read(configPath string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, fmt.Errorf("invalid environment: %w", err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Toast.Position == "" {
		c.Toast.Position = defaults.Toast.Position
	}
	if c.Toast.Width == 0 {
		c.Toast.Width = defaults.Toast.Width
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// ToastOptions converts the toast section into manager options. The
// config must have been validated.
func (c *Config) ToastOptions() toast.Options {
	opts := toast.DefaultOptions()

	if p, ok := toast.ParsePosition(c.Toast.Position); ok {
		opts.Position = p
	}
	opts.Duration = time.Duration(c.Toast.Duration) * time.Millisecond
	opts.MaxVisible = c.Toast.MaxVisible
	opts.Expanded = c.Toast.StackExpanded

	return opts
}

// Palette returns the configured theme palette, falling back to the
// default theme.
func (c *Config) Palette() styles.Palette {
	if p, ok := styles.GetPalette(c.TUI.Theme); ok {
		return p
	}
	p, _ := styles.GetPalette(styles.DefaultTheme)
	return p
}
