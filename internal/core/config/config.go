// Package config handles configuration loading and validation for dotwin.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tactilehq/dotwin/internal/core/input"
)

// defaultKeymap provides built-in key bindings that users can override.
// Keys are simulator key names; values are mapped command names.
var defaultKeymap = map[string]string{
	"left":      "pan-up",
	"right":     "pan-down",
	"home":      "pan-to-start",
	"end":       "pan-to-end",
	"down":      "nav-next",
	"up":        "nav-prev",
	"enter":     "activate",
	"tab":       "switch-mode",
	"a":         "toggle-auto-scroll",
	"h":         "global-home",
	"b":         "global-back",
	"n":         "global-notifications",
	"?":         "global-help",
	"s":         "global-settings",
	"backspace": "global-back",
}

// Config holds the application configuration.
type Config struct {
	Display DisplayConfig     `yaml:"display"`
	Tables  TablesConfig      `yaml:"tables"`
	Keymap  map[string]string `yaml:"keymap"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// DisplayConfig sizes the cell window and its timers. Durations are
// plain milliseconds in the file.
type DisplayConfig struct {
	Width           int  `yaml:"width"`
	BlinkIntervalMS int  `yaml:"blink_interval_ms"`
	FlashBaseMS     int  `yaml:"flash_base_ms"`
	FlashPerCellMS  int  `yaml:"flash_per_cell_ms"`
	SplitParagraphs bool `yaml:"split_paragraphs"`
}

// BlinkInterval returns the cursor blink period.
func (d DisplayConfig) BlinkInterval() time.Duration {
	return time.Duration(d.BlinkIntervalMS) * time.Millisecond
}

// FlashBase returns the minimum transient-message duration.
func (d DisplayConfig) FlashBase() time.Duration {
	return time.Duration(d.FlashBaseMS) * time.Millisecond
}

// FlashPerCell returns the per-cell extension of a transient message.
func (d DisplayConfig) FlashPerCell() time.Duration {
	return time.Duration(d.FlashPerCellMS) * time.Millisecond
}

// TablesConfig points at user translation tables.
type TablesConfig struct {
	// Dir holds user table files; empty means builtins only.
	Dir string `yaml:"dir"`
	// Glob filters files inside Dir.
	Glob string `yaml:"glob"`
	// Active selects the startup table by id; empty keeps the first
	// builtin.
	Active string `yaml:"active"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:           40,
			BlinkIntervalMS: 700,
			FlashBaseMS:     1500,
			FlashPerCellMS:  150,
			SplitParagraphs: true,
		},
		Tables: TablesConfig{
			Glob: "*.yaml",
		},
		Keymap:   map[string]string{},
		LogLevel: "warn",
	}
}

// Load reads configuration from the given path. An empty or missing
// path returns defaults.
func Load(configPath string) (*Config, error) {
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

	// Merge user bindings into defaults (user config overrides).
	cfg.Keymap = mergeKeymap(defaultKeymap, cfg.Keymap)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Display.Width == 0 {
		c.Display.Width = defaults.Display.Width
	}
	if c.Display.BlinkIntervalMS == 0 {
		c.Display.BlinkIntervalMS = defaults.Display.BlinkIntervalMS
	}
	if c.Display.FlashBaseMS == 0 {
		c.Display.FlashBaseMS = defaults.Display.FlashBaseMS
	}
	if c.Display.FlashPerCellMS == 0 {
		c.Display.FlashPerCellMS = defaults.Display.FlashPerCellMS
	}
	if c.Tables.Glob == "" {
		c.Tables.Glob = defaults.Tables.Glob
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// mergeKeymap merges user bindings into defaults. User bindings
// override defaults for the same key; an empty command name unbinds.
func mergeKeymap(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		if v == "" {
			delete(result, k)
			continue
		}
		result[k] = v
	}
	return result
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.Display.Width < 1 {
		return fmt.Errorf("display.width must be at least 1")
	}
	if c.Display.BlinkIntervalMS < 0 {
		return fmt.Errorf("display.blink_interval_ms cannot be negative")
	}
	if c.Display.FlashBaseMS < 0 || c.Display.FlashPerCellMS < 0 {
		return fmt.Errorf("display flash durations cannot be negative")
	}

	for key, name := range c.Keymap {
		if _, ok := input.CommandFromName(name); !ok {
			return fmt.Errorf("keymap %q is bound to unknown command %q", key, name)
		}
	}

	return nil
}

// Commands resolves the keymap into command values.
func (c *Config) Commands() map[string]input.Command {
	out := make(map[string]input.Command, len(c.Keymap))
	for key, name := range c.Keymap {
		if cmd, ok := input.CommandFromName(name); ok {
			out[key] = cmd
		}
	}
	return out
}
