// Package config loads the selector's appearance and logging settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/moasq/smenu/internal/logging"
	"github.com/moasq/smenu/internal/terminal"
)

// Config holds the selector configuration.
type Config struct {
	// MinWidth is the narrowest terminal the selector draws into.
	MinWidth int `yaml:"min_width"`

	// Ellipsis replaces the cut off end of an entry too wide to show.
	Ellipsis string `yaml:"ellipsis"`

	// Device is the terminal used for keyboard input and drawing.
	Device string `yaml:"device"`

	Highlight HighlightConfig `yaml:"highlight"`
	Log       LogConfig       `yaml:"log"`
}

// HighlightConfig picks the colors of the selected entry.
type HighlightConfig struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// LogConfig controls the debug log. An empty File disables it.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MinWidth: terminal.DefaultMinWidth,
		Ellipsis: terminal.DefaultEllipsis,
		Device:   terminal.DefaultDevice,
		Highlight: HighlightConfig{
			Foreground: "black",
			Background: "white",
		},
		Log: LogConfig{
			Level: logging.LevelInfo,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/smenu/config.yaml, or
// ~/.config/smenu/config.yaml when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "smenu", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "smenu", "config.yaml")
}

// Load reads the configuration at path on top of the defaults. With an
// empty path the default location is used and a missing file is fine.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config %s: %w", path, ValidationErrors(errs))
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Renderer builds a renderer using the configured width limit, ellipsis
// and highlight colors.
func (c *Config) Renderer() (*terminal.Renderer, error) {
	fg, err := terminal.Foreground(c.Highlight.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := terminal.Background(c.Highlight.Background)
	if err != nil {
		return nil, err
	}
	r := terminal.NewRenderer()
	r.MinWidth = c.MinWidth
	r.Ellipsis = c.Ellipsis
	r.HighlightOn = fg + bg
	return r, nil
}
