package config

import (
	"github.com/zscript/textframe/internal/textbox"
	"github.com/zscript/textframe/internal/validation"
)

// MaxWidth bounds the widths accepted from config and flags.
const MaxWidth = 1000

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	Render   RenderSettings
	LogLevel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	return &Config{
		Paths:    paths,
		Render:   defaultRenderSettings(),
		LogLevel: "info",
	}, nil
}

// Load loads config overrides from path, or from the default config file
// when path is empty. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg.Paths.ConfigPath = path
	}

	render, level, err := loadSettings(cfg.Paths.ConfigPath, cfg.Render, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg.Render = render
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if err := validation.ValidateSize("render.width", c.Render.Width, MaxWidth); err != nil {
		return err
	}
	if c.Render.Width < textbox.MinTextWidth {
		return &validation.ValidationError{Field: "render.width", Message: "must leave room for text"}
	}
	if err := validation.ValidateNonNegative("render.indent_on_wrap", c.Render.IndentOnWrap); err != nil {
		return err
	}
	if err := validation.ValidateGlyphs("render.indent", c.Render.IndentString); err != nil {
		return err
	}
	if err := validation.ValidateColorMode(c.Render.Color); err != nil {
		return validation.WithPrefix("render", err)
	}
	return validation.ValidateLogLevel(c.LogLevel)
}
