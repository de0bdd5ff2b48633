// Package config handles objtool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objmesh/pkg/formats"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all objtool settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader" toml:"loader"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// LoaderConfig holds OBJ loader settings.
type LoaderConfig struct {
	MaxPolygon  int  `yaml:"max_polygon" toml:"max_polygon"`   // Max vertex groups per face
	IndexWidth  int  `yaml:"index_width" toml:"index_width"`   // Index buffer width in bits: 16 or 32
	WarnUnknown bool `yaml:"warn_unknown" toml:"warn_unknown"` // Log skipped keywords
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			MaxPolygon:  formats.DefaultOBJMaxPolygon,
			IndexWidth:  32,
			WarnUnknown: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Loader.IndexWidth != 16 && c.Loader.IndexWidth != 32 {
		return fmt.Errorf("%w: index_width must be 16 or 32, got %d", ErrInvalidConfig, c.Loader.IndexWidth)
	}
	if c.Loader.MaxPolygon < 3 {
		return fmt.Errorf("%w: max_polygon must be at least 3, got %d", ErrInvalidConfig, c.Loader.MaxPolygon)
	}
	return nil
}

// OBJOptions converts the loader settings to OBJ loader options.
func (c LoaderConfig) OBJOptions() formats.OBJOptions {
	return formats.OBJOptions{MaxPolygon: c.MaxPolygon}
}
