package config

import (
	"errors"
	"os"

	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/renderer/flush"
)

// MaxFPSLimit is the largest accepted frame-rate cap.
const MaxFPSLimit = 1000

// Config is the complete runtime configuration.
type Config struct {
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Debug   DebugConfig   `toml:"debug" yaml:"debug"`
}

// RenderConfig controls frame scheduling and terminal output.
type RenderConfig struct {
	// MaxFPS caps the frame rate; 0 means uncapped.
	MaxFPS int `toml:"max_fps" yaml:"max_fps"`
	// ColorProfile is one of auto, truecolor, 256, 16 or mono.
	ColorProfile string `toml:"color_profile" yaml:"color_profile"`
	// AltScreen draws on the terminal's alternate screen.
	AltScreen bool `toml:"alt_screen" yaml:"alt_screen"`
}

// LoggingConfig controls the log sink.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty discards logs, since the terminal
	// belongs to the renderer.
	File string `toml:"file" yaml:"file"`
}

// DebugConfig holds development switches.
type DebugConfig struct {
	// ShowStack adds stack traces to error boxes.
	ShowStack bool `toml:"show_stack" yaml:"show_stack"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			MaxFPS:       60,
			ColorProfile: "auto",
			AltScreen:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and joins all failures.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.MaxFPS < 0 || c.Render.MaxFPS > MaxFPSLimit {
		errs = append(errs, &ValidationError{
			Path:    "render.max_fps",
			Value:   c.Render.MaxFPS,
			Message: "must be between 0 and 1000",
		})
	}
	if _, err := flush.ParseProfile(c.Render.ColorProfile, os.Getenv); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "render.color_profile",
			Value:   c.Render.ColorProfile,
			Message: "must be auto, truecolor, 256, 16 or mono",
		})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Value:   c.Logging.Level,
			Message: "must be debug, info, warn or error",
		})
	}
	return errors.Join(errs...)
}

// Profile resolves the configured color profile against the environment.
// Call it only on a validated config.
func (c *Config) Profile() flush.Profile {
	p, _ := flush.ParseProfile(c.Render.ColorProfile, os.Getenv)
	return p
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logging.Level {
	l, _ := logging.ParseLevel(c.Logging.Level)
	return l
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
