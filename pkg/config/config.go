// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/termplay/pkg/glyph"
	"github.com/user/termplay/pkg/orchestrator"
	"github.com/user/termplay/pkg/pipeline"
	"github.com/user/termplay/pkg/playback"
	"github.com/user/termplay/pkg/stages/convert"
)

// Config represents the full configuration for termplay.
type Config struct {
	// Rendering
	Glyphs string `yaml:"glyphs"`
	Scaler string `yaml:"scaler"`

	// Pipeline
	QueueCapacity int `yaml:"queue_capacity"`
	PushTimeoutMs int `yaml:"push_timeout_ms"`
	PopTimeoutMs  int `yaml:"pop_timeout_ms"`

	// Playback
	DefaultFPS float64 `yaml:"default_fps"`

	// Terminal size used when the real size cannot be read.
	FallbackColumns int `yaml:"fallback_columns"`
	FallbackRows    int `yaml:"fallback_rows"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Glyphs: glyph.DefaultRamp,
		Scaler: string(convert.ScalerBilinear),

		QueueCapacity: pipeline.DefaultQueueCapacity,
		PushTimeoutMs: int(pipeline.DefaultPushTimeout / time.Millisecond),
		PopTimeoutMs:  int(playback.DefaultPollTimeout / time.Millisecond),

		DefaultFPS: playback.DefaultFPS,

		FallbackColumns: 80,
		FallbackRows:    24,

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Glyphs == "":
		return fmt.Errorf("%w: glyphs must not be empty", ErrInvalid)
	case c.QueueCapacity <= 0:
		return fmt.Errorf("%w: queue_capacity must be positive, got %d", ErrInvalid, c.QueueCapacity)
	case c.PushTimeoutMs <= 0:
		return fmt.Errorf("%w: push_timeout_ms must be positive, got %d", ErrInvalid, c.PushTimeoutMs)
	case c.PopTimeoutMs <= 0:
		return fmt.Errorf("%w: pop_timeout_ms must be positive, got %d", ErrInvalid, c.PopTimeoutMs)
	case c.DefaultFPS <= 0:
		return fmt.Errorf("%w: default_fps must be positive, got %v", ErrInvalid, c.DefaultFPS)
	case c.FallbackColumns <= 0 || c.FallbackRows <= 1:
		return fmt.Errorf("%w: fallback terminal size %dx%d too small", ErrInvalid, c.FallbackColumns, c.FallbackRows)
	}

	switch convert.Scaler(c.Scaler) {
	case convert.ScalerNearest, convert.ScalerBilinear, convert.ScalerCatmull:
	default:
		return fmt.Errorf("%w: unknown scaler %q", ErrInvalid, c.Scaler)
	}
	return nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(path string, fpsOverride float64) orchestrator.Config {
	return orchestrator.Config{
		Path:          path,
		Glyphs:        glyph.NewTable(c.Glyphs),
		Scaler:        convert.Scaler(c.Scaler),
		QueueCapacity: c.QueueCapacity,
		PushTimeout:   time.Duration(c.PushTimeoutMs) * time.Millisecond,
		PollTimeout:   time.Duration(c.PopTimeoutMs) * time.Millisecond,
		FPSOverride:   fpsOverride,
		DefaultFPS:    c.DefaultFPS,
	}
}
