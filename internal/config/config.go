// Package config loads the optional YAML configuration file that exposes the
// detection tunables and application settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/drishti/internal/gesture"
)

// Config is the full application configuration.
type Config struct {
	CameraID   int             `yaml:"camera_id"`
	ListenAddr string          `yaml:"listen_addr"`
	Detection  DetectionConfig `yaml:"detection"`
	Speech     SpeechConfig    `yaml:"speech"`
}

// DetectionConfig exposes every tunable of the blink state machine plus the
// gaze confidence floor. All durations are in milliseconds.
type DetectionConfig struct {
	ClosureThreshold  float64 `yaml:"closure_threshold"`
	DebounceMs        int64   `yaml:"debounce_ms"`
	MinBlinkMs        int64   `yaml:"min_blink_ms"`
	MaxBlinkMs        int64   `yaml:"max_blink_ms"`
	LongBlinkMs       int64   `yaml:"long_blink_ms"`
	CombineMs         int64   `yaml:"combine_ms"`
	SettleMs          int64   `yaml:"settle_ms"`
	WindowMs          int64   `yaml:"window_ms"`
	CooldownMs        int64   `yaml:"cooldown_ms"`
	MinGazeConfidence float64 `yaml:"min_gaze_confidence"`
	MotionThreshold   float64 `yaml:"motion_threshold"`
}

// SpeechConfig names the text-to-speech command.
type SpeechConfig struct {
	Binary    string   `yaml:"binary"`
	Args      []string `yaml:"args"`
	TimeoutMs int      `yaml:"timeout_ms"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	g := gesture.DefaultConfig()

	return &Config{
		CameraID:   0,
		ListenAddr: ":8080",
		Detection: DetectionConfig{
			ClosureThreshold:  g.ClosureThreshold,
			DebounceMs:        g.DebounceMs,
			MinBlinkMs:        g.MinBlinkMs,
			MaxBlinkMs:        g.MaxBlinkMs,
			LongBlinkMs:       g.LongBlinkMs,
			CombineMs:         g.CombineMs,
			SettleMs:          g.SettleMs,
			WindowMs:          g.WindowMs,
			CooldownMs:        g.CooldownMs,
			MinGazeConfidence: 0, // accept any estimate
			MotionThreshold:   1.0,
		},
		Speech: SpeechConfig{
			TimeoutMs: 10000,
		},
	}
}

// Load reads the configuration file at path, filling unset values from
// Default. A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults backfills zero values that have no meaningful zero.
func applyDefaults(cfg *Config) {
	d := Default()

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = d.ListenAddr
	}
	if cfg.Detection.ClosureThreshold == 0 {
		cfg.Detection.ClosureThreshold = d.Detection.ClosureThreshold
	}
	if cfg.Detection.MinBlinkMs == 0 {
		cfg.Detection.MinBlinkMs = d.Detection.MinBlinkMs
	}
	if cfg.Detection.MaxBlinkMs == 0 {
		cfg.Detection.MaxBlinkMs = d.Detection.MaxBlinkMs
	}
	if cfg.Detection.LongBlinkMs == 0 {
		cfg.Detection.LongBlinkMs = d.Detection.LongBlinkMs
	}
	if cfg.Detection.CombineMs == 0 {
		cfg.Detection.CombineMs = d.Detection.CombineMs
	}
	if cfg.Detection.SettleMs == 0 {
		cfg.Detection.SettleMs = d.Detection.SettleMs
	}
	if cfg.Detection.WindowMs == 0 {
		cfg.Detection.WindowMs = d.Detection.WindowMs
	}
	if cfg.Detection.CooldownMs == 0 {
		cfg.Detection.CooldownMs = d.Detection.CooldownMs
	}
	if cfg.Detection.MotionThreshold == 0 {
		cfg.Detection.MotionThreshold = d.Detection.MotionThreshold
	}
	if cfg.Speech.TimeoutMs == 0 {
		cfg.Speech.TimeoutMs = d.Speech.TimeoutMs
	}
}

// Validate rejects configurations the state machine cannot run with.
func Validate(cfg *Config) error {
	det := cfg.Detection

	if det.ClosureThreshold <= 0 || det.ClosureThreshold >= 1 {
		return fmt.Errorf("detection.closure_threshold must be in (0, 1), got %f", det.ClosureThreshold)
	}
	if det.MinBlinkMs < 0 || det.MaxBlinkMs <= det.MinBlinkMs {
		return errors.New("detection blink duration range is inverted")
	}
	if det.LongBlinkMs <= det.MinBlinkMs || det.LongBlinkMs > det.MaxBlinkMs {
		return errors.New("detection.long_blink_ms must fall inside the valid blink range")
	}
	if det.CombineMs <= 0 || det.WindowMs < det.CombineMs {
		return errors.New("detection.window_ms must cover detection.combine_ms")
	}
	if det.CooldownMs < 0 {
		return errors.New("detection.cooldown_ms must not be negative")
	}

	return nil
}

// Gesture converts the detection section into the engine's Config.
func (c *Config) Gesture() gesture.Config {
	return gesture.Config{
		ClosureThreshold: c.Detection.ClosureThreshold,
		DebounceMs:       c.Detection.DebounceMs,
		MinBlinkMs:       c.Detection.MinBlinkMs,
		MaxBlinkMs:       c.Detection.MaxBlinkMs,
		LongBlinkMs:      c.Detection.LongBlinkMs,
		CombineMs:        c.Detection.CombineMs,
		SettleMs:         c.Detection.SettleMs,
		WindowMs:         c.Detection.WindowMs,
		CooldownMs:       c.Detection.CooldownMs,
	}
}
