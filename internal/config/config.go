// Package config loads the application configuration from a YAML file
// under ~/.mudra, falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Gesture GestureConfig `yaml:"gesture"`
	Pointer PointerConfig `yaml:"pointer"`
	Server  ServerConfig  `yaml:"server"`
	Plugins PluginsConfig `yaml:"plugins"`
}

// CameraConfig controls frame capture.
type CameraConfig struct {
	DeviceID        int     `yaml:"device_id"`
	Mirror          bool    `yaml:"mirror"`
	MotionThreshold float64 `yaml:"motion_threshold"`
}

// GestureConfig controls recognition and activation timing.
type GestureConfig struct {
	PinchThreshold    float64 `yaml:"pinch_threshold"`
	ExtendedThreshold float64 `yaml:"extended_threshold"`
	CooldownMs        int     `yaml:"cooldown_ms"`
	// HoldTimeMs is reserved for hold-to-activate gating and is not
	// applied yet.
	HoldTimeMs int `yaml:"hold_time_ms"`
}

// PointerConfig controls cursor mapping and smoothing.
type PointerConfig struct {
	ScreenWidth       int     `yaml:"screen_width"`
	ScreenHeight      int     `yaml:"screen_height"`
	Smoothing         float64 `yaml:"smoothing"`
	ControlZoneMargin float64 `yaml:"control_zone_margin"`
}

// ServerConfig controls the local HTTP/WebSocket server.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// PluginsConfig controls plugin discovery and execution.
type PluginsConfig struct {
	Dir       string `yaml:"dir"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Camera: CameraConfig{
			DeviceID:        0,
			Mirror:          true,
			MotionThreshold: 1.0,
		},
		Gesture: GestureConfig{
			PinchThreshold:    0.05,
			ExtendedThreshold: 0.6,
			CooldownMs:        500,
		},
		Pointer: PointerConfig{
			ScreenWidth:       1920,
			ScreenHeight:      1080,
			Smoothing:         0.3,
			ControlZoneMargin: 0.15,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8420,
		},
		Plugins: PluginsConfig{
			Dir:       filepath.Join(home, ".mudra", "plugins"),
			TimeoutMs: 2000,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".mudra", "config.yaml")
}

// Load reads the config at path, merging it over defaults. A missing
// file returns defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and rejects values the pipeline cannot use.
func (c *Config) Validate() error {
	if c.Gesture.PinchThreshold <= 0 || c.Gesture.PinchThreshold > 0.5 {
		return fmt.Errorf("gesture.pinch_threshold must be in (0, 0.5], got %v", c.Gesture.PinchThreshold)
	}
	if c.Gesture.ExtendedThreshold <= 0 || c.Gesture.ExtendedThreshold >= 1 {
		return fmt.Errorf("gesture.extended_threshold must be in (0, 1), got %v", c.Gesture.ExtendedThreshold)
	}
	if c.Gesture.CooldownMs < 0 {
		return fmt.Errorf("gesture.cooldown_ms must not be negative, got %d", c.Gesture.CooldownMs)
	}
	if c.Pointer.Smoothing < 0 || c.Pointer.Smoothing > 1 {
		return fmt.Errorf("pointer.smoothing must be in [0, 1], got %v", c.Pointer.Smoothing)
	}
	if c.Pointer.ControlZoneMargin < 0 || c.Pointer.ControlZoneMargin >= 0.5 {
		return fmt.Errorf("pointer.control_zone_margin must be in [0, 0.5), got %v", c.Pointer.ControlZoneMargin)
	}
	if c.Pointer.ScreenWidth <= 0 || c.Pointer.ScreenHeight <= 0 {
		return fmt.Errorf("pointer screen size must be positive, got %dx%d", c.Pointer.ScreenWidth, c.Pointer.ScreenHeight)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	return nil
}

// Save writes the config as YAML, creating the parent directory if
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
