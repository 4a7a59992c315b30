package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Gesture.PinchThreshold != 0.05 {
		t.Errorf("expected default pinch threshold 0.05, got %v", cfg.Gesture.PinchThreshold)
	}
	if cfg.Pointer.Smoothing != 0.3 {
		t.Errorf("expected default smoothing 0.3, got %v", cfg.Pointer.Smoothing)
	}
	if cfg.Pointer.ControlZoneMargin != 0.15 {
		t.Errorf("expected default margin 0.15, got %v", cfg.Pointer.ControlZoneMargin)
	}
	if !cfg.Camera.Mirror {
		t.Error("expected mirroring on by default")
	}
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
pointer:
  smoothing: 0.5
  screen_width: 2560
  screen_height: 1440
gesture:
  cooldown_ms: 750
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Pointer.Smoothing != 0.5 {
		t.Errorf("expected smoothing 0.5, got %v", cfg.Pointer.Smoothing)
	}
	if cfg.Pointer.ScreenWidth != 2560 || cfg.Pointer.ScreenHeight != 1440 {
		t.Errorf("expected 2560x1440, got %dx%d", cfg.Pointer.ScreenWidth, cfg.Pointer.ScreenHeight)
	}
	if cfg.Gesture.CooldownMs != 750 {
		t.Errorf("expected cooldown 750, got %d", cfg.Gesture.CooldownMs)
	}
	// Untouched sections keep their defaults.
	if cfg.Gesture.PinchThreshold != 0.05 {
		t.Errorf("expected default pinch threshold, got %v", cfg.Gesture.PinchThreshold)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("pointer: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative smoothing", func(c *Config) { c.Pointer.Smoothing = -0.1 }},
		{"smoothing above one", func(c *Config) { c.Pointer.Smoothing = 1.5 }},
		{"margin at half", func(c *Config) { c.Pointer.ControlZoneMargin = 0.5 }},
		{"negative margin", func(c *Config) { c.Pointer.ControlZoneMargin = -0.01 }},
		{"zero pinch threshold", func(c *Config) { c.Gesture.PinchThreshold = 0 }},
		{"extended threshold at one", func(c *Config) { c.Gesture.ExtendedThreshold = 1 }},
		{"negative cooldown", func(c *Config) { c.Gesture.CooldownMs = -1 }},
		{"zero screen width", func(c *Config) { c.Pointer.ScreenWidth = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("defaults failed validation: %v", err)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Pointer.Smoothing = 0.45
	cfg.Camera.DeviceID = 2
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Pointer.Smoothing != 0.45 {
		t.Errorf("expected smoothing 0.45, got %v", loaded.Pointer.Smoothing)
	}
	if loaded.Camera.DeviceID != 2 {
		t.Errorf("expected device 2, got %d", loaded.Camera.DeviceID)
	}
}
