package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir string, m Manifest) {
	t.Helper()

	pluginDir := filepath.Join(dir, m.Name)
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), data, 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()

	writeManifest(t, tmpDir, Manifest{
		Name:        "mouse-control",
		Version:     "1.0.0",
		Description: "pointer primitives",
		Executable:  "mouse-control",
		Primitives:  []string{"move_pointer", "click"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	p := plugins[0]
	if p.Manifest.Name != "mouse-control" {
		t.Errorf("expected name 'mouse-control', got %q", p.Manifest.Name)
	}
	if p.Executable != filepath.Join(tmpDir, "mouse-control", "mouse-control") {
		t.Errorf("unexpected executable path %q", p.Executable)
	}
	if !p.Implements("click") {
		t.Error("expected plugin to implement click")
	}
	if p.Implements("volume") {
		t.Error("plugin should not implement volume")
	}
}

func TestManager_DiscoverSkipsInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	// A directory without a manifest and one with broken JSON.
	if err := os.MkdirAll(filepath.Join(tmpDir, "no-manifest"), 0o755); err != nil {
		t.Fatal(err)
	}
	brokenDir := filepath.Join(tmpDir, "broken")
	if err := os.MkdirAll(brokenDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(brokenDir, "plugin.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	writeManifest(t, tmpDir, Manifest{Name: "good", Executable: "good", Primitives: []string{"scroll"}})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if len(manager.List()) != 1 {
		t.Errorf("expected only the valid plugin, got %d", len(manager.List()))
	}
}

func TestManager_DiscoverMissingDir(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := manager.Discover(); err != nil {
		t.Errorf("missing plugin dir should not be an error, got %v", err)
	}
	if len(manager.List()) != 0 {
		t.Errorf("expected no plugins, got %d", len(manager.List()))
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "sys", Executable: "sys"})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatal(err)
	}

	if _, err := manager.Get("sys"); err != nil {
		t.Errorf("Get(sys) failed: %v", err)
	}
	if _, err := manager.Get("nope"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestManager_FindPrimitive(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "sys", Executable: "sys", Primitives: []string{"volume", "minimize_window"}})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatal(err)
	}

	p, err := manager.FindPrimitive("volume")
	if err != nil {
		t.Fatalf("FindPrimitive(volume) failed: %v", err)
	}
	if p.Manifest.Name != "sys" {
		t.Errorf("expected plugin 'sys', got %q", p.Manifest.Name)
	}

	if _, err := manager.FindPrimitive("teleport"); !errors.Is(err, ErrPrimitiveUnbound) {
		t.Errorf("expected ErrPrimitiveUnbound, got %v", err)
	}
}
