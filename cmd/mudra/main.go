package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Control")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	applyStoredSettings(st, cfg)

	// The apply hook closes over the app pointer, which is assembled
	// right after the server; the server does not accept requests until
	// ListenAndServe below.
	var a *app.App
	srv := server.New(server.Config{
		Store: st,
		Apply: func(key, value string) error {
			if err := applySetting(cfg, key, value); err != nil {
				return err
			}
			if a != nil {
				a.Dispatcher().SetSmoothing(cfg.Pointer.Smoothing)
				a.Dispatcher().SetControlZoneMargin(cfg.Pointer.ControlZoneMargin)
				a.Camera().SetMirror(cfg.Camera.Mirror)
			}
			return nil
		},
	})

	a = app.New(app.Config{
		Store:           st,
		CameraID:        cfg.Camera.DeviceID,
		Mirror:          cfg.Camera.Mirror,
		MotionThreshold: cfg.Camera.MotionThreshold,
		PluginDir:       cfg.Plugins.Dir,
		PluginTimeout:   time.Duration(cfg.Plugins.TimeoutMs) * time.Millisecond,
		Recognizer: gesture.Config{
			PinchThreshold:    cfg.Gesture.PinchThreshold,
			ExtendedThreshold: cfg.Gesture.ExtendedThreshold,
		},
		Cooldown:          time.Duration(cfg.Gesture.CooldownMs) * time.Millisecond,
		ScreenWidth:       cfg.Pointer.ScreenWidth,
		ScreenHeight:      cfg.Pointer.ScreenHeight,
		Smoothing:         cfg.Pointer.Smoothing,
		ControlZoneMargin: cfg.Pointer.ControlZoneMargin,
		Publish:           srv.State().Publish,
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnEmergencyStop(a.SetEmergencyStop)
	t.OnSettings(func() {
		openBrowser("http://" + addr + "/api/settings")
	})
	t.OnQuit(a.Stop)

	go watchLastAction(a, t)

	// Blocks until quit.
	t.Run()
}

// applyStoredSettings overlays persisted settings onto the file config.
// Unknown keys and unparsable values are logged and skipped.
func applyStoredSettings(st *store.Store, cfg *config.Config) {
	settings, err := st.Settings().All()
	if err != nil {
		log.Printf("Failed to load stored settings: %v", err)
		return
	}

	for key, value := range settings {
		if err := applySetting(cfg, key, value); err != nil {
			log.Printf("Ignoring stored setting %s: %v", key, err)
		}
	}
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "pointer.smoothing":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		cfg.Pointer.Smoothing = f
	case "pointer.control_zone_margin":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		cfg.Pointer.ControlZoneMargin = f
	case "camera.mirror":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		cfg.Camera.Mirror = b
	case "gesture.cooldown_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Gesture.CooldownMs = n
	default:
		return fmt.Errorf("unknown setting")
	}
	return cfg.Validate()
}

// watchLastAction keeps the tray's last-action readout current.
func watchLastAction(a *app.App, t *tray.Tray) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	last := ""
	for range ticker.C {
		if action := a.LastAction(); action != last {
			last = action
			t.SetLastAction(action)
		}
	}
}

func openBrowser(url string) {
	if err := exec.Command("open", url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
