// Package app wires the capture, recognition, and control layers into
// the running pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/sink"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleTimeout is how long without motion before capture drops back
	// to the idle rate.
	IdleTimeout = 2 * time.Second
	// resolveInterval is the consumer tick; roughly 30 Hz.
	resolveInterval = 33 * time.Millisecond
	// snapshotQueueSize bounds frames waiting for the consumer. New
	// snapshots are dropped when the queue is full so the producer
	// never blocks on a slow consumer.
	snapshotQueueSize = 2
)

// Config holds the application's dependencies and tuning. Zero-value
// fields fall back to defaults; Camera, Detector, and Sink may be
// injected for tests.
type Config struct {
	Store    *store.Store
	Camera   capture.Camera
	Detector detector.Detector
	Sink     control.Sink

	CameraID        int
	Mirror          bool
	MotionThreshold float64

	PluginDir     string
	PluginTimeout time.Duration

	Recognizer gesture.Config
	Cooldown   time.Duration

	ScreenWidth       int
	ScreenHeight      int
	Smoothing         float64
	ControlZoneMargin float64

	// Publish pushes pipeline state snapshots to observers; nil
	// disables publishing.
	Publish func(server.State)
}

// snapshot is one detected frame handed from the producer to the
// consumer.
type snapshot struct {
	hands     []detector.HandLandmarks
	timestamp time.Time
}

// App owns the pipeline goroutines and the components they run.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	recognizer *gesture.Recognizer
	gate       *gesture.Gate
	dispatcher *control.Dispatcher
	pluginMgr  *plugin.Manager

	snapshots chan snapshot

	mu         sync.RWMutex
	enabled    bool
	lastAction string
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// New assembles an App from the config. Control starts disabled; the
// tray or server enables it.
func New(config Config) *App {
	a := &App{
		config:    config,
		motion:    capture.NewMotionDetector(config.MotionThreshold),
		snapshots: make(chan snapshot, snapshotQueueSize),
	}

	a.camera = config.Camera
	if a.camera == nil {
		a.camera = capture.NewCamera(config.CameraID)
	}
	a.camera.SetMirror(config.Mirror)

	a.detector = config.Detector
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	a.recognizer = gesture.NewRecognizer(config.Recognizer)
	a.gate = gesture.NewGate(config.Cooldown)

	a.pluginMgr = plugin.NewManager(config.PluginDir)

	actionSink := config.Sink
	if actionSink == nil {
		executor := plugin.NewExecutor(config.PluginTimeout)
		actionSink = sink.NewPluginSink(a.pluginMgr, executor)
	}
	throttled := control.NewThrottled(actionSink)

	width, height := config.ScreenWidth, config.ScreenHeight
	if width <= 0 || height <= 0 {
		width, height = 1920, 1080
	}
	pointer := control.NewPointerFilter(width, height, config.Smoothing)

	a.dispatcher = control.NewDispatcher(a.gate, throttled, pointer)
	a.dispatcher.SetControlZoneMargin(config.ControlZoneMargin)
	a.dispatcher.OnAction(a.recordAction)

	return a
}

// recordAction logs a dispatched action and appends it to the event log.
func (a *App) recordAction(e control.Event) {
	a.mu.Lock()
	a.lastAction = e.Action
	a.mu.Unlock()

	log.Printf("Action: %s (gesture %s)", e.Action, e.Gesture)

	if a.config.Store != nil {
		err := a.config.Store.Events().Create(&store.Event{
			Gesture:   string(e.Gesture),
			Action:    e.Action,
			CreatedAt: e.Timestamp,
		})
		if err != nil {
			log.Printf("Failed to log event: %v", err)
		}
	}
}

// DiscoverPlugins scans the plugin directory.
func (a *App) DiscoverPlugins() error {
	if err := a.pluginMgr.Discover(); err != nil {
		return err
	}
	log.Printf("Discovered %d plugins", len(a.pluginMgr.List()))
	return nil
}

// Start opens the camera and launches the pipeline goroutines.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(2)
	go a.produce(a.stopCh)
	go a.consume(a.stopCh)

	log.Println("Pipeline started")
	return nil
}

// Stop halts the pipeline and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Pipeline stopped")
}

// SetEnabled turns gesture control on or off. Disabling resets the
// recognizer and dispatcher so stale state cannot fire on re-enable.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.recognizer.Reset()
		a.dispatcher.Reset()
		// Only the cooldowns are cleared; the emergency-stop latch
		// belongs to the UI and survives a control toggle.
		a.gate.ClearCooldowns()
	}
}

// IsEnabled reports whether gesture control is on.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetEmergencyStop toggles the emergency stop. Engaging it also ends
// any drag in progress.
func (a *App) SetEmergencyStop(stopped bool) {
	a.gate.SetEmergencyStop(stopped)
	if stopped {
		a.dispatcher.Reset()
	}
}

// EmergencyStopped reports whether the emergency stop is engaged.
func (a *App) EmergencyStopped() bool {
	return a.gate.EmergencyStopped()
}

// LastAction returns the most recently dispatched action name.
func (a *App) LastAction() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastAction
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Dispatcher returns the action dispatcher.
func (a *App) Dispatcher() *control.Dispatcher {
	return a.dispatcher
}

// Recognizer returns the gesture recognizer.
func (a *App) Recognizer() *gesture.Recognizer {
	return a.recognizer
}

// Gate returns the activation gate.
func (a *App) Gate() *gesture.Gate {
	return a.gate
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}
