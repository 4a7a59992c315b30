// Package tray provides the system tray menu for controlling the
// pipeline: a control toggle, the emergency stop, and a last-action
// readout.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray menu.
type Tray struct {
	onToggle        func(enabled bool)
	onEmergencyStop func(stopped bool)
	onSettings      func()
	onQuit          func()

	enabled bool
	stopped bool
	mu      sync.RWMutex

	menuToggle     *systray.MenuItem
	menuStop       *systray.MenuItem
	menuLastAction *systray.MenuItem
}

// New creates a Tray. Control starts disabled until the user turns it
// on; the toggle callback runs at that point.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback for the control on/off toggle.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnEmergencyStop sets the callback for the emergency stop toggle.
func (t *Tray) OnEmergencyStop(fn func(stopped bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEmergencyStop = fn
}

// OnSettings sets the callback for the settings menu item.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray loop. Blocks until systray.Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Gesture Control")

	t.menuToggle = systray.AddMenuItem("○ Control Off", "Toggle gesture control")
	t.menuStop = systray.AddMenuItem("Emergency Stop", "Halt all actions immediately")
	systray.AddSeparator()

	t.menuLastAction = systray.AddMenuItem("Last action: none", "Most recent dispatched action")
	t.menuLastAction.Disable()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuStop.ClickedCh:
				t.handleEmergencyStop()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Control On")
	} else {
		t.menuToggle.SetTitle("○ Control Off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Callbacks run outside the lock to prevent deadlocks.
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleEmergencyStop() {
	t.mu.Lock()
	t.stopped = !t.stopped
	stopped := t.stopped

	if stopped {
		t.menuStop.SetTitle("■ STOPPED (click to release)")
	} else {
		t.menuStop.SetTitle("Emergency Stop")
	}

	callback := t.onEmergencyStop
	t.mu.Unlock()

	if callback != nil {
		callback(stopped)
	}
}

func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// SetLastAction updates the last-action readout.
func (t *Tray) SetLastAction(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastAction == nil {
		return
	}
	if name == "" {
		t.menuLastAction.SetTitle("Last action: none")
	} else {
		t.menuLastAction.SetTitle("Last action: " + name)
	}
}

// IsEnabled reports whether the control toggle is on.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// EmergencyStopped reports whether the emergency stop is latched.
func (t *Tray) EmergencyStopped() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stopped
}
