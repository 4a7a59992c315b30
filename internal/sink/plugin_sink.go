// Package sink bridges the control layer to subprocess plugins. Each
// sink primitive is resolved to the first plugin that implements it and
// executed as one plugin invocation.
package sink

import (
	"fmt"
	"strconv"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/plugin"
)

// Primitive names shared between the sink and plugin manifests.
const (
	PrimMovePointer    = "move_pointer"
	PrimClick          = "click"
	PrimScroll         = "scroll"
	PrimButtonDown     = "button_down"
	PrimButtonUp       = "button_up"
	PrimMinimizeWindow = "minimize_window"
	PrimMaximizeWindow = "maximize_window"
	PrimCloseWindow    = "close_window"
	PrimVolume         = "volume"
)

// PluginSink implements control.Sink by delegating each primitive to a
// discovered plugin.
type PluginSink struct {
	manager  *plugin.Manager
	executor *plugin.Executor
}

// NewPluginSink creates a PluginSink over the given manager and executor.
func NewPluginSink(manager *plugin.Manager, executor *plugin.Executor) *PluginSink {
	return &PluginSink{manager: manager, executor: executor}
}

func (s *PluginSink) run(req *plugin.Request) error {
	p, err := s.manager.FindPrimitive(req.Primitive)
	if err != nil {
		return fmt.Errorf("%s: %w", req.Primitive, err)
	}

	resp, err := s.executor.Execute(p, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s rejected %s: %s", p.Manifest.Name, req.Primitive, resp.Error)
	}
	return nil
}

func (s *PluginSink) MovePointer(x, y int) error {
	return s.run(&plugin.Request{Primitive: PrimMovePointer, X: x, Y: y})
}

func (s *PluginSink) Click(button control.Button) error {
	return s.run(&plugin.Request{Primitive: PrimClick, Button: string(button)})
}

func (s *PluginSink) Scroll(amount int) error {
	return s.run(&plugin.Request{Primitive: PrimScroll, Amount: amount})
}

func (s *PluginSink) ButtonDown() error {
	return s.run(&plugin.Request{Primitive: PrimButtonDown})
}

func (s *PluginSink) ButtonUp() error {
	return s.run(&plugin.Request{Primitive: PrimButtonUp})
}

func (s *PluginSink) MinimizeWindow() error {
	return s.run(&plugin.Request{Primitive: PrimMinimizeWindow})
}

func (s *PluginSink) MaximizeWindow() error {
	return s.run(&plugin.Request{Primitive: PrimMaximizeWindow})
}

func (s *PluginSink) CloseWindow() error {
	return s.run(&plugin.Request{Primitive: PrimCloseWindow})
}

func (s *PluginSink) Volume(dir control.VolumeDirection) error {
	return s.run(&plugin.Request{Primitive: PrimVolume, Direction: string(dir)})
}

// LogSink is a Sink that only formats primitives as strings, for dry runs
// when no plugin is available. Printf is typically log.Printf.
type LogSink struct {
	Printf func(format string, args ...any)
}

func (s *LogSink) emit(what string) error {
	if s.Printf != nil {
		s.Printf("sink: %s", what)
	}
	return nil
}

func (s *LogSink) MovePointer(x, y int) error {
	return s.emit("move " + strconv.Itoa(x) + "," + strconv.Itoa(y))
}
func (s *LogSink) Click(b control.Button) error { return s.emit("click " + string(b)) }
func (s *LogSink) Scroll(amount int) error      { return s.emit("scroll " + strconv.Itoa(amount)) }
func (s *LogSink) ButtonDown() error            { return s.emit("button down") }
func (s *LogSink) ButtonUp() error              { return s.emit("button up") }
func (s *LogSink) MinimizeWindow() error        { return s.emit("minimize window") }
func (s *LogSink) MaximizeWindow() error        { return s.emit("maximize window") }
func (s *LogSink) CloseWindow() error           { return s.emit("close window") }
func (s *LogSink) Volume(d control.VolumeDirection) error {
	return s.emit("volume " + string(d))
}
