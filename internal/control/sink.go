// Package control maps stabilized gesture classifications onto system
// actions: pointer movement, clicks, scrolling, window commands and
// volume. It owns the pointer smoothing filter, the drag state machine
// and the control-zone coordinate remap.
package control

// Button identifies a mouse button for click requests.
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

// VolumeDirection identifies the direction of a volume adjustment.
type VolumeDirection string

const (
	VolumeUp   VolumeDirection = "up"
	VolumeDown VolumeDirection = "down"
)

// Sink is the set of primitive operations the dispatcher invokes. Every
// operation is best-effort: implementations report failure through the
// error and must never panic past their boundary. Implementations may
// enforce their own micro-cooldowns independent of the activation gate.
type Sink interface {
	MovePointer(x, y int) error
	Click(button Button) error
	Scroll(amount int) error
	ButtonDown() error
	ButtonUp() error
	MinimizeWindow() error
	MaximizeWindow() error
	CloseWindow() error
	Volume(direction VolumeDirection) error
}
