package control

import "fmt"

// RecordingSink is a test implementation of Sink that records every call
// and can be made to fail on demand.
type RecordingSink struct {
	Calls []string
	Err   error

	MovedX, MovedY int
	Scrolled       []int
	Volumes        []VolumeDirection
}

// NewRecordingSink creates an empty recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) call(name string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Calls = append(s.Calls, name)
	return nil
}

func (s *RecordingSink) MovePointer(x, y int) error {
	if err := s.call(fmt.Sprintf("move:%d,%d", x, y)); err != nil {
		return err
	}
	s.MovedX, s.MovedY = x, y
	return nil
}

func (s *RecordingSink) Click(button Button) error {
	return s.call("click:" + string(button))
}

func (s *RecordingSink) Scroll(amount int) error {
	if err := s.call(fmt.Sprintf("scroll:%d", amount)); err != nil {
		return err
	}
	s.Scrolled = append(s.Scrolled, amount)
	return nil
}

func (s *RecordingSink) ButtonDown() error {
	return s.call("button_down")
}

func (s *RecordingSink) ButtonUp() error {
	return s.call("button_up")
}

func (s *RecordingSink) MinimizeWindow() error {
	return s.call("minimize_window")
}

func (s *RecordingSink) MaximizeWindow() error {
	return s.call("maximize_window")
}

func (s *RecordingSink) CloseWindow() error {
	return s.call("close_window")
}

func (s *RecordingSink) Volume(direction VolumeDirection) error {
	if err := s.call("volume:" + string(direction)); err != nil {
		return err
	}
	s.Volumes = append(s.Volumes, direction)
	return nil
}
