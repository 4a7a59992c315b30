// Package main provides the macOS system-control plugin. It executes
// pointer primitives through cliclick and window and volume primitives
// through AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Request is one primitive invocation from the executor.
type Request struct {
	Primitive string `json:"primitive"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Amount    int    `json:"amount"`
	Button    string `json:"button"`
	Direction string `json:"direction"`
}

// Response is the result reported back on stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeError(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if err := handle(&req); err != nil {
		writeError(fmt.Sprintf("%s failed: %v", req.Primitive, err))
		return
	}

	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

func writeError(msg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: msg})
}

func handle(req *Request) error {
	switch req.Primitive {
	case "move_pointer":
		return runCliclick("m:" + strconv.Itoa(req.X) + "," + strconv.Itoa(req.Y))
	case "click":
		if req.Button == "right" {
			return runCliclick("rc:.")
		}
		return runCliclick("c:.")
	case "scroll":
		return scroll(req.Amount)
	case "button_down":
		return runCliclick("dd:.")
	case "button_up":
		return runCliclick("du:.")
	case "minimize_window":
		return minimizeWindow()
	case "maximize_window":
		return maximizeWindow()
	case "close_window":
		return closeWindow()
	case "volume":
		return volume(req.Direction)
	default:
		return fmt.Errorf("unknown primitive: %s", req.Primitive)
	}
}

func runCliclick(args ...string) error {
	cmd := exec.Command("cliclick", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// scroll sends wheel ticks. cliclick has no wheel command, so the key
// codes for page movement are unsuitable; AppleScript scrolls the
// frontmost window instead. Positive amounts scroll up.
func scroll(amount int) error {
	if amount == 0 {
		return nil
	}

	script := fmt.Sprintf(`tell application "System Events" to scroll area 1 of front window of (first application process whose frontmost is true) to {0, %d}`, -amount)
	if err := runAppleScript(script); err == nil {
		return nil
	}

	// Not every window exposes a scroll area; fall back to arrow keys.
	keyCode := 126 // up arrow
	count := amount
	if amount < 0 {
		keyCode = 125 // down arrow
		count = -amount
	}
	return runAppleScript(fmt.Sprintf(
		`tell application "System Events"
	repeat %d times
		key code %d
	end repeat
end tell`, count, keyCode))
}

func minimizeWindow() error {
	return runAppleScript(`tell application "System Events" to set value of attribute "AXMinimized" of front window of (first application process whose frontmost is true) to true`)
}

func maximizeWindow() error {
	return runAppleScript(`tell application "System Events" to tell front window of (first application process whose frontmost is true)
	set position to {0, 0}
	set size to {9999, 9999}
end tell`)
}

func closeWindow() error {
	return runAppleScript(`tell application "System Events" to click (first button whose subrole is "AXCloseButton") of front window of (first application process whose frontmost is true)`)
}

func volume(direction string) error {
	switch direction {
	case "up":
		return runAppleScript(`set volume output volume ((output volume of (get volume settings)) + 10)`)
	case "down":
		return runAppleScript(`set volume output volume ((output volume of (get volume settings)) - 10)`)
	default:
		return fmt.Errorf("unknown volume direction: %s", direction)
	}
}
