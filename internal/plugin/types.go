// Package plugin provides discovery and execution of subprocess action
// plugins. A plugin is a directory holding an executable and a
// plugin.json manifest; each invocation sends one JSON request on stdin
// and reads one JSON response from stdout.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and the sink primitives it
// implements.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Primitives   []string        `json:"primitives"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is one primitive invocation sent to a plugin. Only the fields
// relevant to the primitive are set.
type Request struct {
	Primitive string `json:"primitive"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	Button    string `json:"button,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Response is the result a plugin reports for one invocation.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Implements reports whether the plugin's manifest lists the primitive.
func (p *Plugin) Implements(primitive string) bool {
	for _, prim := range p.Manifest.Primitives {
		if prim == primitive {
			return true
		}
	}
	return false
}
