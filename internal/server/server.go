// Package server provides the local HTTP and WebSocket interface for
// inspecting and tuning the running pipeline.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server's dependencies.
type Config struct {
	Store *store.Store
	// Apply pushes a changed setting into the live pipeline. Nil means
	// settings are persisted only.
	Apply func(key, value string) error
}

// Server exposes health, settings, and event endpoints plus the state
// WebSocket.
type Server struct {
	config Config
	mux    *http.ServeMux
	state  *StateHandler
	start  time.Time
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		state:  NewStateHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/state", s.state)

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/settings", s.handleSettings)
		s.mux.HandleFunc("/api/events", s.handleEvents)
	}
}

// State returns the handler used to push pipeline state to clients.
func (s *Server) State() *StateHandler {
	return s.state
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// handleSettings serves GET (all settings) and PUT (update settings).
// Updated settings are persisted and, when an Apply hook is configured,
// pushed into the running pipeline.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	repo := s.config.Store.Settings()

	switch r.Method {
	case http.MethodGet:
		settings, err := repo.All()
		if err != nil {
			http.Error(w, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, settings)

	case http.MethodPut:
		var updates map[string]string
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		for key, value := range updates {
			if s.config.Apply != nil {
				if err := s.config.Apply(key, value); err != nil {
					http.Error(w, "Invalid setting "+key+": "+err.Error(), http.StatusBadRequest)
					return
				}
			}
			if err := repo.Set(key, value); err != nil {
				http.Error(w, "Failed to save setting "+key, http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, map[string]any{"updated": len(updates)})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleEvents serves GET /api/events?limit=n, newest first.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	events, err := s.config.Store.Events().Recent(limit)
	if err != nil {
		http.Error(w, "Failed to load events", http.StatusInternalServerError)
		return
	}

	type eventJSON struct {
		ID        string    `json:"id"`
		Gesture   string    `json:"gesture"`
		Action    string    `json:"action"`
		CreatedAt time.Time `json:"createdAt"`
	}

	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON{ID: e.ID, Gesture: e.Gesture, Action: e.Action, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
