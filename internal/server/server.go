// Package server provides the HTTP server for the Drishti blink communication
// system.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/drishti/internal/capture"
	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/server/api"
	"github.com/ayusman/drishti/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Camera     capture.Camera
	Controller api.DetectionController

	// Calibration change hooks, forwarded to the calibration handler
	OnCalibrationChange func(gaze.Calibration)
	OnCalibrationClear  func()
}

// Server is the HTTP server for the Drishti application.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		events: NewEventsHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Events returns the WebSocket event broadcaster, so the application can push
// dispatched gestures to connected clients.
func (s *Server) Events() *EventsHandler {
	return s.events
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		phraseHandler := api.NewPhraseHandler(s.config.Store)
		s.mux.Handle("/api/phrases", phraseHandler)
		s.mux.Handle("/api/phrases/", phraseHandler)

		calibrationHandler := api.NewCalibrationHandler(s.config.Store)
		calibrationHandler.OnChange = s.config.OnCalibrationChange
		calibrationHandler.OnClear = s.config.OnCalibrationClear
		s.mux.Handle("/api/calibration", calibrationHandler)
	}

	if s.config.Controller != nil {
		detectionHandler := api.NewDetectionHandler(s.config.Controller)
		s.mux.Handle("/api/detection", detectionHandler)
		s.mux.Handle("/api/detection/", detectionHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	s.mux.Handle("/api/events", s.events)

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
