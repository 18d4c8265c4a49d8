package api

import (
	"net/http"
	"strings"
)

// DetectionController is the surface of the application the detection API
// drives. It is satisfied by the app package.
type DetectionController interface {
	Start() error
	Stop()
	SetEnabled(enabled bool)
	IsEnabled() bool
	IsRunning() bool
}

// DetectionHandler exposes detection start/stop control over HTTP.
type DetectionHandler struct {
	controller DetectionController
}

// NewDetectionHandler creates a new DetectionHandler for the given controller.
func NewDetectionHandler(c DetectionController) *DetectionHandler {
	return &DetectionHandler{controller: c}
}

type detectionStatusResponse struct {
	Running bool `json:"running"`
	Enabled bool `json:"enabled"`
}

// ServeHTTP routes detection requests.
// Expected paths: /api/detection, /api/detection/start, /api/detection/stop
func (h *DetectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/detection")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.status(w, r)
	case "start":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.start(w, r)
	case "stop":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stop(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *DetectionHandler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, detectionStatusResponse{
		Running: h.controller.IsRunning(),
		Enabled: h.controller.IsEnabled(),
	})
}

func (h *DetectionHandler) start(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Start(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to start detection: "+err.Error())
		return
	}
	h.controller.SetEnabled(true)

	writeJSON(w, http.StatusOK, detectionStatusResponse{
		Running: h.controller.IsRunning(),
		Enabled: h.controller.IsEnabled(),
	})
}

func (h *DetectionHandler) stop(w http.ResponseWriter, r *http.Request) {
	h.controller.SetEnabled(false)
	h.controller.Stop()

	writeJSON(w, http.StatusOK, detectionStatusResponse{
		Running: h.controller.IsRunning(),
		Enabled: h.controller.IsEnabled(),
	})
}
