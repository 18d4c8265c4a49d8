package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/store"
)

// CalibrationHandler handles HTTP requests for the gaze calibration record.
// There is a single calibration; PUT replaces it and DELETE reverts to the
// screen-center default.
type CalibrationHandler struct {
	store *store.Store

	// OnChange is invoked after a calibration is stored, OnClear after it
	// is deleted. The application uses these to refresh its in-memory copy.
	OnChange func(gaze.Calibration)
	OnClear  func()
}

// NewCalibrationHandler creates a new CalibrationHandler with the given store.
func NewCalibrationHandler(s *store.Store) *CalibrationHandler {
	return &CalibrationHandler{store: s}
}

func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type calibrationRequest struct {
	CenterX        float64 `json:"centerX"`
	CenterY        float64 `json:"centerY"`
	DeadzoneRadius float64 `json:"deadzoneRadius"`
}

// get handles GET /api/calibration. When no calibration has been captured the
// default is returned, flagged so the UI can prompt for capture.
func (h *CalibrationHandler) get(w http.ResponseWriter, r *http.Request) {
	cal, err := h.store.Calibration().Get()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"calibration": gaze.DefaultCalibration(),
				"captured":    false,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get calibration")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"calibration": cal,
		"captured":    true,
	})
}

// put handles PUT /api/calibration.
func (h *CalibrationHandler) put(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DeadzoneRadius <= 0 {
		writeError(w, http.StatusBadRequest, "Deadzone radius must be positive")
		return
	}

	cal := gaze.Calibration{
		CenterX:        req.CenterX,
		CenterY:        req.CenterY,
		DeadzoneRadius: req.DeadzoneRadius,
		CapturedAtMs:   time.Now().UnixMilli(),
	}

	if err := h.store.Calibration().Put(&cal); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store calibration")
		return
	}

	if h.OnChange != nil {
		h.OnChange(cal)
	}

	writeJSON(w, http.StatusOK, cal)
}

// delete handles DELETE /api/calibration.
func (h *CalibrationHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Calibration().Delete(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete calibration")
		return
	}

	if h.OnClear != nil {
		h.OnClear()
	}

	w.WriteHeader(http.StatusNoContent)
}
