// Package api provides the HTTP API handlers for phrase mappings, gaze
// calibration, and detection control.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/drishti/internal/store"
)

// PhraseHandler handles HTTP requests for gesture-to-phrase bindings.
type PhraseHandler struct {
	store *store.Store
}

// NewPhraseHandler creates a new PhraseHandler with the given store.
func NewPhraseHandler(s *store.Store) *PhraseHandler {
	return &PhraseHandler{store: s}
}

// ServeHTTP routes collection and item requests.
// Expected paths: /api/phrases or /api/phrases/{id}
func (h *PhraseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/phrases")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type createPhraseRequest struct {
	Gesture string `json:"gesture"`
	Phrase  string `json:"phrase"`
	Enabled *bool  `json:"enabled"`
}

type updatePhraseRequest struct {
	Gesture string `json:"gesture"`
	Phrase  string `json:"phrase"`
	Enabled *bool  `json:"enabled"`
}

type phraseResponse struct {
	ID        string `json:"id"`
	Gesture   string `json:"gesture"`
	Phrase    string `json:"phrase"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listPhrasesResponse struct {
	Phrases []phraseResponse `json:"phrases"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(p *store.Phrase) phraseResponse {
	return phraseResponse{
		ID:        p.ID,
		Gesture:   p.Gesture,
		Phrase:    p.Phrase,
		Enabled:   p.Enabled,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/phrases.
func (h *PhraseHandler) list(w http.ResponseWriter, r *http.Request) {
	phrases, err := h.store.Phrases().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list phrases")
		return
	}

	response := listPhrasesResponse{
		Phrases: make([]phraseResponse, 0, len(phrases)),
	}
	for _, p := range phrases {
		response.Phrases = append(response.Phrases, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/phrases/{id}.
func (h *PhraseHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	phrase, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get phrase")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(phrase))
}

// create handles POST /api/phrases.
func (h *PhraseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Gesture == "" {
		writeError(w, http.StatusBadRequest, "Gesture is required")
		return
	}
	if req.Phrase == "" {
		writeError(w, http.StatusBadRequest, "Phrase is required")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	phrase := &store.Phrase{
		ID:      uuid.New().String(),
		Gesture: req.Gesture,
		Phrase:  req.Phrase,
		Enabled: enabled,
	}

	if err := h.store.Phrases().Create(phrase); err != nil {
		// The gesture column is unique; a second binding for the same
		// gesture is a client error
		writeError(w, http.StatusConflict, "Gesture already has a phrase")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(phrase))
}

// update handles PUT /api/phrases/{id}.
func (h *PhraseHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	phrase, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get phrase")
		return
	}

	var req updatePhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Gesture != "" {
		phrase.Gesture = req.Gesture
	}
	if req.Phrase != "" {
		phrase.Phrase = req.Phrase
	}
	if req.Enabled != nil {
		phrase.Enabled = *req.Enabled
	}

	if err := h.store.Phrases().Update(phrase); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update phrase")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(phrase))
}

// delete handles DELETE /api/phrases/{id}.
func (h *PhraseHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Phrases().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete phrase")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
