package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/boardwalk-app/boardwalk/internal/database"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions    *database.Manager
	maxPageSize int
}

// New creates a new Handlers instance. maxPageSize of 0 means page sizes are
// not capped.
func New(sessions *database.Manager, maxPageSize int) *Handlers {
	return &Handlers{
		sessions:    sessions,
		maxPageSize: maxPageSize,
	}
}

// Hello is the liveness endpoint
func (h *Handlers) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello World!"))
}

// writeJSON serializes v with the given status code
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps a failure from a unit of work onto the response:
// validation 400, not found 404, everything else 500 with the underlying
// message. notFoundMsg customizes the 404 body per endpoint.
func (h *Handlers) respondError(w http.ResponseWriter, err error, notFoundMsg string) {
	var vErr ValidationError
	switch {
	case errors.As(err, &vErr):
		h.jsonError(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, database.ErrNotFound):
		h.jsonError(w, notFoundMsg, http.StatusNotFound)
	case errors.Is(err, database.ErrUnavailable):
		log.Error().Err(err).Msg("Database unavailable")
		h.jsonError(w, "Could not connect to the database", http.StatusInternalServerError)
	default:
		log.Error().Err(err).Msg("Request failed")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeBody parses a JSON request body into v
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ValidationError{Field: "body", Message: "invalid JSON"}
	}
	return nil
}
