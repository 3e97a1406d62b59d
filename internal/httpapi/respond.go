package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"exerciseTracker/internal/tracker"
)

type errorBody struct {
	Error string `json:"error"`
}

// jsonResponse writes v as JSON with the given status.
func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// jsonError sends a JSON error response
func jsonError(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, status, errorBody{Error: message})
}

// statusFor maps an operation error onto its HTTP status.
// A duplicate username is a 400, not a 409.
func statusFor(err error) int {
	switch tracker.KindOf(err) {
	case tracker.KindInvalidInput, tracker.KindConflict:
		return http.StatusBadRequest
	case tracker.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	jsonError(w, tracker.MessageOf(err), statusFor(err))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	jsonError(w, "Not Found", http.StatusNotFound)
}
