package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"exerciseTracker/internal/tracker"
)

const maxBodyBytes = 1 << 20

// Handlers serves the REST endpoints.
type Handlers struct {
	svc Tracker
}

// CreateUser handles POST /api/users.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	username, _ := body["username"].(string)

	u, err := h.svc.CreateUser(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, u)
}

// ListUsers handles GET /api/users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// AddExercise handles POST /api/users/{id}/exercises.
func (h *Handlers) AddExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	body, err := decodeBody(w, r)
	if err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.svc.AddExercise(r.Context(), userID, tracker.ExerciseInput{
		Description: body["description"],
		Duration:    body["duration"],
		Date:        dateField(body["date"]),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, e)
}

// GetLog handles GET /api/users/{id}/logs?from=&to=&limit=.
func (h *Handlers) GetLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	lg, err := h.svc.GetLog(r.Context(), userID, tracker.LogQuery{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, lg)
}

// userIDParam parses {id}. An id that is not an integer cannot name a user,
// so it is answered like an unknown user.
func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, "User not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON or form-encoded body into a field map.
// JSON numbers are kept as json.Number so "10" and 10 stay distinguishable.
// A missing or empty body yields an empty map.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	out := map[string]any{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
		return out, nil
	case "application/json", "":
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return out, nil
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return out, nil
	default:
		return out, nil
	}
}

// dateField renders the optional date as text. Absent, null, false and zero
// all mean "use today"; other non-strings are rendered and fail the format check.
func dateField(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	case bool:
		if !d {
			return ""
		}
	case json.Number:
		if f, err := d.Float64(); err == nil && f == 0 {
			return ""
		}
	}
	return fmt.Sprint(v)
}
