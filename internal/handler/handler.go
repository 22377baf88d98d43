package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"gasnet/internal/domain"
	"gasnet/internal/solver"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 8 << 20

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var se *solver.StatusError
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, solver.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.As(err, &se):
		if se.Code >= 400 && se.Code < 500 {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError answers with the status for err. Server-side failures
// are logged with the summary.
func writeServiceError(w http.ResponseWriter, summary string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Printf("%s: %v", summary, err)
	}
	if code == http.StatusNotFound {
		summary = "Not found"
	}
	writeError(w, summary, err.Error(), code)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid network ID", "ID must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
