package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Detail string              `json:"detail"`
	Code   string              `json:"code,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// MessageResponse is the body of endpoints that only report an outcome.
type MessageResponse struct {
	Detail string `json:"detail"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondError sends a JSON error response with the given message and status code.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Detail: message}, statusCode)
}

// RespondErrorWithCode sends a JSON error response with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Detail: message, Code: code}, statusCode)
}

// RespondValidation sends a 400 with per-field messages.
func RespondValidation(w http.ResponseWriter, message string, fields map[string][]string) {
	RespondJSON(w, ErrorResponse{Detail: message, Code: CodeValidation, Errors: fields}, http.StatusBadRequest)
}

// RespondInternal hides the cause behind a generic message. Callers log the cause first.
func RespondInternal(w http.ResponseWriter) {
	RespondErrorWithCode(w, "Something went wrong. Please try again later.", CodeInternal, http.StatusInternalServerError)
}
