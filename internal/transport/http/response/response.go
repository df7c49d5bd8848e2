package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
)

// Envelope is the response shape shared by every API operation.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// Error maps the error's kind to an HTTP status and writes a failure
// envelope. Only the caller-safe message is exposed; the cause stays in
// the logs.
func Error(w http.ResponseWriter, err error) {
	slog.Error("Request failed", "error", err)
	write(w, statusFor(err), Envelope{Success: false, Error: apperrors.Message(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
