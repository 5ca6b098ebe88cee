// Package httpx holds the JSON response helpers shared by the HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nexus-api/internal/domain"
	"nexus-api/internal/observability/middleware"
)

// InternalErrorMessage is returned for any failure not described by a domain error.
const InternalErrorMessage = "Erro interno do servidor."

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// StatusOf maps an error to its HTTP status by the domain kind it wraps.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as {statusCode, message, error}. Errors without a
// client-safe message are logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	msg, ok := domain.MessageOf(err)
	if !ok || status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()), "trace_id", middleware.TraceIDFromContext(r.Context()))
		status = http.StatusInternalServerError
		msg = InternalErrorMessage
	}
	WriteStatus(w, status, msg)
}

// WriteStatus writes an error body with an explicit status and message.
func WriteStatus(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{StatusCode: status, Message: msg, Error: http.StatusText(status)})
}
