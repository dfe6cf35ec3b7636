// Package shared holds response helpers used by every admin API handler.
package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"rescueops/pkg/platform/sentinel"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON renders a JSON response. Encoding failures are logged by the
// caller's middleware; headers are already gone by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps sentinel errors to HTTP codes. Unrecognized errors become
// 500s with a generic message so internals do not leak.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, sentinel.ErrConflict):
		WriteJSON(w, http.StatusConflict, errorBody{Error: "already exists"})
	case errors.Is(err, sentinel.ErrInvalidState):
		WriteJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "invalid state"})
	case errors.Is(err, sentinel.ErrUnavailable):
		WriteJSON(w, http.StatusServiceUnavailable, errorBody{Error: "temporarily unavailable"})
	default:
		logger.Error("internal error", "error", err.Error())
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// WriteBadRequest renders a 400 with a caller-facing message.
func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
