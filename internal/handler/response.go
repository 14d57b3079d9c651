package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mi-wada/todo-api/internal/apperror"
)

// ErrorResponse is the error shape every endpoint returns:
//
//	{"code": "EmailTooLong", "message": "Email is too long"}
//
// Code is stable and machine-readable; Message is for humans. Clients can
// switch on Code without parsing prose.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON sends data with the given status. Headers and status must be
// written before the body — once Encode writes, the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its status code and sends the
// {code, message} body. This is the only place the mapping lives; services
// return apperror categories without knowing about HTTP.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrAuthentication),
			errors.Is(err, apperror.ErrTokenExpired):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}

		if status != http.StatusInternalServerError {
			writeJSON(w, status, ErrorResponse{Code: appErr.Code, Message: appErr.Message})
			return
		}
	}

	// Anything untyped is an internal fault. The body is a fixed generic
	// string — raw error text can carry SQL fragments or file paths.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:    "InternalServerError",
		Message: "Internal server error",
	})
}
