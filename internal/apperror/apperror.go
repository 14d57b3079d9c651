// Package apperror defines the application's error taxonomy.
//
// Every error that can reach a client belongs to one of a few coarse
// categories (validation, authentication, not-found, conflict). Services and
// repositories return these typed errors; the HTTP layer maps each category
// to a status code in exactly one place (handler.writeError).
//
// An AppError carries two strings:
//   - Code: machine-readable, stable, part of the wire contract
//     (e.g. "EmailTooLong", "AuthenticationFailed")
//   - Message: human-readable, safe to show to clients
//
// Internal causes (SQL errors, driver failures) are never placed in either
// field — they are wrapped for logging and collapse to a generic 500 body.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel category errors. Use errors.Is against these to decide the HTTP
// status; use errors.As(*AppError) to extract the wire code and message.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrTokenExpired   = errors.New("token expired")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

// AppError is a typed application error with a stable wire code.
type AppError struct {
	Err     error  // category sentinel (ErrValidation, ErrAuthentication, ...)
	Code    string // machine-readable error code, e.g. "TitleEmpty"
	Message string // human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns a 400-category error for a single invalid field.
// The first violated rule wins — validation errors are never aggregated.
func Validation(code, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Code:    code,
		Message: message,
	}
}

// AuthenticationFailed returns the coarse 401 error used for every
// credential failure: missing or malformed header, tampered token, unknown
// user, wrong password. Collapsing them denies an attacker a signal about
// which check failed.
func AuthenticationFailed() *AppError {
	return &AppError{
		Err:     ErrAuthentication,
		Code:    "AuthenticationFailed",
		Message: "Authentication failed",
	}
}

// TokenExpired returns the 401 error for a well-signed token whose expiry
// has passed. Expiry is the one failure cause the client is allowed to see,
// so it can prompt a re-login instead of treating its token as corrupt.
func TokenExpired() *AppError {
	return &AppError{
		Err:     ErrTokenExpired,
		Code:    "TokenExpired",
		Message: "Token expired",
	}
}

// NotFound returns a 404-category error for an absent resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Code:    "NotFound",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Conflict returns an error for a uniqueness violation. The repository layer
// reports conflicts with this; callers decide how to surface them (the auth
// service maps a duplicate email to a 400 "EmailTaken" to match the wire
// contract).
func Conflict(resource string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    "Conflict",
		Message: fmt.Sprintf("%s already exists", resource),
	}
}
