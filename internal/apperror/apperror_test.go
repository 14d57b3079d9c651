package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "Validation wraps ErrValidation",
			err:       Validation("TitleEmpty", "Title is empty"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "AuthenticationFailed wraps ErrAuthentication",
			err:       AuthenticationFailed(),
			target:    ErrAuthentication,
			wantMatch: true,
		},
		{
			name:      "TokenExpired wraps ErrTokenExpired",
			err:       TokenExpired(),
			target:    ErrTokenExpired,
			wantMatch: true,
		},
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("task"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("user"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "TokenExpired does NOT match ErrAuthentication",
			err:       TokenExpired(),
			target:    ErrAuthentication,
			wantMatch: false,
		},
		{
			name:      "Validation does NOT match ErrNotFound",
			err:       Validation("EmailEmpty", "Email is empty"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestCodesAndMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantCode    string
		wantMessage string
	}{
		{
			name:        "Validation uses custom code and message",
			err:         Validation("EmailWrongFormat", "Email has wrong format"),
			wantCode:    "EmailWrongFormat",
			wantMessage: "Email has wrong format",
		},
		{
			name:        "AuthenticationFailed has fixed code",
			err:         AuthenticationFailed(),
			wantCode:    "AuthenticationFailed",
			wantMessage: "Authentication failed",
		},
		{
			name:        "TokenExpired has fixed code",
			err:         TokenExpired(),
			wantCode:    "TokenExpired",
			wantMessage: "Token expired",
		},
		{
			name:        "NotFound names the resource",
			err:         NotFound("task"),
			wantCode:    "NotFound",
			wantMessage: "task not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Code; got != tt.wantCode {
				t.Errorf("Code = %q, want %q", got, tt.wantCode)
			}
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("task")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}
