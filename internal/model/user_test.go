package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/mi-wada/todo-api/internal/apperror"
)

// assertValidationCode fails the test unless err is an *apperror.AppError in
// the validation category carrying the given wire code.
func assertValidationCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error %v is not a validation error", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not an *apperror.AppError", err)
	}
	if appErr.Code != wantCode {
		t.Errorf("error code = %q, want %q", appErr.Code, wantCode)
	}
}

func TestNewEmail_Ok(t *testing.T) {
	for _, raw := range []string{
		"user@example.com",
		"user.name+tag@example.co.jp",
		"u@a-b.example",
	} {
		email, err := NewEmail(raw)
		if err != nil {
			t.Errorf("NewEmail(%q) error = %v", raw, err)
			continue
		}
		if email.String() != raw {
			t.Errorf("NewEmail(%q).String() = %q", raw, email.String())
		}
	}
}

func TestNewEmail_Empty(t *testing.T) {
	_, err := NewEmail("")
	assertValidationCode(t, err, "EmailEmpty")
}

func TestNewEmail_TooLong(t *testing.T) {
	// 256 characters: over the limit, and long before the format check runs
	// the length rule must win.
	_, err := NewEmail(strings.Repeat("a", emailMaxLen+1))
	assertValidationCode(t, err, "EmailTooLong")
}

func TestNewEmail_AtMaxLength(t *testing.T) {
	// local part + "@" + domain adding up to exactly 255 characters
	local := strings.Repeat("a", emailMaxLen-len("@example.com"))
	_, err := NewEmail(local + "@example.com")
	if err != nil {
		t.Errorf("NewEmail() at max length error = %v", err)
	}
}

func TestNewEmail_WrongFormat(t *testing.T) {
	for _, raw := range []string{
		"user",
		"user@",
		"user@.",
		"user@.com",
		"user@exa mple.com",
		"user@-example.com",
		"user@example-.com",
	} {
		_, err := NewEmail(raw)
		if err == nil {
			t.Errorf("NewEmail(%q) should be rejected", raw)
			continue
		}
		assertValidationCode(t, err, "EmailWrongFormat")
	}
}

func TestRestoreEmail_SkipsValidation(t *testing.T) {
	// Restore trusts its input: the value was validated when it was written.
	email := RestoreEmail("user@example.com")
	if email.String() != "user@example.com" {
		t.Errorf("RestoreEmail() = %q", email.String())
	}
}

func TestNewPassword_Ok(t *testing.T) {
	p, err := NewPassword("password")
	if err != nil {
		t.Fatalf("NewPassword() error = %v", err)
	}
	if p.Plaintext() != "password" {
		t.Errorf("Plaintext() = %q", p.Plaintext())
	}
}

func TestNewPassword_TooShort(t *testing.T) {
	_, err := NewPassword(strings.Repeat("a", passwordMinLen-1))
	assertValidationCode(t, err, "PasswordTooShort")
}

func TestNewPassword_TooLong(t *testing.T) {
	_, err := NewPassword(strings.Repeat("a", passwordMaxLen+1))
	assertValidationCode(t, err, "PasswordTooLong")
}

func TestNewPassword_Bounds(t *testing.T) {
	if _, err := NewPassword(strings.Repeat("a", passwordMinLen)); err != nil {
		t.Errorf("NewPassword() at min length error = %v", err)
	}
	if _, err := NewPassword(strings.Repeat("a", passwordMaxLen)); err != nil {
		t.Errorf("NewPassword() at max length error = %v", err)
	}
}

func TestNewUser_GeneratesID(t *testing.T) {
	email := RestoreEmail("user@example.com")
	user := NewUser(email)
	if user.ID.IsZero() {
		t.Error("NewUser() did not generate an ID")
	}
	if user.Email != email {
		t.Errorf("NewUser().Email = %v, want %v", user.Email, email)
	}
}
