// Package model defines the domain value objects and aggregates.
//
// Every validated type follows the same contract: a New* constructor that is
// pure, never panics on malformed user input, and returns either an immutable
// value or a typed *apperror.AppError for the FIRST violated rule (checks run
// in a fixed order: emptiness, then length, then format — error reporting is
// deterministic, not an aggregate). A Restore* constructor re-wraps data that
// already passed New* at the write boundary and performs no validation.
package model

import (
	"regexp"

	"github.com/mi-wada/todo-api/internal/apperror"
)

const emailMaxLen = 255

// emailPattern is the HTML5 "valid e-mail address" grammar:
// https://html.spec.whatwg.org/multipage/input.html#valid-e-mail-address
//
// Local part: one or more atext characters. Domain: dot-separated DNS-like
// labels, each up to 63 chars, alphanumeric with inner hyphens only.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// Email is a validated e-mail address.
type Email struct {
	value string
}

// NewEmail validates raw and returns an Email.
// Rejections, in check order: EmailEmpty, EmailTooLong, EmailWrongFormat.
func NewEmail(raw string) (Email, error) {
	if raw == "" {
		return Email{}, apperror.Validation("EmailEmpty", "Email is empty")
	}
	if len(raw) > emailMaxLen {
		return Email{}, apperror.Validation("EmailTooLong", "Email is too long")
	}
	if !emailPattern.MatchString(raw) {
		return Email{}, apperror.Validation("EmailWrongFormat", "Email has wrong format")
	}
	return Email{value: raw}, nil
}

// RestoreEmail wraps an address already accepted by NewEmail at the write
// boundary. No validation runs; storage is the trusted source.
func RestoreEmail(raw string) Email {
	return Email{value: raw}
}

// String returns the raw address.
func (e Email) String() string {
	return e.value
}

// MarshalText serializes the Email as its raw string.
func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

const (
	passwordMinLen = 8
	passwordMaxLen = 255
)

// Password is a raw secret in transit. It exists only between request
// decoding and hashing — it is never persisted and never serialized
// (deliberately no MarshalText / String).
type Password struct {
	value string
}

// NewPassword validates raw and returns a Password.
// Rejections, in check order: PasswordTooShort, PasswordTooLong.
func NewPassword(raw string) (Password, error) {
	if len(raw) < passwordMinLen {
		return Password{}, apperror.Validation("PasswordTooShort", "Password is too short")
	}
	if len(raw) > passwordMaxLen {
		return Password{}, apperror.Validation("PasswordTooLong", "Password is too long")
	}
	return Password{value: raw}, nil
}

// Plaintext exposes the secret to the hasher. Do not log the return value.
func (p Password) Plaintext() string {
	return p.value
}

// PasswordHash is the salted one-way digest stored in place of a password.
// It is produced by the password hasher and treated as opaque everywhere
// else.
type PasswordHash struct {
	value string
}

// RestorePasswordHash wraps a digest read back from storage.
func RestorePasswordHash(raw string) PasswordHash {
	return PasswordHash{value: raw}
}

// String returns the raw digest, e.g. for binding into an INSERT.
func (h PasswordHash) String() string {
	return h.value
}

// User is the authenticated principal: the identity resolved by the
// authentication gate and attached to a request, and the shape returned by
// registration. The password digest is deliberately not part of it — the
// repository returns the hash separately to the one caller that needs it
// (login), so a User can be serialized without redaction concerns.
type User struct {
	ID    ID    `json:"id"`
	Email Email `json:"email"`
}

// NewUser builds a user with a freshly generated ID.
func NewUser(email Email) User {
	return User{ID: NewID(), Email: email}
}

// RestoreUser rebuilds a user from persisted columns.
func RestoreUser(id ID, email Email) User {
	return User{ID: id, Email: email}
}
