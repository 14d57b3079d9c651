package model

import "github.com/rs/xid"

// ID is an opaque, time-ordered identifier shared by users and tasks.
//
// xid strings start with a timestamp component, so freshly generated IDs sort
// chronologically — useful for index locality and stable listing order
// without a separate created_at sort.
//
// The underlying value is unexported: once constructed, an ID cannot be
// mutated, and two IDs are equal exactly when their raw values are equal
// (struct equality with a single comparable field).
type ID struct {
	value string
}

// NewID generates a fresh identifier.
func NewID() ID {
	return ID{value: xid.New().String()}
}

// RestoreID wraps an identifier previously persisted by this application.
//
// It performs no validation: the raw value was generated by NewID before it
// was written, so re-checking it on every row read buys nothing. Callers must
// only pass values read back from storage or from a verified token subject.
func RestoreID(raw string) ID {
	return ID{value: raw}
}

// String returns the raw identifier value.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the ID is the unset zero value.
func (id ID) IsZero() bool {
	return id.value == ""
}

// MarshalText serializes the ID as its raw string, so JSON output is a plain
// string rather than an object.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}
