package model

import (
	"time"

	"github.com/mi-wada/todo-api/internal/apperror"
)

const titleMaxLen = 40

// Title is a task title: non-empty, at most 40 characters.
type Title struct {
	value string
}

// NewTitle validates raw. Rejections, in check order: TitleEmpty,
// TitleTooLong.
func NewTitle(raw string) (Title, error) {
	if raw == "" {
		return Title{}, apperror.Validation("TitleEmpty", "Title is empty")
	}
	if len(raw) > titleMaxLen {
		return Title{}, apperror.Validation("TitleTooLong", "Title is too long")
	}
	return Title{value: raw}, nil
}

// RestoreTitle wraps a title read back from storage.
func RestoreTitle(raw string) Title {
	return Title{value: raw}
}

func (t Title) String() string {
	return t.value
}

// MarshalText serializes the Title as its raw string.
func (t Title) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

const descriptionMaxLen = 1000

// Description is an optional task description, at most 1000 characters.
// The empty string is valid.
type Description struct {
	value string
}

// NewDescription validates raw. Rejection: DescriptionTooLong.
func NewDescription(raw string) (Description, error) {
	if len(raw) > descriptionMaxLen {
		return Description{}, apperror.Validation("DescriptionTooLong", "Description is too long")
	}
	return Description{value: raw}, nil
}

// RestoreDescription wraps a description read back from storage.
func RestoreDescription(raw string) Description {
	return Description{value: raw}
}

func (d Description) String() string {
	return d.value
}

// MarshalText serializes the Description as its raw string.
func (d Description) MarshalText() ([]byte, error) {
	return []byte(d.value), nil
}

// Status is a closed enumeration of task states. The canonical spellings
// below are both the wire representation and the storage representation, so
// the type round-trips losslessly.
type Status string

const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// ParseStatus maps a canonical spelling to a Status.
// Any other spelling is rejected with StatusUnknown.
func ParseStatus(raw string) (Status, error) {
	switch raw {
	case string(StatusToDo):
		return StatusToDo, nil
	case string(StatusInProgress):
		return StatusInProgress, nil
	case string(StatusDone):
		return StatusDone, nil
	default:
		return "", apperror.Validation("StatusUnknown", "Status is unknown")
	}
}

func (s Status) String() string {
	return string(s)
}

// Deadline is an optional task deadline, parsed from an RFC 3339 timestamp
// (timezone offset mandatory) and held as a UTC instant — the original input
// string is not retained.
type Deadline struct {
	value time.Time
}

// NewDeadline parses raw as RFC 3339. Rejection: DeadlineWrongFormat.
// A timestamp without an offset (e.g. "1985-04-12T23:20:50.52") is malformed.
func NewDeadline(raw string) (Deadline, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Deadline{}, apperror.Validation("DeadlineWrongFormat", "Deadline has wrong format")
	}
	return Deadline{value: t.UTC()}, nil
}

// RestoreDeadline wraps an instant read back from storage.
func RestoreDeadline(t time.Time) Deadline {
	return Deadline{value: t.UTC()}
}

// Time returns the deadline as a UTC instant.
func (d Deadline) Time() time.Time {
	return d.value
}

// MarshalText serializes the Deadline as an RFC 3339 UTC timestamp.
func (d Deadline) MarshalText() ([]byte, error) {
	return []byte(d.value.Format(time.RFC3339)), nil
}

// Task is the to-do aggregate. Description and Deadline are optional;
// nil means the field was never provided.
type Task struct {
	ID          ID           `json:"id"`
	UserID      ID           `json:"-"`
	Title       Title        `json:"title"`
	Description *Description `json:"description,omitempty"`
	Status      Status       `json:"status"`
	Deadline    *Deadline    `json:"deadline,omitempty"`
}

// NewTask builds a task with a freshly generated ID, owned by userID.
func NewTask(userID ID, title Title, description *Description, status Status, deadline *Deadline) Task {
	return Task{
		ID:          NewID(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		Deadline:    deadline,
	}
}
