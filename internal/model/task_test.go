package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewTitle_Ok(t *testing.T) {
	title, err := NewTitle("Buy milk")
	if err != nil {
		t.Fatalf("NewTitle() error = %v", err)
	}
	if title.String() != "Buy milk" {
		t.Errorf("String() = %q", title.String())
	}
}

func TestNewTitle_Empty(t *testing.T) {
	_, err := NewTitle("")
	assertValidationCode(t, err, "TitleEmpty")
}

func TestNewTitle_TooLong(t *testing.T) {
	_, err := NewTitle(strings.Repeat("a", titleMaxLen+1))
	assertValidationCode(t, err, "TitleTooLong")
}

func TestNewTitle_AtMaxLength(t *testing.T) {
	if _, err := NewTitle(strings.Repeat("a", titleMaxLen)); err != nil {
		t.Errorf("NewTitle() at max length error = %v", err)
	}
}

func TestNewDescription_Ok(t *testing.T) {
	d, err := NewDescription("Semi-skimmed, two litres")
	if err != nil {
		t.Fatalf("NewDescription() error = %v", err)
	}
	if d.String() != "Semi-skimmed, two litres" {
		t.Errorf("String() = %q", d.String())
	}
}

func TestNewDescription_EmptyIsValid(t *testing.T) {
	if _, err := NewDescription(""); err != nil {
		t.Errorf("NewDescription(\"\") error = %v", err)
	}
}

func TestNewDescription_TooLong(t *testing.T) {
	_, err := NewDescription(strings.Repeat("a", descriptionMaxLen+1))
	assertValidationCode(t, err, "DescriptionTooLong")
}

func TestNewDescription_AtMaxLength(t *testing.T) {
	if _, err := NewDescription(strings.Repeat("a", descriptionMaxLen)); err != nil {
		t.Errorf("NewDescription() at max length error = %v", err)
	}
}

func TestParseStatus_RoundTrip(t *testing.T) {
	for _, raw := range []string{"ToDo", "InProgress", "Done"} {
		status, err := ParseStatus(raw)
		if err != nil {
			t.Errorf("ParseStatus(%q) error = %v", raw, err)
			continue
		}
		if status.String() != raw {
			t.Errorf("ParseStatus(%q).String() = %q", raw, status.String())
		}
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	for _, raw := range []string{"Unknown", "todo", "DONE", ""} {
		_, err := ParseStatus(raw)
		if err == nil {
			t.Errorf("ParseStatus(%q) should be rejected", raw)
			continue
		}
		assertValidationCode(t, err, "StatusUnknown")
	}
}

func TestNewDeadline_Ok(t *testing.T) {
	// Valid RFC 3339 instants, with and without fractional seconds and with
	// non-UTC offsets.
	for _, raw := range []string{
		"1985-04-12T23:20:50.52Z",
		"1996-12-19T16:39:57-08:00",
		"1937-01-01T12:00:27.87+00:20",
	} {
		deadline, err := NewDeadline(raw)
		if err != nil {
			t.Errorf("NewDeadline(%q) error = %v", raw, err)
			continue
		}
		want, _ := time.Parse(time.RFC3339, raw)
		if !deadline.Time().Equal(want) {
			t.Errorf("NewDeadline(%q).Time() = %v, want %v", raw, deadline.Time(), want)
		}
		if deadline.Time().Location() != time.UTC {
			t.Errorf("NewDeadline(%q) not stored as UTC", raw)
		}
	}
}

func TestNewDeadline_WrongFormat(t *testing.T) {
	for _, raw := range []string{
		"1985-04-12T23:20:50.52", // missing timezone offset
		"2024-039",               // ISO 8601 ordinal date, not RFC 3339
		"invalid",
		"",
	} {
		_, err := NewDeadline(raw)
		if err == nil {
			t.Errorf("NewDeadline(%q) should be rejected", raw)
			continue
		}
		assertValidationCode(t, err, "DeadlineWrongFormat")
	}
}

func TestTask_JSONShape(t *testing.T) {
	desc, _ := NewDescription("desc")
	deadline, _ := NewDeadline("2030-01-02T03:04:05Z")
	title, _ := NewTitle("Title")

	task := NewTask(NewID(), title, &desc, StatusToDo, &deadline)

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if got["title"] != "Title" {
		t.Errorf("title = %v", got["title"])
	}
	if got["description"] != "desc" {
		t.Errorf("description = %v", got["description"])
	}
	if got["status"] != "ToDo" {
		t.Errorf("status = %v", got["status"])
	}
	if got["deadline"] != "2030-01-02T03:04:05Z" {
		t.Errorf("deadline = %v", got["deadline"])
	}
	if _, present := got["userId"]; present {
		t.Error("owner id must not be serialized")
	}
}

func TestTask_OptionalFieldsOmitted(t *testing.T) {
	title, _ := NewTitle("Title")
	task := NewTask(NewID(), title, nil, StatusDone, nil)

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if _, present := got["description"]; present {
		t.Error("absent description must be omitted")
	}
	if _, present := got["deadline"]; present {
		t.Error("absent deadline must be omitted")
	}
}
