package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/balkashynov/tickle/internal/apperr"
)

// Field length limits enforced before any record is committed.
const (
	MaxTitleLen       = 200
	MaxNotesLen       = 2000
	MaxProjectNameLen = 100
	MaxAreaNameLen    = 50
	MaxTagNameLen     = 30
)

// TaskTitle trims and checks a task title. Returns the normalized value.
func TaskTitle(title string) (string, error) {
	return requiredText("title", title, MaxTitleLen)
}

// TaskNotes trims and checks optional task notes.
func TaskNotes(notes string) (string, error) {
	return optionalText("notes", notes, MaxNotesLen)
}

// ProjectName trims and checks a project name.
func ProjectName(name string) (string, error) {
	return requiredText("project name", name, MaxProjectNameLen)
}

// AreaName trims and checks an area name.
func AreaName(name string) (string, error) {
	return requiredText("area name", name, MaxAreaNameLen)
}

// TagName trims and checks a tag name. Beyond the usual length rules, tag
// names only allow letters, digits, spaces, hyphens and underscores.
func TagName(name string) (string, error) {
	trimmed, err := requiredText("tag name", name, MaxTagNameLen)
	if err != nil {
		return "", err
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' && r != '_' {
			return "", apperr.Invalid("tag name", fmt.Sprintf("character %q is not allowed", r))
		}
	}
	return trimmed, nil
}

// Priority checks that a priority is within 0 (none) to 3 (high).
func Priority(priority int) error {
	if priority < 0 || priority > 3 {
		return apperr.Invalid("priority", "must be between 0 and 3")
	}
	return nil
}

// DueDate checks an optional due date. A nil due date is always valid; a set
// one must be a real instant.
func DueDate(due *time.Time) error {
	if due != nil && due.IsZero() {
		return apperr.Invalid("due date", "must be a valid date")
	}
	return nil
}

// TaskFields holds the normalized values produced by Task.
type TaskFields struct {
	Title    string
	Notes    string
	DueDate  *time.Time
	Priority int
}

// Task validates a full set of task fields, returning the first failure in
// stable order: title, notes, due date, priority.
func Task(title, notes string, due *time.Time, priority int) (TaskFields, error) {
	t, err := TaskTitle(title)
	if err != nil {
		return TaskFields{}, err
	}
	n, err := TaskNotes(notes)
	if err != nil {
		return TaskFields{}, err
	}
	if err := DueDate(due); err != nil {
		return TaskFields{}, err
	}
	if err := Priority(priority); err != nil {
		return TaskFields{}, err
	}
	return TaskFields{Title: t, Notes: n, DueDate: due, Priority: priority}, nil
}

func requiredText(field, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperr.Invalid(field, "must not be empty")
	}
	if len([]rune(trimmed)) > max {
		return "", apperr.Invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return trimmed, nil
}

func optionalText(field, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) > max {
		return "", apperr.Invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return trimmed, nil
}
