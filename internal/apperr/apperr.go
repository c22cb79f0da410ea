package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers and the presentation layer can react
// without parsing message strings.
type Kind int

const (
	KindUnknown Kind = iota

	// Entity mutation failures, qualified by Entity.
	KindCreateFailed
	KindUpdateFailed
	KindDeleteFailed

	// Lookup and store failures.
	KindNotFound
	KindFetchFailed
	KindSaveFailed

	// Validation.
	KindInvalidData

	// Import/export.
	KindFileNotFound
	KindInvalidFormat
	KindEncodeFailed
	KindDecodeFailed

	// Degraded mode: the notification facility refused permission.
	KindRemindersDisabled
)

// Error is the typed failure returned by every mutating operation. Reason is
// user-facing; Err carries the underlying cause, if any.
type Error struct {
	Kind   Kind
	Entity string // "task", "project", "area", "tag"; empty when not entity-scoped
	Field  string // offending field for validation failures
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Reason
	if msg == "" {
		msg = e.Message()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by kind so callers can use errors.Is with sentinel values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && (t.Entity == "" || t.Entity == e.Entity)
}

// Message returns a display string for the error kind, suitable for showing
// to the user unchanged.
func (e *Error) Message() string {
	switch e.Kind {
	case KindCreateFailed:
		return fmt.Sprintf("Could not create %s: %s", e.Entity, e.Reason)
	case KindUpdateFailed:
		return fmt.Sprintf("Could not update %s: %s", e.Entity, e.Reason)
	case KindDeleteFailed:
		return fmt.Sprintf("Could not delete %s: %s", e.Entity, e.Reason)
	case KindNotFound:
		return fmt.Sprintf("The requested %s was not found", e.Entity)
	case KindFetchFailed:
		return "Could not load data from the local store"
	case KindSaveFailed:
		return "Could not save changes to the local store"
	case KindInvalidData:
		if e.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", e.Field, e.Reason)
		}
		return fmt.Sprintf("Invalid data: %s", e.Reason)
	case KindFileNotFound:
		return "The selected file could not be found"
	case KindInvalidFormat:
		return "The file is not in a recognized format"
	case KindEncodeFailed:
		return "Could not encode data for export"
	case KindDecodeFailed:
		return "Could not decode the imported data"
	case KindRemindersDisabled:
		return "Reminders are disabled because notification permission was denied"
	default:
		return "Something went wrong"
	}
}

// Suggestion returns an optional recovery hint for the user, or "".
func (e *Error) Suggestion() string {
	switch e.Kind {
	case KindInvalidData, KindCreateFailed, KindUpdateFailed:
		return "Check the highlighted field and try again"
	case KindSaveFailed, KindFetchFailed:
		return "Restart the app; if the problem persists the local store may need repair"
	case KindRemindersDisabled:
		return "Grant notification permission in system settings, then toggle a reminder"
	case KindFileNotFound, KindInvalidFormat, KindDecodeFailed:
		return "Pick a file previously exported by this app"
	default:
		return ""
	}
}

// Invalid builds a validation failure for a single field.
func Invalid(field, reason string) *Error {
	return &Error{Kind: KindInvalidData, Field: field, Reason: reason}
}

// NotFound builds a lookup failure for an entity id.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Reason: fmt.Sprintf("%s %q not found", entity, id)}
}

// SaveFailed wraps an underlying store write error.
func SaveFailed(err error) *Error {
	return &Error{Kind: KindSaveFailed, Reason: "store save failed", Err: err}
}

// FetchFailed wraps an underlying store read error.
func FetchFailed(err error) *Error {
	return &Error{Kind: KindFetchFailed, Reason: "store fetch failed", Err: err}
}

// CreateFailed tags a create failure for the given entity, preserving the
// kind and cause of err when it is already a typed error.
func CreateFailed(entity string, err error) *Error {
	return entityFailed(KindCreateFailed, entity, err)
}

// UpdateFailed tags an update failure for the given entity.
func UpdateFailed(entity string, err error) *Error {
	return entityFailed(KindUpdateFailed, entity, err)
}

// DeleteFailed tags a delete failure for the given entity.
func DeleteFailed(entity string, err error) *Error {
	return entityFailed(KindDeleteFailed, entity, err)
}

func entityFailed(kind Kind, entity string, err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		// Validation and store errors pass through unchanged so the caller
		// sees the original kind, not a generic wrapper.
		return typed
	}
	return &Error{Kind: kind, Entity: entity, Reason: err.Error(), Err: err}
}
