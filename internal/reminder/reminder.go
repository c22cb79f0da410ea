// Package reminder computes when a task's notification should fire. It is
// pure: no store access, no clock reads (callers pass now).
package reminder

import (
	"time"

	"github.com/balkashynov/tickle/internal/models"
)

// Schedule is the resolved reminder configuration for a task.
type Schedule struct {
	Type          models.ReminderType
	Time          *time.Time
	OffsetMinutes int
}

// Resolve computes the reminder schedule from a task's due date, chosen
// reminder type, and any explicitly picked time.
//
// With a due date, relative types fire offset minutes before it; the exact
// type keeps the explicit time, defaulting to one hour before the due date.
// Without a due date the type is forced to exact, defaulting to one hour
// from now.
func Resolve(due *time.Time, typ models.ReminderType, explicit *time.Time, now time.Time) Schedule {
	if due == nil {
		t := explicit
		if t == nil {
			def := now.Add(time.Hour)
			t = &def
		}
		return Schedule{Type: models.ReminderExact, Time: t}
	}

	if typ == models.ReminderExact || !typ.Valid() {
		t := explicit
		if t == nil {
			def := due.Add(-time.Hour)
			t = &def
		}
		return Schedule{Type: models.ReminderExact, Time: t}
	}

	offset := typ.OffsetMinutes()
	fire := due.Add(-time.Duration(offset) * time.Minute)
	return Schedule{Type: typ, Time: &fire, OffsetMinutes: offset}
}

// Disabled is the schedule of a task whose reminder was switched off: no
// fire time, zero offset.
func Disabled(typ models.ReminderType) Schedule {
	return Schedule{Type: typ}
}
