// Package notify keeps the external notification facility consistent with
// the live task set: one scheduled notification per task that has an enabled
// reminder with a resolved fire time.
package notify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrPermissionDenied is returned by a facility when the user has refused
// notification permission. It is non-fatal: the synchronizer degrades
// instead of failing.
var ErrPermissionDenied = errors.New("notification permission denied")

// ActionComplete is the response action id marking the task done from the
// notification itself.
const ActionComplete = "complete"

// SnoozeAction builds the response action id that pushes the reminder out by
// the given number of minutes, e.g. "snooze:15-minutes".
func SnoozeAction(minutes int) string {
	return fmt.Sprintf("snooze:%d-minutes", minutes)
}

// ParseSnooze extracts the minute count from a snooze action id. The second
// return is false for any other action.
func ParseSnooze(action string) (int, bool) {
	rest, ok := strings.CutPrefix(action, "snooze:")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, "-minutes")
	if !ok {
		return 0, false
	}
	minutes, err := strconv.Atoi(rest)
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// Request is one scheduled notification, keyed by the task it reminds
// about.
type Request struct {
	TaskID  string    `json:"task_id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	FireAt  time.Time `json:"fire_at"`
	Actions [2]string `json:"actions"`
}

// Same reports whether o would produce an identical notification, so
// re-scheduling can be skipped.
func (r Request) Same(o Request) bool {
	return r.TaskID == o.TaskID &&
		r.Title == o.Title &&
		r.Body == o.Body &&
		r.FireAt.Equal(o.FireAt) &&
		r.Actions == o.Actions
}

// Facility is the boundary to the OS notification system. Schedule replaces
// any existing notification with the same task id.
type Facility interface {
	// RequestAuthorization asks for permission to post notifications.
	RequestAuthorization() (bool, error)

	// Pending returns the currently scheduled notifications.
	Pending() ([]Request, error)

	// Schedule registers or replaces the notification for req.TaskID.
	Schedule(req Request) error

	// Cancel removes the scheduled notification for the task, if any.
	Cancel(taskID string) error
}
