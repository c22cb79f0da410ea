package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/repo"
)

// Synchronizer reconciles the facility's scheduled notifications against the
// target set of tasks that currently want a reminder. Sync is convergent:
// running it again with no intervening data change issues zero facility
// operations.
type Synchronizer struct {
	tasks         *repo.Tasks
	facility      Facility
	errs          *apperr.Channel
	now           repo.Clock
	snoozeMinutes int

	// mu serializes sync passes; gen invalidates an in-flight pass when the
	// data changed under it.
	mu  sync.Mutex
	gen atomic.Int64

	degraded atomic.Bool
}

// NewSynchronizer wires a synchronizer. A nil clock defaults to time.Now;
// snoozeMinutes is the offset offered by the snooze notification action.
func NewSynchronizer(tasks *repo.Tasks, facility Facility, errs *apperr.Channel, clock repo.Clock, snoozeMinutes int) *Synchronizer {
	if clock == nil {
		clock = time.Now
	}
	if snoozeMinutes <= 0 {
		snoozeMinutes = 15
	}
	return &Synchronizer{
		tasks:         tasks,
		facility:      facility,
		errs:          errs,
		now:           clock,
		snoozeMinutes: snoozeMinutes,
	}
}

// Degraded reports whether reminders are disabled because the facility
// denied permission.
func (s *Synchronizer) Degraded() bool {
	return s.degraded.Load()
}

// Notify records a committed mutation. It invalidates any in-flight sync
// pass, and an explicit reminder action ends the degraded state so the next
// pass retries the facility.
func (s *Synchronizer) Notify(ev events.Change) {
	s.gen.Add(1)
	if ev.ReminderConfig {
		s.degraded.Store(false)
	}
}

// Run drives the synchronizer from committed-mutation events until ctx is
// canceled. It performs one initial pass at startup, then one per
// reminder-relevant change. Callers run it on its own goroutine; commit
// paths are never blocked by it.
func (s *Synchronizer) Run(ctx context.Context, changes <-chan events.Change) {
	_ = s.Sync()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-changes:
			if !ok {
				return
			}
			if !ev.ReminderRelevant {
				continue
			}
			s.Notify(ev)
			_ = s.Sync()
		}
	}
}

// Sync performs one reconciliation pass: confirm authorization, cancel
// notifications for tasks that no longer want one, schedule or replace the
// rest, and skip any request whose content is unchanged. While degraded it
// does nothing.
func (s *Synchronizer) Sync() error {
	if s.degraded.Load() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.gen.Load()

	authorized, err := s.facility.RequestAuthorization()
	if err != nil {
		return s.facilityErr(err)
	}
	if !authorized {
		return s.facilityErr(ErrPermissionDenied)
	}

	pending, err := s.facility.Pending()
	if err != nil {
		return s.facilityErr(err)
	}

	target, err := s.tasks.WithReminders()
	if err != nil {
		var typed *apperr.Error
		if errors.As(err, &typed) {
			s.errs.Report(typed)
		}
		return err
	}

	targetByID := make(map[string]models.Task, len(target))
	for _, t := range target {
		targetByID[t.ID] = t
	}
	pendingByID := make(map[string]Request, len(pending))
	for _, req := range pending {
		pendingByID[req.TaskID] = req
	}

	// Cancel whatever no longer corresponds to a task wanting a reminder.
	for id := range pendingByID {
		if _, ok := targetByID[id]; ok {
			continue
		}
		if s.gen.Load() != start {
			return nil // data changed under us; the next pass reconciles
		}
		if err := s.facility.Cancel(id); err != nil {
			return s.facilityErr(err)
		}
	}

	// Schedule or replace, skipping identical content.
	for _, t := range target {
		want := s.requestFor(t)
		if have, ok := pendingByID[t.ID]; ok && have.Same(want) {
			continue
		}
		if s.gen.Load() != start {
			return nil
		}
		if err := s.facility.Schedule(want); err != nil {
			return s.facilityErr(err)
		}
	}

	return nil
}

// HandleResponse applies a user's response action from a delivered
// notification: complete marks the task done, snooze pushes the reminder to
// an exact time N minutes from now.
func (s *Synchronizer) HandleResponse(taskID, action string) error {
	if action == ActionComplete {
		_, err := s.tasks.MarkCompleted(taskID)
		return err
	}
	if minutes, ok := ParseSnooze(action); ok {
		at := s.now().Add(time.Duration(minutes) * time.Minute)
		_, err := s.tasks.EnableReminder(taskID, models.ReminderExact, &at)
		return err
	}
	return fmt.Errorf("unknown notification action %q", action)
}

// facilityErr degrades on permission denial (surfacing it once) and passes
// other errors through.
func (s *Synchronizer) facilityErr(err error) error {
	if errors.Is(err, ErrPermissionDenied) {
		if s.degraded.CompareAndSwap(false, true) {
			s.errs.Report(&apperr.Error{
				Kind:   apperr.KindRemindersDisabled,
				Reason: "notification permission denied",
				Err:    err,
			})
		}
		return nil
	}
	var typed *apperr.Error
	if errors.As(err, &typed) {
		s.errs.Report(typed)
	}
	return err
}

func (s *Synchronizer) requestFor(t models.Task) Request {
	body := t.Notes
	if body == "" && t.DueDate != nil {
		body = "Due " + t.DueDate.Format("Mon 02 Jan 15:04")
	}
	if body == "" {
		body = "You have a task waiting"
	}
	return Request{
		TaskID:  t.ID,
		Title:   t.Title,
		Body:    body,
		FireAt:  *t.ReminderTime,
		Actions: [2]string{ActionComplete, SnoozeAction(s.snoozeMinutes)},
	}
}
