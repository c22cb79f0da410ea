package notify

import "sync"

// MemoryFacility is an in-process notification facility. It backs tests and
// the default CLI wiring, and counts operations so reconciliation
// idempotence can be asserted.
type MemoryFacility struct {
	mu        sync.Mutex
	scheduled map[string]Request
	denied    bool

	scheduleCalls int
	cancelCalls   int

	// OnPending, when set, runs after each Pending call. Tests use it to
	// mutate state while a sync pass is in flight.
	OnPending func()
}

// NewMemoryFacility returns an empty facility with permission granted.
func NewMemoryFacility() *MemoryFacility {
	return &MemoryFacility{scheduled: make(map[string]Request)}
}

// Deny makes every subsequent call fail with ErrPermissionDenied.
func (f *MemoryFacility) Deny() {
	f.mu.Lock()
	f.denied = true
	f.mu.Unlock()
}

// Allow restores permission.
func (f *MemoryFacility) Allow() {
	f.mu.Lock()
	f.denied = false
	f.mu.Unlock()
}

// RequestAuthorization reports whether notifications are permitted.
func (f *MemoryFacility) RequestAuthorization() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.denied, nil
}

// Pending returns the currently scheduled notifications.
func (f *MemoryFacility) Pending() ([]Request, error) {
	f.mu.Lock()
	if f.denied {
		f.mu.Unlock()
		return nil, ErrPermissionDenied
	}
	out := make([]Request, 0, len(f.scheduled))
	for _, req := range f.scheduled {
		out = append(out, req)
	}
	hook := f.OnPending
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

// Schedule registers or replaces the notification for req.TaskID.
func (f *MemoryFacility) Schedule(req Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied {
		return ErrPermissionDenied
	}
	f.scheduled[req.TaskID] = req
	f.scheduleCalls++
	return nil
}

// Cancel removes the scheduled notification for the task.
func (f *MemoryFacility) Cancel(taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied {
		return ErrPermissionDenied
	}
	delete(f.scheduled, taskID)
	f.cancelCalls++
	return nil
}

// Scheduled returns the request for a task id, if one is scheduled.
func (f *MemoryFacility) Scheduled(taskID string) (Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.scheduled[taskID]
	return req, ok
}

// Count returns the number of scheduled notifications.
func (f *MemoryFacility) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}

// Ops returns the cumulative schedule and cancel call counts.
func (f *MemoryFacility) Ops() (schedules, cancels int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheduleCalls, f.cancelCalls
}
