package events

import "sync"

// Op identifies what a committed mutation did to an entity.
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpRestore Op = "restore"
)

// Change is published after every successful commit. Consumers recompute
// from current store state, so a slow consumer missing an intermediate
// change still converges.
type Change struct {
	Entity string
	ID     string
	Op     Op

	// ReminderRelevant marks changes that touch a task's completion,
	// deletion, or reminder fields and therefore require notification
	// reconciliation.
	ReminderRelevant bool

	// ReminderConfig marks an explicit user action on a task's reminder
	// settings. Only these clear the degraded reminders-disabled state.
	ReminderConfig bool
}

// Bus fans committed-mutation signals out to subscribers. Publish never
// blocks the committing caller.
type Bus struct {
	mu   sync.Mutex
	subs []chan Change
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber channel with the given buffer.
func (b *Bus) Subscribe(buffer int) <-chan Change {
	ch := make(chan Change, buffer)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers c to every subscriber that has buffer room. Subscribers
// that are full are skipped rather than blocking the committer.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- c:
		default:
		}
	}
}
