package apperr

import "sync"

// Channel is the shared error-presentation slot. It holds at most one
// unacknowledged error; a newer failure overwrites an unacknowledged one
// rather than queueing behind it.
type Channel struct {
	mu      sync.Mutex
	current *Error
}

// NewChannel returns an empty error channel.
func NewChannel() *Channel {
	return &Channel{}
}

// Report publishes err for presentation, replacing any unacknowledged error.
// A nil err is ignored.
func (c *Channel) Report(err *Error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.current = err
	c.mu.Unlock()
}

// Current returns the unacknowledged error, or nil.
func (c *Channel) Current() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Acknowledge clears the slot.
func (c *Channel) Acknowledge() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
