// Package repo provides one typed repository per entity, layered over the
// store, the validation rules, and the committed-mutation event bus.
package repo

import (
	"time"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/store"
)

// Clock supplies the current time; tests inject fixed instants.
type Clock func() time.Time

// Repos bundles the per-entity repositories sharing one store, error
// channel, and event bus. Constructed once at startup and passed by
// reference; no package-level state.
type Repos struct {
	Tasks    *Tasks
	Projects *Projects
	Areas    *Areas
	Tags     *Tags
}

// New wires the repositories. A nil clock defaults to time.Now.
func New(st *store.Store, bus *events.Bus, errs *apperr.Channel, clock Clock) *Repos {
	if clock == nil {
		clock = time.Now
	}
	deps := &deps{st: st, bus: bus, errs: errs, now: clock}
	r := &Repos{
		Tags:     &Tags{deps: deps},
		Projects: &Projects{deps: deps},
		Areas:    &Areas{deps: deps},
	}
	r.Tasks = &Tasks{deps: deps, tags: r.Tags}
	return r
}

type deps struct {
	st   *store.Store
	bus  *events.Bus
	errs *apperr.Channel
	now  Clock
}

// fail reports err to the shared presentation channel and returns it.
func (d *deps) fail(err *apperr.Error) *apperr.Error {
	d.errs.Report(err)
	return err
}

func (d *deps) publish(c events.Change) {
	d.bus.Publish(c)
}

func (d *deps) primary() *store.Context {
	return d.st.Primary()
}
