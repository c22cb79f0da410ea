// Package app constructs the service graph once at process start. Every
// dependency is passed by reference; there is no package-level shared state.
package app

import (
	"context"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/backup"
	"github.com/balkashynov/tickle/internal/config"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/notify"
	"github.com/balkashynov/tickle/internal/repo"
	"github.com/balkashynov/tickle/internal/store"
)

// App is the wired application core.
type App struct {
	Config   config.Config
	Store    *store.Store
	Bus      *events.Bus
	Errors   *apperr.Channel
	Repos    *repo.Repos
	Facility notify.Facility
	Sync     *notify.Synchronizer
	Backup   *backup.Service

	// Warning is set when the durable store could not be opened and the app
	// is running on the in-memory fallback.
	Warning string
}

// New loads config and wires the application.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, nil)
}

// NewWithConfig wires the application against the given config. A non-nil
// facility overrides the default file-backed one; tests pass a memory
// facility.
func NewWithConfig(cfg config.Config, facility notify.Facility) (*App, error) {
	warning := ""
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		// Keep working without persistence rather than refusing to start.
		mem, memErr := store.OpenMemory()
		if memErr != nil {
			return nil, err
		}
		st = mem
		warning = "could not open the local store; changes in this session will not be persisted"
	}

	bus := events.NewBus()
	errs := apperr.NewChannel()
	repos := repo.New(st, bus, errs, nil)

	// Secondary-context merges surface as committed-mutation events so
	// observers and the synchronizer refresh.
	st.OnMerge(func(cs store.ChangeSet) {
		for _, rec := range cs.Saved {
			bus.Publish(changeFor(rec, events.OpUpdate))
		}
		for _, rec := range cs.Deleted {
			bus.Publish(changeFor(rec, events.OpDelete))
		}
	})

	if facility == nil {
		facility = notify.NewFileFacility(cfg.NotifyStatePath)
	}
	sync := notify.NewSynchronizer(repos.Tasks, facility, errs, nil, cfg.SnoozeMinutes)

	return &App{
		Config:   cfg,
		Store:    st,
		Bus:      bus,
		Errors:   errs,
		Repos:    repos,
		Facility: facility,
		Sync:     sync,
		Backup:   backup.New(st, nil),
		Warning:  warning,
	}, nil
}

// Start launches the background synchronizer loop. It returns immediately;
// the loop runs until ctx is canceled.
func (a *App) Start(ctx context.Context) {
	go a.Sync.Run(ctx, a.Bus.Subscribe(16))
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

func changeFor(record any, op events.Op) events.Change {
	switch r := record.(type) {
	case *models.Task:
		return events.Change{Entity: "task", ID: r.ID, Op: op, ReminderRelevant: true}
	case *models.Project:
		return events.Change{Entity: "project", ID: r.ID, Op: op}
	case *models.Area:
		return events.Change{Entity: "area", ID: r.ID, Op: op}
	case *models.Tag:
		return events.Change{Entity: "tag", ID: r.ID, Op: op}
	default:
		return events.Change{Entity: "unknown", Op: op}
	}
}
