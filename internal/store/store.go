package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/tickle/internal/models"
)

// Store owns all entity records and the transactional commit discipline.
// Repositories hold no entity state beyond a reference to the store.
type Store struct {
	db        *gorm.DB
	ephemeral bool

	// mu serializes commits and primary-context reads against each other.
	mu sync.Mutex

	mergeMu sync.Mutex
	merges  []ChangeSet
	onMerge func(ChangeSet)

	primary *Context
}

// Open opens (creating if needed) the SQLite store at path and runs
// migrations. Callers that cannot open a durable store should fall back to
// OpenMemory so the app keeps working without persistence.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return newStore(db, false)
}

// OpenMemory opens an ephemeral in-memory store. Records do not survive the
// process; callers must surface a "not persisted" warning.
func OpenMemory() (*Store, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}

	return newStore(db, true)
}

func newStore(db *gorm.DB, ephemeral bool) (*Store, error) {
	if err := db.AutoMigrate(
		&models.Task{},
		&models.Project{},
		&models.Area{},
		&models.Tag{},
		&models.TaskTag{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{db: db, ephemeral: ephemeral}
	s.primary = &Context{st: s, primary: true}
	return s, nil
}

// Ephemeral reports whether the store is the in-memory fallback.
func (s *Store) Ephemeral() bool {
	return s.ephemeral
}

// Primary returns the single interactive context. All interactive repository
// calls go through it and are serialized relative to each other.
func (s *Store) Primary() *Context {
	return s.primary
}

// Batch returns a fresh secondary context for background work. Its commit
// publishes a change-set that the primary context applies before its next
// read.
func (s *Store) Batch() *Context {
	return &Context{st: s}
}

// OnMerge registers the handler invoked for each change-set the primary
// context absorbs from a secondary commit. Used to refresh observable
// collections.
func (s *Store) OnMerge(fn func(ChangeSet)) {
	s.mergeMu.Lock()
	s.onMerge = fn
	s.mergeMu.Unlock()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) queueMerge(cs ChangeSet) {
	if cs.Empty() {
		return
	}
	s.mergeMu.Lock()
	s.merges = append(s.merges, cs)
	s.mergeMu.Unlock()
}

// drainMerges applies queued secondary change-sets to the primary context.
// Records are already durable at this point; applying means surfacing them to
// whoever mirrors the primary view, last write wins per record.
func (s *Store) drainMerges() {
	s.mergeMu.Lock()
	pending := s.merges
	s.merges = nil
	fn := s.onMerge
	s.mergeMu.Unlock()

	if fn == nil {
		return
	}
	for _, cs := range pending {
		fn(cs)
	}
}
