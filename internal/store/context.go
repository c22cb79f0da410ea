package store

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/balkashynov/tickle/internal/apperr"
)

// ErrNotFound is returned by First when no record matches.
var ErrNotFound = errors.New("record not found")

type mutationOp int

const (
	opInsert mutationOp = iota
	opSave
	opDelete
)

type mutation struct {
	op     mutationOp
	record any
}

// ChangeSet describes the records touched by one committed unit of work.
type ChangeSet struct {
	Saved   []any
	Deleted []any
}

// Empty reports whether the change-set touches no records.
func (cs ChangeSet) Empty() bool {
	return len(cs.Saved) == 0 && len(cs.Deleted) == 0
}

// Scope narrows or orders a query, in the style of gorm scopes.
type Scope func(*gorm.DB) *gorm.DB

// Context is a unit of work against the store. Mutations are staged until
// Commit, which applies them atomically: either every pending mutation is
// visible to subsequent reads, or none is.
type Context struct {
	st      *Store
	primary bool

	mu      sync.Mutex
	pending []mutation
}

// Insert stages a new record for the next commit.
func (c *Context) Insert(record any) {
	c.stage(mutation{op: opInsert, record: record})
}

// Save stages an update to an existing record for the next commit.
func (c *Context) Save(record any) {
	c.stage(mutation{op: opSave, record: record})
}

// Delete stages a hard delete for the next commit.
func (c *Context) Delete(record any) {
	c.stage(mutation{op: opDelete, record: record})
}

func (c *Context) stage(m mutation) {
	c.mu.Lock()
	c.pending = append(c.pending, m)
	c.mu.Unlock()
}

// Pending returns the number of staged mutations.
func (c *Context) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Commit applies all staged mutations in one transaction. With nothing
// staged it is a successful no-op. On failure the staged mutations are kept
// and previously committed state is untouched.
func (c *Context) Commit() error {
	c.mu.Lock()
	pending := c.pending
	c.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	c.st.mu.Lock()
	defer c.st.mu.Unlock()

	err := c.st.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range pending {
			var err error
			switch m.op {
			case opInsert:
				err = tx.Create(m.record).Error
			case opSave:
				err = tx.Save(m.record).Error
			case opDelete:
				err = tx.Delete(m.record).Error
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.SaveFailed(err)
	}

	cs := ChangeSet{}
	for _, m := range pending {
		if m.op == opDelete {
			cs.Deleted = append(cs.Deleted, m.record)
		} else {
			cs.Saved = append(cs.Saved, m.record)
		}
	}

	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()

	if !c.primary {
		c.st.queueMerge(cs)
	}
	return nil
}

// Find loads all records matching the given scopes into dest. A primary
// context applies any queued secondary change-sets first.
func (c *Context) Find(dest any, scopes ...Scope) error {
	if c.primary {
		c.st.drainMerges()
	}

	c.st.mu.Lock()
	defer c.st.mu.Unlock()

	q := c.st.db
	for _, s := range scopes {
		q = s(q)
	}
	if err := q.Find(dest).Error; err != nil {
		return apperr.FetchFailed(err)
	}
	return nil
}

// First loads the first record matching the given scopes into dest,
// returning ErrNotFound when nothing matches.
func (c *Context) First(dest any, scopes ...Scope) error {
	if c.primary {
		c.st.drainMerges()
	}

	c.st.mu.Lock()
	defer c.st.mu.Unlock()

	q := c.st.db
	for _, s := range scopes {
		q = s(q)
	}
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return apperr.FetchFailed(err)
	}
	return nil
}
