// Package backup exports and imports the full entity set as a JSON archive.
package backup

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/repo"
	"github.com/balkashynov/tickle/internal/store"
	"github.com/balkashynov/tickle/internal/validate"

	"gorm.io/gorm"
)

// ArchiveVersion is bumped when the archive layout changes. Imports accept
// any version up to the current one; record ids and soft-delete flags are
// preserved across versions.
const ArchiveVersion = 1

// Archive is the on-disk export format.
type Archive struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Areas      []models.Area    `json:"areas"`
	Projects   []models.Project `json:"projects"`
	Tags       []models.Tag     `json:"tags"`
	Tasks      []models.Task    `json:"tasks"`
}

// Service reads and writes archives against the store.
type Service struct {
	st  *store.Store
	now repo.Clock
}

// New wires a backup service. A nil clock defaults to time.Now.
func New(st *store.Store, clock repo.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{st: st, now: clock}
}

// Export writes every record, soft-deleted tasks included, to a JSON file
// at path.
func (s *Service) Export(path string) error {
	archive := Archive{Version: ArchiveVersion, ExportedAt: s.now()}

	ctx := s.st.Batch()
	if err := ctx.Find(&archive.Areas); err != nil {
		return err
	}
	if err := ctx.Find(&archive.Projects); err != nil {
		return err
	}
	if err := ctx.Find(&archive.Tags); err != nil {
		return err
	}
	if err := ctx.Find(&archive.Tasks, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Tags")
	}); err != nil {
		return err
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return &apperr.Error{Kind: apperr.KindEncodeFailed, Reason: "archive", Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.SaveFailed(err)
	}
	return nil
}

// Import reads an archive and upserts its records through a secondary
// context, preserving ids and soft-delete flags. Every record is
// re-validated; one invalid record fails the whole import, and the single
// commit keeps it all-or-nothing.
func (s *Service) Import(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &apperr.Error{Kind: apperr.KindFileNotFound, Reason: path, Err: err}
	}
	if err != nil {
		return &apperr.Error{Kind: apperr.KindFileNotFound, Reason: path, Err: err}
	}

	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return &apperr.Error{Kind: apperr.KindDecodeFailed, Reason: "archive", Err: err}
	}
	if archive.Version < 1 || archive.Version > ArchiveVersion {
		return &apperr.Error{Kind: apperr.KindInvalidFormat, Reason: "unsupported archive version"}
	}

	ctx := s.st.Batch()

	for i := range archive.Areas {
		a := &archive.Areas[i]
		name, err := validate.AreaName(a.Name)
		if err != nil {
			return err
		}
		a.Name = name
		ctx.Save(a)
	}
	for i := range archive.Projects {
		p := &archive.Projects[i]
		name, err := validate.ProjectName(p.Name)
		if err != nil {
			return err
		}
		p.Name = name
		ctx.Save(p)
	}
	for i := range archive.Tags {
		t := &archive.Tags[i]
		name, err := validate.TagName(t.Name)
		if err != nil {
			return err
		}
		t.Name = name
		ctx.Save(t)
	}
	for i := range archive.Tasks {
		t := &archive.Tasks[i]
		fields, err := validate.Task(t.Title, t.Notes, t.DueDate, t.Priority)
		if err != nil {
			return err
		}
		// The completion and reminder pairings hold for every committed
		// record; an archive that breaks them is rejected like any other
		// invalid data.
		if t.Completed == (t.CompletedAt == nil) {
			return apperr.Invalid("completed_at", "must be set exactly when the task is completed")
		}
		if t.ReminderEnabled && t.ReminderTime == nil {
			return apperr.Invalid("reminder_time", "must be set while the reminder is enabled")
		}
		t.Title = fields.Title
		t.Notes = fields.Notes
		ctx.Save(t)
	}

	return ctx.Commit()
}
