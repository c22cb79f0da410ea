package repo

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/reminder"
	"github.com/balkashynov/tickle/internal/store"
	"github.com/balkashynov/tickle/internal/validate"
)

// Tasks is the repository for task records and the smart-list queries over
// them.
type Tasks struct {
	*deps
	tags *Tags
}

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title     string
	Notes     string
	DueDate   *time.Time
	Priority  int
	ProjectID *string
	AreaID    *string
	Tags      []string

	ReminderEnabled bool
	ReminderType    models.ReminderType
	ReminderTime    *time.Time
}

// Create validates the request, assigns id, timestamps and sort order, and
// commits the new task.
func (r *Tasks) Create(req CreateTaskRequest) (*models.Task, error) {
	fields, err := validate.Task(req.Title, req.Notes, req.DueDate, req.Priority)
	if err != nil {
		return nil, r.fail(apperr.CreateFailed("task", err))
	}

	if req.ProjectID != nil {
		if _, err := r.projectByID(*req.ProjectID); err != nil {
			return nil, r.fail(apperr.CreateFailed("task", err))
		}
	}
	if req.AreaID != nil {
		if _, err := r.areaByID(*req.AreaID); err != nil {
			return nil, r.fail(apperr.CreateFailed("task", err))
		}
	}

	sortOrder, err := r.nextSortOrder()
	if err != nil {
		return nil, r.fail(apperr.CreateFailed("task", err))
	}

	now := r.now()
	task := models.Task{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     fields.Title,
		Notes:     fields.Notes,
		DueDate:   fields.DueDate,
		Priority:  fields.Priority,
		SortOrder: sortOrder,
		ProjectID: req.ProjectID,
		AreaID:    req.AreaID,
	}

	ctx := r.primary()

	// New tags join the task's unit of work, so the task and its tags commit
	// together or not at all.
	var newTags []models.Tag
	if len(req.Tags) > 0 {
		tags, created, err := r.tags.stageMissing(ctx, req.Tags)
		if err != nil {
			return nil, r.fail(apperr.CreateFailed("task", err))
		}
		task.Tags = tags
		newTags = created
	}

	if req.ReminderEnabled {
		sched := reminder.Resolve(task.DueDate, req.ReminderType, req.ReminderTime, now)
		task.ReminderEnabled = true
		task.ReminderType = sched.Type
		task.ReminderTime = sched.Time
		task.ReminderOffsetMinutes = sched.OffsetMinutes
	} else {
		task.ReminderType = models.ReminderExact
	}

	ctx.Insert(&task)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.CreateFailed("task", err))
	}

	for _, tag := range newTags {
		r.publish(events.Change{Entity: "tag", ID: tag.ID, Op: events.OpCreate})
	}
	r.publish(events.Change{
		Entity:           "task",
		ID:               task.ID,
		Op:               events.OpCreate,
		ReminderRelevant: task.ReminderEnabled,
		ReminderConfig:   task.ReminderEnabled,
	})
	return &task, nil
}

// TaskPatch describes the fields an update supplies. Nil pointer fields are
// left untouched; the Clear flags null an optional field out.
type TaskPatch struct {
	Title    *string
	Notes    *string
	Priority *int

	DueDate      *time.Time
	ClearDueDate bool

	ProjectID    *string
	ClearProject bool

	AreaID    *string
	ClearArea bool

	ReminderEnabled *bool
	ReminderType    *models.ReminderType
	ReminderTime    *time.Time
}

func (p TaskPatch) touchesReminder() bool {
	return p.ReminderEnabled != nil || p.ReminderType != nil || p.ReminderTime != nil
}

func (p TaskPatch) touchesDue() bool {
	return p.DueDate != nil || p.ClearDueDate
}

// Update re-validates only the supplied fields, applies them, bumps
// UpdatedAt, and commits. Reminder fields are re-resolved whenever the due
// date or the reminder configuration changes.
func (r *Tasks) Update(id string, patch TaskPatch) (*models.Task, error) {
	task, err := r.Get(id)
	if err != nil {
		return nil, r.fail(apperr.UpdateFailed("task", err))
	}

	if patch.Title != nil {
		title, err := validate.TaskTitle(*patch.Title)
		if err != nil {
			return nil, r.fail(apperr.UpdateFailed("task", err))
		}
		task.Title = title
	}
	if patch.Notes != nil {
		notes, err := validate.TaskNotes(*patch.Notes)
		if err != nil {
			return nil, r.fail(apperr.UpdateFailed("task", err))
		}
		task.Notes = notes
	}
	if patch.Priority != nil {
		if err := validate.Priority(*patch.Priority); err != nil {
			return nil, r.fail(apperr.UpdateFailed("task", err))
		}
		task.Priority = *patch.Priority
	}

	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		if err := validate.DueDate(patch.DueDate); err != nil {
			return nil, r.fail(apperr.UpdateFailed("task", err))
		}
		task.DueDate = patch.DueDate
	}

	if patch.ClearProject {
		task.ProjectID = nil
	} else if patch.ProjectID != nil {
		if _, err := r.projectByID(*patch.ProjectID); err != nil {
			return nil, r.fail(apperr.UpdateFailed("task", err))
		}
		task.ProjectID = patch.ProjectID
	}

	if patch.ClearArea {
		task.AreaID = nil
	} else if patch.AreaID != nil {
		if _, err := r.areaByID(*patch.AreaID); err != nil {
			return nil, r.fail(apperr.UpdateFailed("task", err))
		}
		task.AreaID = patch.AreaID
	}

	now := r.now()

	if patch.ReminderEnabled != nil {
		task.ReminderEnabled = *patch.ReminderEnabled
	}
	if patch.ReminderType != nil {
		task.ReminderType = *patch.ReminderType
	}
	if patch.ReminderTime != nil {
		task.ReminderTime = patch.ReminderTime
	}
	if task.ReminderEnabled && (patch.touchesReminder() || patch.touchesDue()) {
		sched := reminder.Resolve(task.DueDate, task.ReminderType, task.ReminderTime, now)
		task.ReminderType = sched.Type
		task.ReminderTime = sched.Time
		task.ReminderOffsetMinutes = sched.OffsetMinutes
	}
	if patch.ReminderEnabled != nil && !*patch.ReminderEnabled {
		sched := reminder.Disabled(task.ReminderType)
		task.ReminderTime = sched.Time
		task.ReminderOffsetMinutes = sched.OffsetMinutes
	}

	task.UpdatedAt = now

	ctx := r.primary()
	ctx.Save(task)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.UpdateFailed("task", err))
	}

	r.publish(events.Change{
		Entity:           "task",
		ID:               task.ID,
		Op:               events.OpUpdate,
		ReminderRelevant: patch.touchesReminder() || patch.touchesDue(),
		ReminderConfig:   patch.touchesReminder(),
	})
	return task, nil
}

// MarkCompleted sets Completed and CompletedAt together. Completing an
// already completed task is a no-op.
func (r *Tasks) MarkCompleted(id string) (*models.Task, error) {
	return r.setCompleted(id, true)
}

// MarkIncomplete clears Completed and CompletedAt together.
func (r *Tasks) MarkIncomplete(id string) (*models.Task, error) {
	return r.setCompleted(id, false)
}

func (r *Tasks) setCompleted(id string, done bool) (*models.Task, error) {
	task, err := r.Get(id)
	if err != nil {
		return nil, r.fail(apperr.UpdateFailed("task", err))
	}
	if task.Completed == done {
		return task, nil
	}

	now := r.now()
	task.Completed = done
	if done {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.UpdatedAt = now

	ctx := r.primary()
	ctx.Save(task)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.UpdateFailed("task", err))
	}

	r.publish(events.Change{Entity: "task", ID: task.ID, Op: events.OpUpdate, ReminderRelevant: true})
	return task, nil
}

// SoftDelete flips the deleted flag. The record stays in storage and can be
// restored; every smart list excludes it immediately.
func (r *Tasks) SoftDelete(id string) (*models.Task, error) {
	return r.setDeleted(id, true)
}

// Restore reinstates a soft-deleted task with its field values intact.
func (r *Tasks) Restore(id string) (*models.Task, error) {
	return r.setDeleted(id, false)
}

func (r *Tasks) setDeleted(id string, deleted bool) (*models.Task, error) {
	task, err := r.Get(id)
	if err != nil {
		return nil, r.fail(apperr.DeleteFailed("task", err))
	}
	if task.Deleted == deleted {
		return task, nil
	}

	task.Deleted = deleted
	task.UpdatedAt = r.now()

	ctx := r.primary()
	ctx.Save(task)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.DeleteFailed("task", err))
	}

	op := events.OpDelete
	if !deleted {
		op = events.OpRestore
	}
	r.publish(events.Change{Entity: "task", ID: task.ID, Op: op, ReminderRelevant: true})
	return task, nil
}

// EnableReminder turns a task's reminder on with the given type, resolving
// the fire time against the task's due date.
func (r *Tasks) EnableReminder(id string, typ models.ReminderType, explicit *time.Time) (*models.Task, error) {
	enabled := true
	return r.Update(id, TaskPatch{ReminderEnabled: &enabled, ReminderType: &typ, ReminderTime: explicit})
}

// DisableReminder turns a task's reminder off, clearing the fire time and
// offset.
func (r *Tasks) DisableReminder(id string) (*models.Task, error) {
	enabled := false
	return r.Update(id, TaskPatch{ReminderEnabled: &enabled})
}

// Get fetches a task by id, soft-deleted ones included.
func (r *Tasks) Get(id string) (*models.Task, error) {
	var task models.Task
	err := r.primary().First(&task, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Tags").Where("id = ?", id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("task", id)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Active returns every non-deleted task, ordered by sort order with
// creation time as the tie-break.
func (r *Tasks) Active() ([]models.Task, error) {
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ?", false).
			Order("sort_order ASC, created_at ASC")
	})
}

// Today returns the incomplete tasks due today.
func (r *Tasks) Today() ([]models.Task, error) {
	now := r.now()
	start := startOfDay(now)
	end := start.AddDate(0, 0, 1)
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ? AND completed = ?", false, false).
			Where("due_date >= ? AND due_date < ?", start, end).
			Order("due_date ASC, sort_order ASC")
	})
}

// Upcoming returns the incomplete tasks due within the next days days,
// excluding anything already due now or earlier.
func (r *Tasks) Upcoming(days int) ([]models.Task, error) {
	now := r.now()
	end := now.AddDate(0, 0, days)
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ? AND completed = ?", false, false).
			Where("due_date > ? AND due_date <= ?", now, end).
			Order("due_date ASC, sort_order ASC")
	})
}

// Inbox returns the incomplete tasks filed under neither a project nor an
// area.
func (r *Tasks) Inbox() ([]models.Task, error) {
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ? AND completed = ?", false, false).
			Where("project_id IS NULL AND area_id IS NULL").
			Order("sort_order ASC, created_at ASC")
	})
}

// Completed returns completed, non-deleted tasks, most recently completed
// first.
func (r *Tasks) Completed() ([]models.Task, error) {
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ? AND completed = ?", false, true).
			Order("completed_at DESC")
	})
}

// ByProject returns a project's active (incomplete, non-deleted) tasks.
func (r *Tasks) ByProject(projectID string) ([]models.Task, error) {
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ? AND completed = ?", false, false).
			Where("project_id = ?", projectID).
			Order("sort_order ASC, created_at ASC")
	})
}

// ByArea returns an area's active tasks.
func (r *Tasks) ByArea(areaID string) ([]models.Task, error) {
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ? AND completed = ?", false, false).
			Where("area_id = ?", areaID).
			Order("sort_order ASC, created_at ASC")
	})
}

// WithReminders returns the notification target set: tasks with an enabled
// reminder and a resolved fire time that are neither completed nor deleted.
func (r *Tasks) WithReminders() ([]models.Task, error) {
	return r.list(func(q *gorm.DB) *gorm.DB {
		return q.Where("reminder_enabled = ? AND completed = ? AND deleted = ?", true, false, false).
			Where("reminder_time IS NOT NULL").
			Order("reminder_time ASC")
	})
}

func (r *Tasks) list(scope store.Scope) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.primary().Find(&tasks, func(q *gorm.DB) *gorm.DB {
		return scope(q.Preload("Tags"))
	}); err != nil {
		return nil, err
	}
	return tasks, nil
}

// nextSortOrder returns max+1 over non-deleted tasks, starting at 1 for an
// empty store. Ordering queries fall back to created_at on equal sort
// orders, so a rare duplicate stays harmless.
func (r *Tasks) nextSortOrder() (int64, error) {
	var top models.Task
	err := r.primary().First(&top, func(q *gorm.DB) *gorm.DB {
		return q.Where("deleted = ?", false).Order("sort_order DESC, created_at DESC")
	})
	if errors.Is(err, store.ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return top.SortOrder + 1, nil
}

func (r *Tasks) projectByID(id string) (*models.Project, error) {
	var p models.Project
	err := r.primary().First(&p, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("project", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Tasks) areaByID(id string) (*models.Area, error) {
	var a models.Area
	err := r.primary().First(&a, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("area", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
