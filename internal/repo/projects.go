package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/store"
	"github.com/balkashynov/tickle/internal/validate"
)

// Projects is the repository for project records.
type Projects struct {
	*deps
}

// CreateProjectRequest holds the data needed to create a new project
type CreateProjectRequest struct {
	Name   string
	Notes  string
	Color  string
	Icon   string
	AreaID *string
}

// Create validates and commits a new project.
func (r *Projects) Create(req CreateProjectRequest) (*models.Project, error) {
	name, err := validate.ProjectName(req.Name)
	if err != nil {
		return nil, r.fail(apperr.CreateFailed("project", err))
	}

	if req.AreaID != nil {
		if err := r.areaExists(*req.AreaID); err != nil {
			return nil, r.fail(apperr.CreateFailed("project", err))
		}
	}

	now := r.now()
	project := models.Project{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Notes:     req.Notes,
		Color:     req.Color,
		Icon:      req.Icon,
		AreaID:    req.AreaID,
	}

	ctx := r.primary()
	ctx.Insert(&project)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.CreateFailed("project", err))
	}

	r.publish(events.Change{Entity: "project", ID: project.ID, Op: events.OpCreate})
	return &project, nil
}

// ProjectPatch describes the fields a project update supplies.
type ProjectPatch struct {
	Name      *string
	Notes     *string
	Color     *string
	Icon      *string
	Completed *bool

	AreaID    *string
	ClearArea bool
}

// Update re-validates only the supplied fields, bumps UpdatedAt, and
// commits.
func (r *Projects) Update(id string, patch ProjectPatch) (*models.Project, error) {
	project, err := r.Get(id)
	if err != nil {
		return nil, r.fail(apperr.UpdateFailed("project", err))
	}

	if patch.Name != nil {
		name, err := validate.ProjectName(*patch.Name)
		if err != nil {
			return nil, r.fail(apperr.UpdateFailed("project", err))
		}
		project.Name = name
	}
	if patch.Notes != nil {
		project.Notes = *patch.Notes
	}
	if patch.Color != nil {
		project.Color = *patch.Color
	}
	if patch.Icon != nil {
		project.Icon = *patch.Icon
	}
	if patch.Completed != nil {
		project.Completed = *patch.Completed
	}
	if patch.ClearArea {
		project.AreaID = nil
	} else if patch.AreaID != nil {
		if err := r.areaExists(*patch.AreaID); err != nil {
			return nil, r.fail(apperr.UpdateFailed("project", err))
		}
		project.AreaID = patch.AreaID
	}

	project.UpdatedAt = r.now()

	ctx := r.primary()
	ctx.Save(project)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.UpdateFailed("project", err))
	}

	r.publish(events.Change{Entity: "project", ID: project.ID, Op: events.OpUpdate})
	return project, nil
}

// Delete hard-deletes a project and detaches its tasks in the same commit.
// The tasks themselves survive and return to the inbox.
func (r *Projects) Delete(id string) error {
	project, err := r.Get(id)
	if err != nil {
		return r.fail(apperr.DeleteFailed("project", err))
	}

	var tasks []models.Task
	if err := r.primary().Find(&tasks, func(q *gorm.DB) *gorm.DB {
		return q.Where("project_id = ?", id)
	}); err != nil {
		return r.fail(apperr.DeleteFailed("project", err))
	}

	now := r.now()
	ctx := r.primary()
	for i := range tasks {
		tasks[i].ProjectID = nil
		tasks[i].UpdatedAt = now
		ctx.Save(&tasks[i])
	}
	ctx.Delete(project)
	if err := ctx.Commit(); err != nil {
		return r.fail(apperr.DeleteFailed("project", err))
	}

	r.publish(events.Change{Entity: "project", ID: project.ID, Op: events.OpDelete})
	return nil
}

// Get fetches a project by id.
func (r *Projects) Get(id string) (*models.Project, error) {
	var project models.Project
	err := r.primary().First(&project, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("project", id)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects, newest first.
func (r *Projects) List() ([]models.Project, error) {
	var projects []models.Project
	if err := r.primary().Find(&projects, func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at DESC")
	}); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *Projects) areaExists(id string) error {
	var a models.Area
	err := r.primary().First(&a, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("area", id)
	}
	return err
}
