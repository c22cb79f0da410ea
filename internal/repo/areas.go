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

// Areas is the repository for area records.
type Areas struct {
	*deps
}

// CreateAreaRequest holds the data needed to create a new area
type CreateAreaRequest struct {
	Name  string
	Notes string
	Icon  string
	Color string
}

// Create validates and commits a new area.
func (r *Areas) Create(req CreateAreaRequest) (*models.Area, error) {
	name, err := validate.AreaName(req.Name)
	if err != nil {
		return nil, r.fail(apperr.CreateFailed("area", err))
	}

	area := models.Area{
		ID:        uuid.NewString(),
		CreatedAt: r.now(),
		Name:      name,
		Notes:     req.Notes,
		Icon:      req.Icon,
		Color:     req.Color,
	}

	ctx := r.primary()
	ctx.Insert(&area)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.CreateFailed("area", err))
	}

	r.publish(events.Change{Entity: "area", ID: area.ID, Op: events.OpCreate})
	return &area, nil
}

// AreaPatch describes the fields an area update supplies.
type AreaPatch struct {
	Name  *string
	Notes *string
	Icon  *string
	Color *string
}

// Update re-validates only the supplied fields and commits.
func (r *Areas) Update(id string, patch AreaPatch) (*models.Area, error) {
	area, err := r.Get(id)
	if err != nil {
		return nil, r.fail(apperr.UpdateFailed("area", err))
	}

	if patch.Name != nil {
		name, err := validate.AreaName(*patch.Name)
		if err != nil {
			return nil, r.fail(apperr.UpdateFailed("area", err))
		}
		area.Name = name
	}
	if patch.Notes != nil {
		area.Notes = *patch.Notes
	}
	if patch.Icon != nil {
		area.Icon = *patch.Icon
	}
	if patch.Color != nil {
		area.Color = *patch.Color
	}

	ctx := r.primary()
	ctx.Save(area)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.UpdateFailed("area", err))
	}

	r.publish(events.Change{Entity: "area", ID: area.ID, Op: events.OpUpdate})
	return area, nil
}

// Delete hard-deletes an area, detaching its tasks and projects in the same
// commit. Neither tasks nor projects are deleted.
func (r *Areas) Delete(id string) error {
	area, err := r.Get(id)
	if err != nil {
		return r.fail(apperr.DeleteFailed("area", err))
	}

	var tasks []models.Task
	if err := r.primary().Find(&tasks, func(q *gorm.DB) *gorm.DB {
		return q.Where("area_id = ?", id)
	}); err != nil {
		return r.fail(apperr.DeleteFailed("area", err))
	}
	var projects []models.Project
	if err := r.primary().Find(&projects, func(q *gorm.DB) *gorm.DB {
		return q.Where("area_id = ?", id)
	}); err != nil {
		return r.fail(apperr.DeleteFailed("area", err))
	}

	now := r.now()
	ctx := r.primary()
	for i := range tasks {
		tasks[i].AreaID = nil
		tasks[i].UpdatedAt = now
		ctx.Save(&tasks[i])
	}
	for i := range projects {
		projects[i].AreaID = nil
		projects[i].UpdatedAt = now
		ctx.Save(&projects[i])
	}
	ctx.Delete(area)
	if err := ctx.Commit(); err != nil {
		return r.fail(apperr.DeleteFailed("area", err))
	}

	r.publish(events.Change{Entity: "area", ID: area.ID, Op: events.OpDelete})
	return nil
}

// Get fetches an area by id.
func (r *Areas) Get(id string) (*models.Area, error) {
	var area models.Area
	err := r.primary().First(&area, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("area", id)
	}
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// List returns all areas, oldest first.
func (r *Areas) List() ([]models.Area, error) {
	var areas []models.Area
	if err := r.primary().Find(&areas, func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at ASC")
	}); err != nil {
		return nil, err
	}
	return areas, nil
}
