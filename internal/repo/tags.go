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

// Tags is the repository for tag records.
type Tags struct {
	*deps
}

// Create validates and commits a new tag.
func (r *Tags) Create(name, color string) (*models.Tag, error) {
	normalized, err := validate.TagName(name)
	if err != nil {
		return nil, r.fail(apperr.CreateFailed("tag", err))
	}

	tag := models.Tag{
		ID:        uuid.NewString(),
		CreatedAt: r.now(),
		Name:      normalized,
		Color:     color,
	}

	ctx := r.primary()
	ctx.Insert(&tag)
	if err := ctx.Commit(); err != nil {
		return nil, r.fail(apperr.CreateFailed("tag", err))
	}

	r.publish(events.Change{Entity: "tag", ID: tag.ID, Op: events.OpCreate})
	return &tag, nil
}

// FindOrCreate resolves tag names to records, creating any that do not
// exist yet in a single commit. Names failing validation fail the whole
// call.
func (r *Tags) FindOrCreate(names []string) ([]models.Tag, error) {
	ctx := r.primary()
	tags, created, err := r.stageMissing(ctx, names)
	if err != nil {
		return nil, r.fail(apperr.CreateFailed("tag", err))
	}
	if len(created) > 0 {
		if err := ctx.Commit(); err != nil {
			return nil, r.fail(apperr.CreateFailed("tag", err))
		}
	}
	for _, tag := range created {
		r.publish(events.Change{Entity: "tag", ID: tag.ID, Op: events.OpCreate})
	}
	return tags, nil
}

// stageMissing resolves names to tag records, staging an insert on ctx for
// each one that does not exist yet. Staged tags become durable with the
// context's next commit, so callers can fold them into a larger unit of
// work. Validation and lookups both run before anything is staged.
func (r *Tags) stageMissing(ctx *store.Context, names []string) (tags, created []models.Tag, err error) {
	seen := make(map[string]bool, len(names))
	var ordered []string
	for _, name := range names {
		normalized, verr := validate.TagName(name)
		if verr != nil {
			return nil, nil, verr
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		ordered = append(ordered, normalized)
	}

	found := make(map[string]models.Tag, len(ordered))
	for _, name := range ordered {
		var tag models.Tag
		ferr := ctx.First(&tag, func(q *gorm.DB) *gorm.DB {
			return q.Where("name = ?", name)
		})
		if ferr == nil {
			found[name] = tag
			continue
		}
		if !errors.Is(ferr, store.ErrNotFound) {
			return nil, nil, ferr
		}
	}

	now := r.now()
	for _, name := range ordered {
		if tag, ok := found[name]; ok {
			tags = append(tags, tag)
			continue
		}
		tag := models.Tag{ID: uuid.NewString(), CreatedAt: now, Name: name}
		created = append(created, tag)
		tags = append(tags, tag)
	}
	for i := range created {
		ctx.Insert(&created[i])
	}
	return tags, created, nil
}

// Get fetches a tag by id.
func (r *Tags) Get(id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.primary().First(&tag, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("tag", id)
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// List returns all tags sorted by name.
func (r *Tags) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.primary().Find(&tags, func(q *gorm.DB) *gorm.DB {
		return q.Order("name ASC")
	}); err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete hard-deletes a tag and its task associations.
func (r *Tags) Delete(id string) error {
	tag, err := r.Get(id)
	if err != nil {
		return r.fail(apperr.DeleteFailed("tag", err))
	}

	var joins []models.TaskTag
	if err := r.primary().Find(&joins, func(q *gorm.DB) *gorm.DB {
		return q.Where("tag_id = ?", id)
	}); err != nil {
		return r.fail(apperr.DeleteFailed("tag", err))
	}

	ctx := r.primary()
	for i := range joins {
		ctx.Delete(&joins[i])
	}
	ctx.Delete(tag)
	if err := ctx.Commit(); err != nil {
		return r.fail(apperr.DeleteFailed("tag", err))
	}

	r.publish(events.Change{Entity: "tag", ID: tag.ID, Op: events.OpDelete})
	return nil
}
