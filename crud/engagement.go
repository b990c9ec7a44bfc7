package crud

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fritter/domain"
	"fritter/errs"
)

// userFinder looks up users by their handle. It returns an ENOTFOUND error if no user has it.
type userFinder interface {
	ByUsername(ctx context.Context, username string) (*domain.User, error)
}

// engagementValidator runs the guard chains of deleting engagements and the lookups that depend
// on other services. On success, it passes the data on to engagementGorm. Likes and Comments
// share it, each instantiated with its own record type.
type engagementValidator[T domain.Engagement] struct {
	engagementGorm[T]
	resolver *Resolver
	users    userFinder
}

// engagementGorm runs CRUD operations on the likes or the comments table. It assumes that data
// has been validated by the guards. Records it returns always have their User preloaded.
type engagementGorm[T domain.Engagement] struct {
	db   *gorm.DB
	noun string
}

// Delete runs the guards needed for deleting an engagement, then deletes it.
func (ev *engagementValidator[T]) Delete(ctx context.Context, id string) error {
	m := &mutation{ctx: ctx, recordID: id}
	err := runGuards(m,
		callerAuthenticated,
		ev.recordExists,
		callerOwns(ev.noun))
	if err != nil {
		return err
	}
	deleted, err := ev.DeleteOne(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ev.notFound(id)
	}
	engagementMutations.WithLabelValues(ev.noun, "delete").Inc()
	return nil
}

// FindAllByUser retrieves all engagements of the user with the given handle.
func (ev *engagementValidator[T]) FindAllByUser(ctx context.Context, username string) ([]T, error) {
	user, err := ev.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return ev.FindAllByUserID(ctx, user.ID)
}

// targetResolves makes sure that the target ID of the mutation names an existing Freet or Comment,
// and stores the resolved Target on the mutation.
func (ev *engagementValidator[T]) targetResolves(m *mutation) error {
	target, err := ev.resolver.Resolve(m.ctx, m.targetID)
	if err != nil {
		return err
	}
	m.target = target
	return nil
}

// recordExists makes sure that the engagement to be modified exists, and stores its owner
// on the mutation.
func (ev *engagementValidator[T]) recordExists(m *mutation) error {
	rec, err := ev.FindOne(m.ctx, m.recordID)
	if err != nil {
		return err
	}
	m.ownerID = (*rec).OwnerID()
	return nil
}

// AddOne validates the shape of a new record, stores it, and reloads it together with its user.
// The target of the record must have been resolved by the caller.
func (eg *engagementGorm[T]) AddOne(ctx context.Context, rec *T) error {
	if err := validateStruct(rec); err != nil {
		return err
	}
	db := eg.db.WithContext(ctx)
	if err := db.Create(rec).Error; err != nil {
		return fmt.Errorf("creating %s: %w", eg.noun, err)
	}
	if err := db.Preload("User").First(rec, "id = ?", (*rec).EngagementID()).Error; err != nil {
		return fmt.Errorf("reloading %s: %w", eg.noun, err)
	}
	return nil
}

// FindOne retrieves a single record by ID. Malformed IDs are reported like absent ones,
// with ERECORDNOTFOUND.
func (eg *engagementGorm[T]) FindOne(ctx context.Context, id string) (*T, error) {
	if !domain.ValidID(id) {
		return nil, eg.notFound(id)
	}
	var rec T
	err := eg.db.WithContext(ctx).Preload("User").First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eg.notFound(id)
		}
		return nil, fmt.Errorf("finding %s: %w", eg.noun, err)
	}
	return &rec, nil
}

// FindAll retrieves every record, most recently created first.
func (eg *engagementGorm[T]) FindAll(ctx context.Context) ([]T, error) {
	return eg.find(ctx, eg.db.Order("created_at desc, id desc"))
}

// FindAllByTarget retrieves the records attached to the given target, in the order they were created.
func (eg *engagementGorm[T]) FindAllByTarget(ctx context.Context, target domain.Target) ([]T, error) {
	return eg.find(ctx, eg.db.
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Order("created_at asc, id asc"))
}

// FindAllByUserID retrieves the records of the given user, in the order they were created.
func (eg *engagementGorm[T]) FindAllByUserID(ctx context.Context, userID string) ([]T, error) {
	return eg.find(ctx, eg.db.
		Where("user_id = ?", userID).
		Order("created_at asc, id asc"))
}

// DeleteOne permanently deletes the record with the given ID. It reports whether a record
// was deleted; deleting an absent record is not an error.
func (eg *engagementGorm[T]) DeleteOne(ctx context.Context, id string) (bool, error) {
	if !domain.ValidID(id) {
		return false, nil
	}
	res := eg.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("deleting %s: %w", eg.noun, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (eg *engagementGorm[T]) find(ctx context.Context, query *gorm.DB) ([]T, error) {
	recs := []T{}
	err := query.WithContext(ctx).Preload("User").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("finding %ss: %w", eg.noun, err)
	}
	return recs, nil
}

func (eg *engagementGorm[T]) notFound(id string) error {
	return errs.Errorf(errs.ERECORDNOTFOUND, "The %s with ID %s does not exist.", eg.noun, id)
}
