package crud

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fritter/domain"
	"fritter/errs"
)

// FreetService manages Freets.
// It implements the domain.FreetService interface.
type FreetService struct {
	freetValidator
}

// freetValidator runs validations on incoming Freet data.
// On success, it passes the data on to freetGorm.
// Otherwise, it returns the error of the validation that has failed.
type freetValidator struct {
	freetGorm
	users userFinder
}

// freetGorm runs CRUD operations on the database using incoming Freet data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type freetGorm struct {
	db *gorm.DB
}

// NewFreetService returns an instance of FreetService.
func NewFreetService(db *gorm.DB, users userFinder) *FreetService {
	return &FreetService{
		freetValidator{
			freetGorm: freetGorm{
				db: db,
			},
			users: users,
		},
	}
}

// Ensure the FreetService struct properly implements the domain.FreetService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FreetService = &FreetService{}

// Create runs validations needed for creating new Freet database records.
// The logged in user becomes the author of the Freet.
func (fv *freetValidator) Create(ctx context.Context, freet *domain.Freet) error {
	m := &mutation{ctx: ctx, content: freet.Content}
	err := runGuards(m,
		callerAuthenticated,
		contentNotEmpty,
		contentMaxLength(domain.MaxContentLength))
	if err != nil {
		return err
	}
	freet.AuthorID = m.caller.ID
	return fv.freetGorm.Create(ctx, freet)
}

// Delete runs validations needed for deleting a Freet. The Likes and Comments attached
// to it are left in place.
func (fv *freetValidator) Delete(ctx context.Context, id string) error {
	m := &mutation{ctx: ctx, recordID: id}
	err := runGuards(m,
		callerAuthenticated,
		fv.freetExists,
		callerOwns("freet"))
	if err != nil {
		return err
	}
	return fv.freetGorm.Delete(ctx, id)
}

// ByAuthor retrieves all freets of the user with the given handle, most recent first.
func (fv *freetValidator) ByAuthor(ctx context.Context, username string) ([]domain.Freet, error) {
	user, err := fv.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return fv.freetGorm.ByAuthorID(ctx, user.ID)
}

// freetExists makes sure that the Freet to be modified exists, and stores its author on the mutation.
func (fv *freetValidator) freetExists(m *mutation) error {
	freet, err := fv.ByID(m.ctx, m.recordID)
	if err != nil {
		return err
	}
	m.ownerID = freet.AuthorID
	return nil
}

// ByID retrieves a single Freet by ID, along with its author.
// If the record doesn't exist, it returns errs.ENOTFOUND.
func (fg *freetGorm) ByID(ctx context.Context, id string) (*domain.Freet, error) {
	notFound := errs.Errorf(errs.ENOTFOUND, "Freet with ID %s does not exist.", id)
	if !domain.ValidID(id) {
		return nil, notFound
	}
	var freet domain.Freet
	err := fg.db.WithContext(ctx).Preload("Author").First(&freet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("finding freet: %w", err)
	}
	return &freet, nil
}

// All retrieves every Freet, most recent first.
func (fg *freetGorm) All(ctx context.Context) ([]domain.Freet, error) {
	return fg.find(fg.db.WithContext(ctx))
}

// ByAuthorID retrieves all freets of a user, most recent first.
func (fg *freetGorm) ByAuthorID(ctx context.Context, authorID string) ([]domain.Freet, error) {
	return fg.find(fg.db.WithContext(ctx).Where("author_id = ?", authorID))
}

// Create stores the data from the Freet object in a new database record.
func (fg *freetGorm) Create(ctx context.Context, freet *domain.Freet) error {
	if err := validateStruct(freet); err != nil {
		return err
	}
	db := fg.db.WithContext(ctx)
	if err := db.Create(freet).Error; err != nil {
		return fmt.Errorf("creating freet: %w", err)
	}
	if err := db.Preload("Author").First(freet, "id = ?", freet.ID).Error; err != nil {
		return fmt.Errorf("reloading freet: %w", err)
	}
	return nil
}

// Delete permanently deletes a Freet record from the database and takes it out of every List.
func (fg *freetGorm) Delete(ctx context.Context, id string) error {
	err := fg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM list_freets WHERE freet_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Freet{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("deleting freet: %w", err)
	}
	return nil
}

func (fg *freetGorm) find(db *gorm.DB) ([]domain.Freet, error) {
	freets := []domain.Freet{}
	err := db.Preload("Author").Order("created_at desc, id desc").Find(&freets).Error
	if err != nil {
		return nil, fmt.Errorf("finding freets: %w", err)
	}
	return freets, nil
}
