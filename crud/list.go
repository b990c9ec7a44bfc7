package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fritter/domain"
	"fritter/errs"
)

// MaxListNameLength is the maximum number of characters of a List name.
const MaxListNameLength = 50

// ListService manages Lists, their freets and their subscribers.
// It implements the domain.ListService interface.
type ListService struct {
	listValidator
}

// listValidator runs the guards of modifying Lists.
// On success, it passes the data on to listGorm.
type listValidator struct {
	listGorm
	freets freetFinder
	users  userFinder
}

// listGorm runs CRUD operations on the lists table and its join tables.
type listGorm struct {
	db *gorm.DB
}

// NewListService returns an instance of ListService.
func NewListService(db *gorm.DB, freets freetFinder, users userFinder) *ListService {
	return &ListService{
		listValidator{
			listGorm: listGorm{
				db: db,
			},
			freets: freets,
			users:  users,
		},
	}
}

// Ensure the ListService struct properly implements the domain.ListService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ListService = &ListService{}

// Create creates a new, empty List owned by the logged in user.
func (lv *listValidator) Create(ctx context.Context, name string) (*domain.List, error) {
	m := &mutation{ctx: ctx, content: strings.TrimSpace(name)}
	err := runGuards(m,
		callerAuthenticated,
		nameNotEmpty,
		nameMaxLength)
	if err != nil {
		return nil, err
	}
	list := &domain.List{
		CreatorID: m.caller.ID,
		Name:      m.content,
	}
	if err := lv.listGorm.Create(ctx, list); err != nil {
		return nil, err
	}
	return lv.ByID(ctx, list.ID)
}

// AddFreet adds an existing Freet to a List. Only the creator of the List may add to it.
// Adding a Freet that is already on the List changes nothing.
func (lv *listValidator) AddFreet(ctx context.Context, listID, freetID string) (*domain.List, error) {
	m := &mutation{ctx: ctx, recordID: listID, targetID: freetID}
	var freet *domain.Freet
	err := runGuards(m,
		callerAuthenticated,
		lv.listExists,
		callerOwns("list"),
		func(m *mutation) (err error) {
			freet, err = lv.freets.ByID(m.ctx, m.targetID)
			return err
		})
	if err != nil {
		return nil, err
	}
	if err := lv.association(ctx, listID, "Freets").Append(freet); err != nil {
		return nil, fmt.Errorf("adding freet to list: %w", err)
	}
	return lv.ByID(ctx, listID)
}

// RemoveFreet takes a Freet off a List. Only the creator of the List may remove from it.
// The Freet does not need to exist anymore.
func (lv *listValidator) RemoveFreet(ctx context.Context, listID, freetID string) (*domain.List, error) {
	m := &mutation{ctx: ctx, recordID: listID}
	err := runGuards(m,
		callerAuthenticated,
		lv.listExists,
		callerOwns("list"))
	if err != nil {
		return nil, err
	}
	if err := lv.association(ctx, listID, "Freets").Delete(&domain.Freet{ID: freetID}); err != nil {
		return nil, fmt.Errorf("removing freet from list: %w", err)
	}
	return lv.ByID(ctx, listID)
}

// Subscribe makes the logged in user a subscriber of a List.
func (lv *listValidator) Subscribe(ctx context.Context, listID string) (*domain.List, error) {
	m := &mutation{ctx: ctx, recordID: listID}
	if err := runGuards(m, callerAuthenticated, lv.listExists); err != nil {
		return nil, err
	}
	if err := lv.association(ctx, listID, "Subscribers").Append(m.caller); err != nil {
		return nil, fmt.Errorf("subscribing to list: %w", err)
	}
	return lv.ByID(ctx, listID)
}

// Unsubscribe removes the logged in user from the subscribers of a List.
func (lv *listValidator) Unsubscribe(ctx context.Context, listID string) (*domain.List, error) {
	m := &mutation{ctx: ctx, recordID: listID}
	if err := runGuards(m, callerAuthenticated, lv.listExists); err != nil {
		return nil, err
	}
	if err := lv.association(ctx, listID, "Subscribers").Delete(&domain.User{ID: m.caller.ID}); err != nil {
		return nil, fmt.Errorf("unsubscribing from list: %w", err)
	}
	return lv.ByID(ctx, listID)
}

// Delete deletes a List along with its subscriptions. The freets on it are kept.
func (lv *listValidator) Delete(ctx context.Context, id string) error {
	m := &mutation{ctx: ctx, recordID: id}
	err := runGuards(m,
		callerAuthenticated,
		lv.listExists,
		callerOwns("list"))
	if err != nil {
		return err
	}
	return lv.listGorm.Delete(ctx, id)
}

// ByCreator retrieves the Lists created by the user with the given handle.
func (lv *listValidator) ByCreator(ctx context.Context, username string) ([]domain.List, error) {
	user, err := lv.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return lv.find(lv.db.WithContext(ctx).Where("creator_id = ?", user.ID))
}

// BySubscriber retrieves the Lists the user with the given handle is subscribed to.
func (lv *listValidator) BySubscriber(ctx context.Context, username string) ([]domain.List, error) {
	user, err := lv.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return lv.find(lv.db.WithContext(ctx).
		Joins("JOIN list_subscribers ON list_subscribers.list_id = lists.id").
		Where("list_subscribers.user_id = ?", user.ID))
}

// listExists makes sure that the List to be modified exists, and stores its creator on the mutation.
func (lv *listValidator) listExists(m *mutation) error {
	list, err := lv.ByID(m.ctx, m.recordID)
	if err != nil {
		return err
	}
	m.ownerID = list.CreatorID
	return nil
}

// nameNotEmpty makes sure that the List name has at least one non-whitespace character.
func nameNotEmpty(m *mutation) error {
	if m.content == "" {
		return errs.Errorf(errs.EINVALID, "A list name is required.")
	}
	return nil
}

// nameMaxLength makes sure that the List name is not too long.
func nameMaxLength(m *mutation) error {
	if utf8.RuneCountInString(m.content) > MaxListNameLength {
		return errs.Errorf(errs.EINVALID, "The list name must be no more than %d characters.", MaxListNameLength)
	}
	return nil
}

// ByID retrieves a single List with its creator, freets and subscribers.
func (lg *listGorm) ByID(ctx context.Context, id string) (*domain.List, error) {
	notFound := errs.Errorf(errs.ERECORDNOTFOUND, "List with ID %s does not exist.", id)
	if !domain.ValidID(id) {
		return nil, notFound
	}
	var list domain.List
	err := lg.preload(lg.db.WithContext(ctx)).First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("finding list: %w", err)
	}
	return &list, nil
}

// Create stores a new List.
func (lg *listGorm) Create(ctx context.Context, list *domain.List) error {
	if err := validateStruct(list); err != nil {
		return err
	}
	if err := lg.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("creating list: %w", err)
	}
	return nil
}

// Delete permanently deletes a List and the rows of its join tables.
func (lg *listGorm) Delete(ctx context.Context, id string) error {
	err := lg.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.List{ID: id}).Error
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	return nil
}

func (lg *listGorm) association(ctx context.Context, listID, name string) *gorm.Association {
	return lg.db.WithContext(ctx).Model(&domain.List{ID: listID}).Association(name)
}

func (lg *listGorm) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Creator").
		Preload("Freets", func(db *gorm.DB) *gorm.DB {
			return db.Order("freets.created_at desc")
		}).
		Preload("Freets.Author").
		Preload("Subscribers")
}

func (lg *listGorm) find(db *gorm.DB) ([]domain.List, error) {
	lists := []domain.List{}
	err := lg.preload(db).Order("lists.created_at desc").Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("finding lists: %w", err)
	}
	return lists, nil
}
