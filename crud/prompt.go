package crud

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fritter/domain"
	"fritter/errs"
)

// PromptService manages responses to the writing prompt.
// It implements the domain.PromptService interface.
type PromptService struct {
	promptValidator
}

// promptValidator runs the guards of creating, updating and deleting Prompts.
// On success, it passes the data on to promptGorm.
type promptValidator struct {
	promptGorm
	users userFinder
}

// promptGorm runs CRUD operations on the prompts table.
type promptGorm struct {
	db *gorm.DB
}

// NewPromptService returns an instance of PromptService.
func NewPromptService(db *gorm.DB, users userFinder) *PromptService {
	return &PromptService{
		promptValidator{
			promptGorm: promptGorm{
				db: db,
			},
			users: users,
		},
	}
}

// Ensure the PromptService struct properly implements the domain.PromptService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PromptService = &PromptService{}

// Create records a new response of the logged in user.
func (pv *promptValidator) Create(ctx context.Context, content string) (*domain.Prompt, error) {
	m := &mutation{ctx: ctx, content: content}
	err := runGuards(m,
		callerAuthenticated,
		contentNotEmpty,
		contentMaxLength(domain.MaxPromptLength))
	if err != nil {
		return nil, err
	}
	prompt := &domain.Prompt{
		UserID:  m.caller.ID,
		Content: content,
	}
	if err := pv.promptGorm.Create(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// Update replaces the content of a response. Only its author may update it.
func (pv *promptValidator) Update(ctx context.Context, id, content string) (*domain.Prompt, error) {
	m := &mutation{ctx: ctx, recordID: id, content: content}
	err := runGuards(m,
		callerAuthenticated,
		pv.promptExists,
		callerOwns("prompt"),
		contentNotEmpty,
		contentMaxLength(domain.MaxPromptLength))
	if err != nil {
		return nil, err
	}
	return pv.promptGorm.Update(ctx, id, content)
}

// Delete deletes a response. Only its author may delete it.
func (pv *promptValidator) Delete(ctx context.Context, id string) error {
	m := &mutation{ctx: ctx, recordID: id}
	err := runGuards(m,
		callerAuthenticated,
		pv.promptExists,
		callerOwns("prompt"))
	if err != nil {
		return err
	}
	return pv.promptGorm.Delete(ctx, id)
}

// FindAllByUser retrieves the responses of the user with the given handle, most recent first.
func (pv *promptValidator) FindAllByUser(ctx context.Context, username string) ([]domain.Prompt, error) {
	user, err := pv.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return pv.find(pv.db.WithContext(ctx).Where("user_id = ?", user.ID))
}

// promptExists makes sure that the Prompt to be modified exists, and stores its author on the mutation.
func (pv *promptValidator) promptExists(m *mutation) error {
	prompt, err := pv.ByID(m.ctx, m.recordID)
	if err != nil {
		return err
	}
	m.ownerID = prompt.UserID
	return nil
}

// ByID retrieves a single Prompt by ID, along with its user.
func (pg *promptGorm) ByID(ctx context.Context, id string) (*domain.Prompt, error) {
	notFound := errs.Errorf(errs.ERECORDNOTFOUND, "Prompt response with ID %s does not exist.", id)
	if !domain.ValidID(id) {
		return nil, notFound
	}
	var prompt domain.Prompt
	err := pg.db.WithContext(ctx).Preload("User").First(&prompt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("finding prompt: %w", err)
	}
	return &prompt, nil
}

// FindAll retrieves every response, most recent first.
func (pg *promptGorm) FindAll(ctx context.Context) ([]domain.Prompt, error) {
	return pg.find(pg.db.WithContext(ctx))
}

// Create stores a new Prompt and reloads it with its user.
func (pg *promptGorm) Create(ctx context.Context, prompt *domain.Prompt) error {
	if err := validateStruct(prompt); err != nil {
		return err
	}
	db := pg.db.WithContext(ctx)
	if err := db.Create(prompt).Error; err != nil {
		return fmt.Errorf("creating prompt: %w", err)
	}
	if err := db.Preload("User").First(prompt, "id = ?", prompt.ID).Error; err != nil {
		return fmt.Errorf("reloading prompt: %w", err)
	}
	return nil
}

// Update sets the content of a Prompt, which also moves its UpdatedAt date.
func (pg *promptGorm) Update(ctx context.Context, id, content string) (*domain.Prompt, error) {
	err := pg.db.WithContext(ctx).Model(&domain.Prompt{ID: id}).Update("content", content).Error
	if err != nil {
		return nil, fmt.Errorf("updating prompt: %w", err)
	}
	return pg.ByID(ctx, id)
}

// Delete permanently deletes a Prompt.
func (pg *promptGorm) Delete(ctx context.Context, id string) error {
	if err := pg.db.WithContext(ctx).Delete(&domain.Prompt{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting prompt: %w", err)
	}
	return nil
}

func (pg *promptGorm) find(db *gorm.DB) ([]domain.Prompt, error) {
	prompts := []domain.Prompt{}
	err := db.Preload("User").Order("created_at desc, id desc").Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("finding prompts: %w", err)
	}
	return prompts, nil
}
