package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// MaxPromptLength is the maximum number of characters of a Prompt response.
// The max validation tag of Prompt.Content must carry the same number.
const MaxPromptLength = 500

// Prompt represents a user's dated written response to the daily writing prompt.
// CreatedAt is the date the user responded, UpdatedAt the date of the last edit.
type Prompt struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"size:36;notNull;index" validate:"required"`
	User      User      `json:"user" validate:"-"`
	Content   string    `json:"content" gorm:"size:2048;notNull" validate:"required,max=500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a new ID to the Prompt, unless it already has one.
func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// PromptService is a set of methods to manipulate and work with the Prompt model.
type PromptService interface {
	Create(ctx context.Context, content string) (*Prompt, error)
	Update(ctx context.Context, id, content string) (*Prompt, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Prompt, error)
	FindAllByUser(ctx context.Context, username string) ([]Prompt, error)
}
