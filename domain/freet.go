package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// MaxContentLength is the maximum number of characters of a Freet's or a Comment's content.
// The max validation tags of Freet.Content and Comment.Content must carry the same number.
const MaxContentLength = 140

// Freet represents a short text post. Freets are the roots that Likes and Comments attach to.
type Freet struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AuthorID  string    `json:"author_id" gorm:"size:36;notNull;index" validate:"required"`
	Author    User      `json:"author" validate:"-"`
	Content   string    `json:"content" gorm:"size:512;notNull" validate:"required,max=140"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FreetService is a set of methods to manipulate and work with the Freet model.
type FreetService interface {
	Create(ctx context.Context, freet *Freet) error
	ByID(ctx context.Context, id string) (*Freet, error)
	Delete(ctx context.Context, id string) error
}

// BeforeCreate assigns a new ID to the Freet, unless it already has one.
func (f *Freet) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}
