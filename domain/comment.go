package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Comment represents a threaded text reply to a Target. Since the Target of a Comment may itself
// be a Comment, comments form a tree rooted at a Freet. IsComment records whether the Target was
// a Comment at the time of creation. Deleting a Comment leaves the Likes and Comments attached to
// it in place.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"size:36;notNull;index" validate:"required"`
	User      User      `json:"user" validate:"-"`
	Target    Target    `json:"target" gorm:"embedded;embeddedPrefix:target_"`
	Content   string    `json:"content" gorm:"size:512;notNull" validate:"required,max=140"`
	IsComment bool      `json:"is_comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a new ID to the Comment, unless it already has one.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// EngagementID returns the ID of the Comment.
func (c Comment) EngagementID() string { return c.ID }

// OwnerID returns the ID of the user that created the Comment.
func (c Comment) OwnerID() string { return c.UserID }

// Ref returns the Target the Comment is attached to.
func (c Comment) Ref() Target { return c.Target }

// Owner returns the user that created the Comment, if it was preloaded.
func (c Comment) Owner() User { return c.User }

// CommentService is a set of methods to manipulate and work with the Comment model.
type CommentService interface {
	Create(ctx context.Context, targetID, content string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Comment, error)
	FindAll(ctx context.Context) ([]Comment, error)
	FindAllByTarget(ctx context.Context, target Target) ([]Comment, error)
	FindAllByUser(ctx context.Context, username string) ([]Comment, error)
}
