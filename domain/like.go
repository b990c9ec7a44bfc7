package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Like represents a user's approval of a Target. A Like is created when a user decides to like
// a freet or a comment, and it's destroyed only when the user deletes it by its own ID.
// Deleting the liked record leaves the Like in place.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"size:36;notNull;index" validate:"required"`
	User      User      `json:"user" validate:"-"`
	Target    Target    `json:"target" gorm:"embedded;embeddedPrefix:target_"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a new ID to the Like, unless it already has one.
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	return nil
}

// EngagementID returns the ID of the Like.
func (l Like) EngagementID() string { return l.ID }

// OwnerID returns the ID of the user that created the Like.
func (l Like) OwnerID() string { return l.UserID }

// Ref returns the Target the Like is attached to.
func (l Like) Ref() Target { return l.Target }

// Owner returns the user that created the Like, if it was preloaded.
func (l Like) Owner() User { return l.User }

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	Create(ctx context.Context, targetID string) (*Like, error)
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Like, error)
	FindAll(ctx context.Context) ([]Like, error)
	FindAllByTarget(ctx context.Context, target Target) ([]Like, error)
	FindAllByUser(ctx context.Context, username string) ([]Like, error)
}
