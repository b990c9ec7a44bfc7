package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// List represents a named collection of freets curated by its creator. Other users can
// subscribe to a List to follow the freets collected in it.
type List struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CreatorID   string    `json:"creator_id" gorm:"size:36;notNull;index" validate:"required"`
	Creator     User      `json:"creator" validate:"-"`
	Name        string    `json:"name" gorm:"size:200;notNull" validate:"required,max=50"`
	Freets      []Freet   `json:"freets" gorm:"many2many:list_freets" validate:"-"`
	Subscribers []User    `json:"subscribers" gorm:"many2many:list_subscribers" validate:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a new ID to the List, unless it already has one.
func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	return nil
}

// ListService is a set of methods to manipulate and work with the List model.
type ListService interface {
	Create(ctx context.Context, name string) (*List, error)
	ByID(ctx context.Context, id string) (*List, error)
	AddFreet(ctx context.Context, listID, freetID string) (*List, error)
	RemoveFreet(ctx context.Context, listID, freetID string) (*List, error)
	Subscribe(ctx context.Context, listID string) (*List, error)
	Unsubscribe(ctx context.Context, listID string) (*List, error)
	Delete(ctx context.Context, id string) error
	ByCreator(ctx context.Context, username string) ([]List, error)
	BySubscriber(ctx context.Context, username string) ([]List, error)
}
