package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// User represents an account of the app. Users are referenced by their ID internally
// and by their Username (their public handle) in requests and responses.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" gorm:"size:32;notNull;uniqueIndex"`
	Password     string    `json:"password,omitempty" gorm:"-"`
	PasswordHash string    `json:"-" gorm:"notNull"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	Create(ctx context.Context, user *User) error
	Authenticate(ctx context.Context, username, password string) (*User, error)
	ByID(ctx context.Context, id string) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
}

// BeforeCreate assigns a new ID to the User, unless it already has one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
