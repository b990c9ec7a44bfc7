package auth

import (
	"context"

	"fritter/domain"
)

const (
	userKey privateKey = "user"
)

type privateKey string

// SetUser returns a copy of ctx that carries the authenticated user.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the authenticated user carried by ctx, or nil if the caller is anonymous.
func GetUser(ctx context.Context) *domain.User {
	if temp := ctx.Value(userKey); temp != nil {
		if user, ok := temp.(*domain.User); ok {
			return user
		}
	}
	return nil
}
