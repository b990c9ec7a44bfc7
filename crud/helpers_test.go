package crud

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fritter/auth"
	"fritter/domain"
	"fritter/errs"
)

// newTestDB returns a migrated in-memory database that lives as long as the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" opens its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

// newTestServices returns every crud service on top of a fresh database.
func newTestServices(t *testing.T) *Services {
	t.Helper()
	s, err := NewServices(newTestDB(t),
		WithUser("test-pepper"),
		WithFreet(),
		WithEngagements(),
		WithPrompt(),
		WithList())
	require.NoError(t, err)
	return s
}

// as returns a context carrying user as the caller.
func as(user *domain.User) context.Context {
	return auth.SetUser(context.Background(), user)
}

func mustUser(t *testing.T, s *Services, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Password: "password"}
	require.NoError(t, s.User.Create(context.Background(), user))
	return user
}

func mustFreet(t *testing.T, s *Services, author *domain.User, content string) *domain.Freet {
	t.Helper()
	freet := &domain.Freet{Content: content}
	require.NoError(t, s.Freet.Create(as(author), freet))
	return freet
}

func mustComment(t *testing.T, s *Services, author *domain.User, targetID, content string) *domain.Comment {
	t.Helper()
	comment, err := s.Comment.Create(as(author), targetID, content)
	require.NoError(t, err)
	return comment
}

func mustLike(t *testing.T, s *Services, user *domain.User, targetID string) *domain.Like {
	t.Helper()
	like, err := s.Like.Create(as(user), targetID)
	require.NoError(t, err)
	return like
}

// requireCode fails the test unless err is an application error with the given code.
func requireCode(t *testing.T, code string, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, errs.ErrorCode(err), "error: %v", err)
}
