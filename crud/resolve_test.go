package crud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fritter/domain"
	"fritter/errs"
)

type mockFreets struct{ mock.Mock }

func (m *mockFreets) ByID(ctx context.Context, id string) (*domain.Freet, error) {
	args := m.Called(ctx, id)
	freet, _ := args.Get(0).(*domain.Freet)
	return freet, args.Error(1)
}

type mockComments struct{ mock.Mock }

func (m *mockComments) FindOne(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func TestResolver_Resolve(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	freet := mustFreet(t, s, alice, "hello")
	comment := mustComment(t, s, alice, freet.ID, "first")

	target, err := s.Resolver.Resolve(context.Background(), freet.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FreetTarget(freet.ID), target)

	target, err = s.Resolver.Resolve(context.Background(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CommentTarget(comment.ID), target)

	_, err = s.Resolver.Resolve(context.Background(), "not-an-id")
	requireCode(t, errs.ETARGETNOTFOUND, err)

	_, err = s.Resolver.Resolve(context.Background(), domain.NewID())
	requireCode(t, errs.ETARGETNOTFOUND, err)
}

func TestResolver_Resolve_SkipsCommentsForFreets(t *testing.T) {
	freets, comments := new(mockFreets), new(mockComments)
	id := domain.NewID()
	freets.On("ByID", mock.Anything, id).Return(&domain.Freet{ID: id}, nil)

	target, err := NewResolver(freets, comments).Resolve(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.FreetTarget(id), target)
	freets.AssertExpectations(t)
	comments.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestResolver_Resolve_SurfacesStoreErrors(t *testing.T) {
	freets, comments := new(mockFreets), new(mockComments)
	id := domain.NewID()
	storeErr := errors.New("connection refused")
	freets.On("ByID", mock.Anything, id).Return(nil, errs.Errorf(errs.ENOTFOUND, "missing"))
	comments.On("FindOne", mock.Anything, id).Return(nil, storeErr)

	_, err := NewResolver(freets, comments).Resolve(context.Background(), id)

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
	freets.AssertExpectations(t)
	comments.AssertExpectations(t)
}

func TestResolver_Target(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	freet := mustFreet(t, s, alice, "hello")
	ctx := context.Background()

	target, err := s.Resolver.Target(ctx, freet.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.FreetTarget(freet.ID), target)

	// An explicit kind is trusted without a lookup.
	missing := domain.NewID()
	target, err = s.Resolver.Target(ctx, missing, "comment")
	require.NoError(t, err)
	assert.Equal(t, domain.CommentTarget(missing), target)

	_, err = s.Resolver.Target(ctx, freet.ID, "tweet")
	requireCode(t, errs.EINVALID, err)

	_, err = s.Resolver.Target(ctx, "nope", "freet")
	requireCode(t, errs.ETARGETNOTFOUND, err)
}

func TestResolver_Content(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	freet := mustFreet(t, s, alice, "hello")
	comment := mustComment(t, s, alice, freet.ID, "first")
	ctx := context.Background()

	content, err := s.Resolver.Content(ctx, domain.FreetTarget(freet.ID))
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	content, err = s.Resolver.Content(ctx, domain.CommentTarget(comment.ID))
	require.NoError(t, err)
	assert.Equal(t, "first", content)

	// A comment ID looked up as a freet does not exist.
	_, err = s.Resolver.Content(ctx, domain.FreetTarget(comment.ID))
	requireCode(t, errs.ETARGETNOTFOUND, err)
}
