package crud

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fritter/domain"
	"fritter/errs"
)

func TestListService_Create(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")

	list, err := s.List.Create(as(alice), "  favorites ")
	require.NoError(t, err)
	assert.Equal(t, "favorites", list.Name)
	assert.Equal(t, "alice", list.Creator.Username)
	assert.Empty(t, list.Freets)

	_, err = s.List.Create(context.Background(), "anonymous")
	requireCode(t, errs.EUNAUTHENTICATED, err)
	_, err = s.List.Create(as(alice), " ")
	requireCode(t, errs.EINVALID, err)
	_, err = s.List.Create(as(alice), strings.Repeat("n", MaxListNameLength+1))
	requireCode(t, errs.EINVALID, err)
}

func TestListService_Freets(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	freet := mustFreet(t, s, bob, "hello")
	list, err := s.List.Create(as(alice), "reading")
	require.NoError(t, err)

	_, err = s.List.AddFreet(as(bob), list.ID, freet.ID)
	requireCode(t, errs.EFORBIDDEN, err)
	_, err = s.List.AddFreet(as(alice), list.ID, domain.NewID())
	requireCode(t, errs.ENOTFOUND, err)
	_, err = s.List.AddFreet(as(alice), domain.NewID(), freet.ID)
	requireCode(t, errs.ERECORDNOTFOUND, err)

	list, err = s.List.AddFreet(as(alice), list.ID, freet.ID)
	require.NoError(t, err)
	require.Len(t, list.Freets, 1)
	assert.Equal(t, "bob", list.Freets[0].Author.Username)

	// Adding twice keeps a single entry.
	list, err = s.List.AddFreet(as(alice), list.ID, freet.ID)
	require.NoError(t, err)
	assert.Len(t, list.Freets, 1)

	list, err = s.List.RemoveFreet(as(alice), list.ID, freet.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Freets)

	// Deleting a freet takes it off its lists.
	list, err = s.List.AddFreet(as(alice), list.ID, freet.ID)
	require.NoError(t, err)
	require.Len(t, list.Freets, 1)
	require.NoError(t, s.Freet.Delete(as(bob), freet.ID))
	list, err = s.List.ByID(context.Background(), list.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Freets)
}

func TestListService_Subscriptions(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	list, err := s.List.Create(as(alice), "reading")
	require.NoError(t, err)
	_, err = s.List.Create(as(alice), "other")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.List.Subscribe(ctx, list.ID)
	requireCode(t, errs.EUNAUTHENTICATED, err)

	list, err = s.List.Subscribe(as(bob), list.ID)
	require.NoError(t, err)
	require.Len(t, list.Subscribers, 1)
	assert.Equal(t, "bob", list.Subscribers[0].Username)

	subscribed, err := s.List.BySubscriber(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	assert.Equal(t, list.ID, subscribed[0].ID)

	created, err := s.List.ByCreator(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, created, 2)

	list, err = s.List.Unsubscribe(as(bob), list.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Subscribers)

	subscribed, err = s.List.BySubscriber(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, subscribed)
}

func TestListService_Delete(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	list, err := s.List.Create(as(alice), "reading")
	require.NoError(t, err)
	_, err = s.List.Subscribe(as(bob), list.ID)
	require.NoError(t, err)

	requireCode(t, errs.EFORBIDDEN, s.List.Delete(as(bob), list.ID))
	require.NoError(t, s.List.Delete(as(alice), list.ID))

	_, err = s.List.ByID(context.Background(), list.ID)
	requireCode(t, errs.ERECORDNOTFOUND, err)
	subscribed, err := s.List.BySubscriber(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, subscribed)
}
