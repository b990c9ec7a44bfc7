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

func TestFreetService_Create(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")

	freet := &domain.Freet{Content: "hello"}
	require.NoError(t, s.Freet.Create(as(alice), freet))
	assert.True(t, domain.ValidID(freet.ID))
	assert.Equal(t, alice.ID, freet.AuthorID)
	assert.Equal(t, "alice", freet.Author.Username)

	requireCode(t, errs.EUNAUTHENTICATED, s.Freet.Create(context.Background(), &domain.Freet{Content: "hi"}))
	requireCode(t, errs.EEMPTYCONTENT, s.Freet.Create(as(alice), &domain.Freet{Content: "\n"}))
	requireCode(t, errs.ECONTENTTOOLONG, s.Freet.Create(as(alice), &domain.Freet{Content: strings.Repeat("x", 141)}))
}

func TestFreetService_Delete(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	freet := mustFreet(t, s, alice, "hello")
	ctx := context.Background()

	requireCode(t, errs.EFORBIDDEN, s.Freet.Delete(as(bob), freet.ID))
	requireCode(t, errs.ENOTFOUND, s.Freet.Delete(as(bob), domain.NewID()))
	require.NoError(t, s.Freet.Delete(as(alice), freet.ID))

	_, err := s.Freet.ByID(ctx, freet.ID)
	requireCode(t, errs.ENOTFOUND, err)
}

func TestFreetService_Lists(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	first := mustFreet(t, s, alice, "first")
	second := mustFreet(t, s, bob, "second")
	third := mustFreet(t, s, alice, "third")
	ctx := context.Background()

	all, err := s.Freet.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := s.Freet.ByAuthor(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)
	assert.Equal(t, "alice", mine[0].Author.Username)

	_, err = s.Freet.ByAuthor(ctx, "nobody")
	requireCode(t, errs.ENOTFOUND, err)
}
