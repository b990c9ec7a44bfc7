package crud

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fritter/domain"
)

func TestEngagementStore_FindOneReturnsCreatedRecord(t *testing.T) {
	s := newTestServices(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	freet := mustFreet(t, s, alice, "hello")
	comment := mustComment(t, s, alice, freet.ID, "first")
	ctx := context.Background()

	ignore := cmp.Options{
		cmpopts.IgnoreFields(domain.Like{}, "ID", "CreatedAt"),
		cmpopts.IgnoreFields(domain.Comment{}, "ID", "CreatedAt"),
	}

	tests := []struct {
		name   string
		target domain.Target
		// roundTrip creates a record on the target and returns it with its stored copy.
		roundTrip func(t *testing.T, targetID string) (created, found interface{})
	}{
		{
			name:   "like on freet",
			target: domain.FreetTarget(freet.ID),
			roundTrip: func(t *testing.T, targetID string) (interface{}, interface{}) {
				like := mustLike(t, s, bob, targetID)
				found, err := s.Like.FindOne(ctx, like.ID)
				require.NoError(t, err)
				assert.Equal(t, like.ID, found.ID)
				return *like, *found
			},
		},
		{
			name:   "like on comment",
			target: domain.CommentTarget(comment.ID),
			roundTrip: func(t *testing.T, targetID string) (interface{}, interface{}) {
				like := mustLike(t, s, bob, targetID)
				found, err := s.Like.FindOne(ctx, like.ID)
				require.NoError(t, err)
				assert.Equal(t, like.ID, found.ID)
				return *like, *found
			},
		},
		{
			name:   "comment on freet",
			target: domain.FreetTarget(freet.ID),
			roundTrip: func(t *testing.T, targetID string) (interface{}, interface{}) {
				reply := mustComment(t, s, bob, targetID, "nice")
				found, err := s.Comment.FindOne(ctx, reply.ID)
				require.NoError(t, err)
				assert.Equal(t, reply.ID, found.ID)
				assert.Equal(t, "nice", found.Content)
				assert.False(t, found.IsComment)
				return *reply, *found
			},
		},
		{
			name:   "comment on comment",
			target: domain.CommentTarget(comment.ID),
			roundTrip: func(t *testing.T, targetID string) (interface{}, interface{}) {
				reply := mustComment(t, s, bob, targetID, "agreed")
				found, err := s.Comment.FindOne(ctx, reply.ID)
				require.NoError(t, err)
				assert.Equal(t, reply.ID, found.ID)
				assert.Equal(t, "agreed", found.Content)
				assert.True(t, found.IsComment)
				return *reply, *found
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, found := tt.roundTrip(t, tt.target.ID)

			if diff := cmp.Diff(created, found, ignore); diff != "" {
				t.Errorf("stored record mismatch (-created +found):\n%s", diff)
			}
			rec, ok := found.(interface {
				OwnerID() string
				Ref() domain.Target
				Owner() domain.User
			})
			require.True(t, ok)
			assert.Equal(t, bob.ID, rec.OwnerID())
			assert.Equal(t, "bob", rec.Owner().Username)
			assert.Equal(t, tt.target, rec.Ref())
		})
	}
}
