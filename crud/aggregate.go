package crud

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"fritter/domain"
	"fritter/errs"
)

// DeletedPlaceholder stands in for the content of a target that no longer exists.
const DeletedPlaceholder = "[deleted]"

// Aggregator builds the read-side views of engagements: counts, likers, comment threads,
// and the responses sent to clients. Nothing is cached or counted incrementally; every view
// is recomputed from the database on each call.
type Aggregator struct {
	likes    *LikeService
	comments *CommentService
	resolver *Resolver
}

// NewAggregator returns an instance of Aggregator.
func NewAggregator(likes *LikeService, comments *CommentService, resolver *Resolver) *Aggregator {
	return &Aggregator{
		likes:    likes,
		comments: comments,
		resolver: resolver,
	}
}

// targetLister lists the records attached to a target.
type targetLister[T any] interface {
	FindAllByTarget(ctx context.Context, target domain.Target) ([]T, error)
}

// countFor returns the number of records attached to the target.
func countFor[T any](ctx context.Context, store targetLister[T], target domain.Target) (int, error) {
	recs, err := store.FindAllByTarget(ctx, target)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// CountLikes returns the number of Likes on the target.
func (a *Aggregator) CountLikes(ctx context.Context, target domain.Target) (int, error) {
	return countFor[domain.Like](ctx, a.likes, target)
}

// CountComments returns the number of Comments directly attached to the target.
func (a *Aggregator) CountComments(ctx context.Context, target domain.Target) (int, error) {
	return countFor[domain.Comment](ctx, a.comments, target)
}

// LikersFor returns the users that liked the target, one entry per Like, in the order
// the Likes were created.
func (a *Aggregator) LikersFor(ctx context.Context, target domain.Target) ([]domain.User, error) {
	likes, err := a.likes.FindAllByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(likes))
	for _, like := range likes {
		users = append(users, like.User)
	}
	return users, nil
}

// ThreadFor returns the Comments directly attached to the target. Replies to those comments
// are not included; callers assemble deeper threads by asking for each comment in turn.
func (a *Aggregator) ThreadFor(ctx context.Context, target domain.Target) ([]domain.Comment, error) {
	return a.comments.FindAllByTarget(ctx, target)
}

// LikeResponse is a Like formatted for clients.
type LikeResponse struct {
	ID         string `json:"id"`
	Target     string `json:"target"`
	TargetKind string `json:"targetKind"`
	User       string `json:"user"`
	CreatedAt  string `json:"createdAt"`
}

// CommentResponse is a Comment formatted for clients. Reference holds the content of the
// commented freet or comment, or DeletedPlaceholder if it no longer exists.
type CommentResponse struct {
	ID         string `json:"id"`
	Target     string `json:"target"`
	TargetKind string `json:"targetKind"`
	IsComment  bool   `json:"isComment"`
	User       string `json:"user"`
	Content    string `json:"content"`
	Reference  string `json:"reference"`
	CreatedAt  string `json:"createdAt"`
}

// LikeResponse formats a Like for clients.
func (a *Aggregator) LikeResponse(like *domain.Like) LikeResponse {
	return LikeResponse{
		ID:         like.ID,
		Target:     like.Target.ID,
		TargetKind: string(like.Target.Kind),
		User:       like.User.Username,
		CreatedAt:  FormatDate(like.CreatedAt),
	}
}

// LikeResponses formats a slice of Likes for clients.
func (a *Aggregator) LikeResponses(likes []domain.Like) []LikeResponse {
	res := make([]LikeResponse, 0, len(likes))
	for i := range likes {
		res = append(res, a.LikeResponse(&likes[i]))
	}
	return res
}

// CommentResponse formats a Comment for clients, looking up the content of its target.
// A target that has been deleted does not fail the response.
func (a *Aggregator) CommentResponse(ctx context.Context, comment *domain.Comment) (CommentResponse, error) {
	reference, err := a.resolver.Content(ctx, comment.Target)
	if errs.ErrorCode(err) == errs.ETARGETNOTFOUND {
		reference = DeletedPlaceholder
	} else if err != nil {
		return CommentResponse{}, err
	}
	return CommentResponse{
		ID:         comment.ID,
		Target:     comment.Target.ID,
		TargetKind: string(comment.Target.Kind),
		IsComment:  comment.IsComment,
		User:       comment.User.Username,
		Content:    comment.Content,
		Reference:  reference,
		CreatedAt:  FormatDate(comment.CreatedAt),
	}, nil
}

// CommentResponses formats a slice of Comments for clients.
func (a *Aggregator) CommentResponses(ctx context.Context, comments []domain.Comment) ([]CommentResponse, error) {
	res := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		r, err := a.CommentResponse(ctx, &comments[i])
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// FormatDate encodes a date as an unambiguous string, e.g. "October 17th 2026, 3:04:05 pm".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %s %d, %s", t.Format("January"), humanize.Ordinal(t.Day()), t.Year(), t.Format("3:04:05 pm"))
}
