package crud

import (
	"context"

	"gorm.io/gorm"

	"fritter/domain"
)

// CommentService manages Comments.
// It implements the domain.CommentService interface.
type CommentService struct {
	engagementValidator[domain.Comment]
}

// NewCommentService returns an instance of CommentService.
func NewCommentService(db *gorm.DB, resolver *Resolver, users userFinder) *CommentService {
	return &CommentService{
		engagementValidator[domain.Comment]{
			engagementGorm: newCommentGorm(db),
			resolver:       resolver,
			users:          users,
		},
	}
}

// newCommentGorm returns the comment store on its own, which the Resolver needs before
// the CommentService can be built.
func newCommentGorm(db *gorm.DB) engagementGorm[domain.Comment] {
	return engagementGorm[domain.Comment]{
		db:   db,
		noun: "comment",
	}
}

// Ensure the CommentService struct properly implements the domain.CommentService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.CommentService = &CommentService{}

// Create runs the guards needed for commenting on a freet or a comment, then stores the new Comment.
func (cs *CommentService) Create(ctx context.Context, targetID, content string) (*domain.Comment, error) {
	m := &mutation{ctx: ctx, targetID: targetID, content: content}
	err := runGuards(m,
		callerAuthenticated,
		cs.targetResolves,
		contentNotEmpty,
		contentMaxLength(domain.MaxContentLength))
	if err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		UserID:    m.caller.ID,
		Target:    m.target,
		Content:   content,
		IsComment: m.target.IsComment(),
	}
	if err := cs.AddOne(ctx, comment); err != nil {
		return nil, err
	}
	engagementMutations.WithLabelValues("comment", "create").Inc()
	return comment, nil
}
