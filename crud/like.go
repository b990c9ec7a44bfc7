package crud

import (
	"context"

	"gorm.io/gorm"

	"fritter/domain"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	engagementValidator[domain.Like]
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB, resolver *Resolver, users userFinder) *LikeService {
	return &LikeService{
		engagementValidator[domain.Like]{
			engagementGorm: engagementGorm[domain.Like]{
				db:   db,
				noun: "like",
			},
			resolver: resolver,
			users:    users,
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Create runs the guards needed for liking a freet or a comment, then stores the new Like.
// The same user may like the same target more than once.
func (ls *LikeService) Create(ctx context.Context, targetID string) (*domain.Like, error) {
	m := &mutation{ctx: ctx, targetID: targetID}
	err := runGuards(m,
		callerAuthenticated,
		ls.targetResolves)
	if err != nil {
		return nil, err
	}
	like := &domain.Like{
		UserID: m.caller.ID,
		Target: m.target,
	}
	if err := ls.AddOne(ctx, like); err != nil {
		return nil, err
	}
	engagementMutations.WithLabelValues("like", "create").Inc()
	return like, nil
}
