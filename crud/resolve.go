package crud

import (
	"context"

	"fritter/domain"
	"fritter/errs"
)

// freetFinder looks up Freets by ID. It returns an ENOTFOUND error if the Freet doesn't exist.
type freetFinder interface {
	ByID(ctx context.Context, id string) (*domain.Freet, error)
}

// commentFinder looks up Comments by ID. It returns an ERECORDNOTFOUND error if the Comment
// doesn't exist.
type commentFinder interface {
	FindOne(ctx context.Context, id string) (*domain.Comment, error)
}

// Resolver turns bare IDs into Targets. It has no side effects and caches nothing: every call
// asks the database again, so a Target is only known to exist at the time it was resolved.
type Resolver struct {
	freets   freetFinder
	comments commentFinder
}

// NewResolver returns an instance of Resolver.
func NewResolver(freets freetFinder, comments commentFinder) *Resolver {
	return &Resolver{
		freets:   freets,
		comments: comments,
	}
}

// Resolve determines whether id names a Freet or a Comment, looking for a Freet first.
// If it names neither, or if it is not a well-formed ID at all, it returns ETARGETNOTFOUND.
func (r *Resolver) Resolve(ctx context.Context, id string) (domain.Target, error) {
	if !domain.ValidID(id) {
		return domain.Target{}, targetNotFound(id)
	}
	_, err := r.freets.ByID(ctx, id)
	if err == nil {
		return domain.FreetTarget(id), nil
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return domain.Target{}, err
	}
	_, err = r.comments.FindOne(ctx, id)
	if err == nil {
		return domain.CommentTarget(id), nil
	}
	if errs.ErrorCode(err) != errs.ERECORDNOTFOUND {
		return domain.Target{}, err
	}
	return domain.Target{}, targetNotFound(id)
}

// Target builds the Target named by a read request. If kind is empty, the id is resolved.
// Otherwise the given kind is trusted, which lets readers still reach the engagements of a
// target that has been deleted in the meantime.
func (r *Resolver) Target(ctx context.Context, id, kind string) (domain.Target, error) {
	if kind == "" {
		return r.Resolve(ctx, id)
	}
	k := domain.TargetKind(kind)
	if !k.Valid() {
		return domain.Target{}, errs.Errorf(errs.EINVALID, "Target kind must be %q or %q.", domain.TargetFreet, domain.TargetComment)
	}
	if !domain.ValidID(id) {
		return domain.Target{}, targetNotFound(id)
	}
	return domain.Target{Kind: k, ID: id}, nil
}

// Content returns the text of the record a Target points to. If the record has been
// deleted since the Target was resolved, it returns ETARGETNOTFOUND.
func (r *Resolver) Content(ctx context.Context, t domain.Target) (string, error) {
	switch t.Kind {
	case domain.TargetFreet:
		freet, err := r.freets.ByID(ctx, t.ID)
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			return "", targetNotFound(t.ID)
		} else if err != nil {
			return "", err
		}
		return freet.Content, nil
	case domain.TargetComment:
		comment, err := r.comments.FindOne(ctx, t.ID)
		if errs.ErrorCode(err) == errs.ERECORDNOTFOUND {
			return "", targetNotFound(t.ID)
		} else if err != nil {
			return "", err
		}
		return comment.Content, nil
	}
	return "", targetNotFound(t.ID)
}

func targetNotFound(id string) error {
	return errs.Errorf(errs.ETARGETNOTFOUND, "Freet or comment with ID %s does not exist.", id)
}
