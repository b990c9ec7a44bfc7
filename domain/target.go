package domain

import (
	"github.com/google/uuid"
)

// TargetKind names the kind of record an engagement is attached to.
type TargetKind string

const (
	// TargetFreet expresses that an engagement is attached to a Freet.
	TargetFreet TargetKind = "freet"
	// TargetComment expresses that an engagement is attached to another Comment.
	TargetComment TargetKind = "comment"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	return k == TargetFreet || k == TargetComment
}

// Target is the polymorphic reference of a Like or a Comment: either a Freet or a Comment,
// identified by Kind and ID. A Target is produced once by resolving an id against the freets
// and comments tables and is then passed along unchanged, so a Target that is neither kind
// cannot exist downstream of resolution. In the database a Target is embedded into the
// engagement tables as the target_kind and target_id columns.
type Target struct {
	Kind TargetKind `json:"kind" gorm:"size:16;notNull" validate:"required,oneof=freet comment"`
	ID   string     `json:"id" gorm:"size:36;notNull;index" validate:"required,uuid"`
}

// FreetTarget returns the Target of the Freet with the given ID.
func FreetTarget(id string) Target {
	return Target{Kind: TargetFreet, ID: id}
}

// CommentTarget returns the Target of the Comment with the given ID.
func CommentTarget(id string) Target {
	return Target{Kind: TargetComment, ID: id}
}

// IsComment reports whether the target is a Comment.
func (t Target) IsComment() bool {
	return t.Kind == TargetComment
}

// ValidID reports whether id has the format of a record ID. Lookups with malformed IDs
// are treated exactly like lookups of absent records.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NewID returns a new time-ordered record ID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
