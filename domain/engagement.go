package domain

// Engagement is implemented by the records that users attach to a Target: Likes and Comments.
// It gives the generic engagement store and the validation pipeline access to the fields that
// both kinds share.
type Engagement interface {
	Like | Comment
	EngagementID() string
	OwnerID() string
	Ref() Target
	Owner() User
}
