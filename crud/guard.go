package crud

import (
	"context"
	"strings"
	"unicode/utf8"

	"fritter/auth"
	"fritter/domain"
	"fritter/errs"
)

// A mutation carries one incoming create, update or delete request through a chain of guards.
// Guards read the raw input from it and store what they looked up (the caller, the resolved
// target, the owner of the record), so that later guards and the final write can rely on it.
type mutation struct {
	ctx context.Context

	// Raw input.
	targetID string
	recordID string
	content  string

	// Filled in by guards.
	caller  *domain.User
	target  domain.Target
	ownerID string
}

// A guard is a single precondition of a mutation. It returns nil if the precondition holds,
// otherwise the error that the mutation fails with.
type guard func(m *mutation) error

// runGuards runs the guards strictly in the given order and stops at the first failing one.
// Guards after a failing guard never run.
func runGuards(m *mutation, guards ...guard) error {
	for _, g := range guards {
		if err := g(m); err != nil {
			return err
		}
	}
	return nil
}

// callerAuthenticated makes sure that the request was made by a logged in user.
func callerAuthenticated(m *mutation) error {
	user := auth.GetUser(m.ctx)
	if user == nil || user.ID == "" {
		return errs.Unauthenticated
	}
	m.caller = user
	return nil
}

// callerOwns makes sure that the logged in user owns the record looked up by a previous guard.
func callerOwns(noun string) guard {
	return func(m *mutation) error {
		if m.caller == nil || m.caller.ID != m.ownerID {
			return errs.Errorf(errs.EFORBIDDEN, "Cannot modify other users' %ss.", noun)
		}
		return nil
	}
}

// contentNotEmpty makes sure that the content is not empty or a stream of whitespace.
func contentNotEmpty(m *mutation) error {
	if strings.TrimSpace(m.content) == "" {
		return errs.Errorf(errs.EEMPTYCONTENT, "Content must be at least one character long.")
	}
	return nil
}

// contentMaxLength makes sure that the content has at most max characters.
func contentMaxLength(max int) guard {
	return func(m *mutation) error {
		if utf8.RuneCountInString(m.content) > max {
			return errs.Errorf(errs.ECONTENTTOOLONG, "Content must be no more than %d characters.", max)
		}
		return nil
	}
}
