package crud

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fritter/domain"
	"fritter/errs"
)

func TestRunGuards_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	record := func(name string, err error) guard {
		return func(m *mutation) error {
			ran = append(ran, name)
			return err
		}
	}
	boom := errors.New("boom")

	err := runGuards(&mutation{ctx: context.Background()},
		record("first", nil),
		record("second", boom),
		record("third", nil))

	assert.Equal(t, boom, err)
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestRunGuards_AllPass(t *testing.T) {
	calls := 0
	g := func(m *mutation) error {
		calls++
		return nil
	}
	require.NoError(t, runGuards(&mutation{}, g, g, g))
	assert.Equal(t, 3, calls)
}

func TestCallerAuthenticated(t *testing.T) {
	m := &mutation{ctx: context.Background()}
	requireCode(t, errs.EUNAUTHENTICATED, callerAuthenticated(m))
	assert.Nil(t, m.caller)

	user := &domain.User{ID: domain.NewID(), Username: "alice"}
	m = &mutation{ctx: as(user)}
	require.NoError(t, callerAuthenticated(m))
	assert.Equal(t, user, m.caller)
}

func TestCallerOwns(t *testing.T) {
	caller := &domain.User{ID: domain.NewID()}

	m := &mutation{caller: caller, ownerID: caller.ID}
	assert.NoError(t, callerOwns("like")(m))

	m = &mutation{caller: caller, ownerID: domain.NewID()}
	err := callerOwns("like")(m)
	requireCode(t, errs.EFORBIDDEN, err)
	assert.Equal(t, "Cannot modify other users' likes.", errs.ErrorMessage(err))
}

func TestContentGuards(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{name: "single character", content: "a"},
		{name: "at limit", content: strings.Repeat("a", 140)},
		{name: "multibyte at limit", content: strings.Repeat("é", 140)},
		{name: "over limit", content: strings.Repeat("a", 141), code: errs.ECONTENTTOOLONG},
		{name: "empty", content: "", code: errs.EEMPTYCONTENT},
		{name: "whitespace", content: " \t\n ", code: errs.EEMPTYCONTENT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runGuards(&mutation{content: tt.content}, contentNotEmpty, contentMaxLength(140))
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			requireCode(t, tt.code, err)
		})
	}
}
