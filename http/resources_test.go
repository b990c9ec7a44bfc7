package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fritter/errs"
)

func TestServer_Session(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "alice")

	w := do(t, s, "POST", "/api/users", "", credentials{Username: "alice", Password: "password"})
	requireError(t, w, http.StatusConflict, errs.ECONFLICT)

	w = do(t, s, "POST", "/api/users", "", map[string]string{"username": "bob"})
	requireError(t, w, http.StatusBadRequest, errs.EINVALID)

	w = do(t, s, "GET", "/api/users/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decodeBody[userResponse](t, w).Username)

	w = do(t, s, "GET", "/api/users/session", "", nil)
	requireError(t, w, http.StatusUnauthorized, errs.EUNAUTHENTICATED)

	w = do(t, s, "GET", "/api/users/session", "forged", nil)
	requireError(t, w, http.StatusUnauthorized, errs.EUNAUTHENTICATED)

	w = do(t, s, "POST", "/api/users/session", "", credentials{Username: "alice", Password: "nope-nope"})
	requireError(t, w, http.StatusUnauthorized, errs.EUNAUTHENTICATED)

	w = do(t, s, "POST", "/api/users/session", "", credentials{Username: "alice", Password: "password"})
	require.Equal(t, http.StatusOK, w.Code)
	session := decodeBody[sessionResponse](t, w)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.User.Username)
}

func TestServer_Prompts(t *testing.T) {
	s := newTestServer(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	w := do(t, s, "POST", "/api/prompts", alice, promptBody{Content: "my answer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	prompt := decodeBody[promptResponse](t, w)
	assert.Equal(t, "alice", prompt.User)

	w = do(t, s, "PUT", "/api/prompts/"+prompt.ID, bob, promptBody{Content: "mine now"})
	requireError(t, w, http.StatusForbidden, errs.EFORBIDDEN)

	w = do(t, s, "PUT", "/api/prompts/"+prompt.ID, alice, promptBody{Content: "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decodeBody[promptResponse](t, w).Content)

	w = do(t, s, "GET", "/api/prompts?user=alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]promptResponse](t, w), 1)

	w = do(t, s, "DELETE", "/api/prompts/"+prompt.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, "GET", "/api/prompts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]promptResponse](t, w))
}

func TestServer_Lists(t *testing.T) {
	s := newTestServer(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")
	freet := postFreet(t, s, bob, "hello")

	w := do(t, s, "POST", "/api/lists", alice, map[string]string{})
	requireError(t, w, http.StatusBadRequest, errs.EINVALID)

	w = do(t, s, "POST", "/api/lists", alice, map[string]string{"name": "reading"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	list := decodeBody[listResponse](t, w)
	assert.Equal(t, "alice", list.Creator)

	w = do(t, s, "PUT", "/api/lists/"+list.ID+"/freets/"+freet.ID, bob, nil)
	requireError(t, w, http.StatusForbidden, errs.EFORBIDDEN)

	w = do(t, s, "PUT", "/api/lists/"+list.ID+"/freets/"+freet.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list = decodeBody[listResponse](t, w)
	require.Len(t, list.Freets, 1)
	assert.Equal(t, freet.ID, list.Freets[0].ID)

	w = do(t, s, "PUT", "/api/lists/"+list.ID+"/subscribers", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"bob"}, decodeBody[listResponse](t, w).Subscribers)

	w = do(t, s, "GET", "/api/lists?subscriber=bob", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]listResponse](t, w), 1)

	w = do(t, s, "GET", "/api/lists", "", nil)
	requireError(t, w, http.StatusBadRequest, errs.EINVALID)

	w = do(t, s, "DELETE", "/api/lists/"+list.ID+"/subscribers", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[listResponse](t, w).Subscribers)

	w = do(t, s, "DELETE", "/api/lists/"+list.ID+"/freets/"+freet.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[listResponse](t, w).Freets)

	w = do(t, s, "DELETE", "/api/lists/"+list.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, "GET", "/api/lists/"+list.ID, "", nil)
	requireError(t, w, http.StatusNotFound, errs.ERECORDNOTFOUND)
}
