package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fritter/auth"
	"fritter/crud"
	"fritter/domain"
	"fritter/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	// Create an account and sign in with it.
	r.HandleFunc("/users", s.handleRegister).Methods("POST")

	// Sign in with username and password.
	r.HandleFunc("/users/session", s.handleLogin).Methods("POST")

	// Get the user the session token was issued for.
	r.HandleFunc("/users/session", s.handleSession).Methods("GET")
}

// credentials is the body of register and login requests.
type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse is a User formatted for clients.
type userResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	DateJoined string `json:"dateJoined"`
}

// sessionResponse carries a signed in user and the token that identifies them on later requests.
type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func newUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Username:   user.Username,
		DateJoined: crud.FormatDate(user.CreatedAt),
	}
}

// handleRegister handles the route "POST /api/users".
// It creates a new user and signs them in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := s.decodeValid(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user := domain.User{Username: body.Username, Password: body.Password}
	if err := s.us.Create(r.Context(), &user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.signIn(w, r, http.StatusCreated, &user)
}

// handleLogin handles the route "POST /api/users/session".
// It checks the submitted credentials and returns a new session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := s.decodeValid(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user, err := s.us.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.signIn(w, r, http.StatusOK, user)
}

// handleSession handles the route "GET /api/users/session".
// It returns the user identified by the request's session token.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		errs.ReturnError(w, r, errs.Unauthenticated)
		return
	}
	respond(w, r, http.StatusOK, newUserResponse(user))
}

// signIn issues a session token for the user and returns it along with the user.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, status, sessionResponse{
		User:  newUserResponse(user),
		Token: token,
	})
}
