package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fritter/domain"
	"fritter/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	// Get likes: all of them, those of a user with ?user=handle,
	// or those on a freet or comment with ?target=id[&kind=freet|comment].
	r.HandleFunc("/likes", s.handleGetLikes).Methods("GET")

	// Count the likes on a freet or comment.
	r.HandleFunc("/likes/count", s.handleCountLikes).Methods("GET")

	// Get the handles of the users that liked a freet or comment.
	r.HandleFunc("/likes/users", s.handleGetLikers).Methods("GET")

	// Like a freet or comment.
	r.HandleFunc("/likes", s.handleCreateLike).Methods("POST")

	// Delete an existing like.
	r.HandleFunc("/likes/{id}", s.handleDeleteLike).Methods("DELETE")
}

// countResponse is the number of engagements on a target.
type countResponse struct {
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// likersResponse lists the users that liked a target, once per like.
type likersResponse struct {
	Target string   `json:"target"`
	Users  []string `json:"users"`
}

// targetFromQuery reads the target of a read request from the ?target= and ?kind= query parameters.
func (s *Server) targetFromQuery(r *http.Request) (domain.Target, error) {
	q := r.URL.Query()
	id := q.Get("target")
	if id == "" {
		return domain.Target{}, errs.Errorf(errs.EINVALID, "A target is required.")
	}
	return s.res.Target(r.Context(), id, q.Get("kind"))
}

// handleGetLikes handles the route "GET /api/likes".
func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	var (
		likes []domain.Like
		err   error
	)
	q := r.URL.Query()
	switch {
	case q.Get("target") != "":
		var target domain.Target
		if target, err = s.targetFromQuery(r); err == nil {
			likes, err = s.ls.FindAllByTarget(r.Context(), target)
		}
	case q.Get("user") != "":
		likes, err = s.ls.FindAllByUser(r.Context(), q.Get("user"))
	default:
		likes, err = s.ls.FindAll(r.Context())
	}
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, s.agg.LikeResponses(likes))
}

// handleCountLikes handles the route "GET /api/likes/count".
func (s *Server) handleCountLikes(w http.ResponseWriter, r *http.Request) {
	target, err := s.targetFromQuery(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	count, err := s.agg.CountLikes(r.Context(), target)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, countResponse{Target: target.ID, Count: count})
}

// handleGetLikers handles the route "GET /api/likes/users".
func (s *Server) handleGetLikers(w http.ResponseWriter, r *http.Request) {
	target, err := s.targetFromQuery(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	users, err := s.agg.LikersFor(r.Context(), target)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	handles := make([]string, 0, len(users))
	for _, u := range users {
		handles = append(handles, u.Username)
	}
	respond(w, r, http.StatusOK, likersResponse{Target: target.ID, Users: handles})
}

// handleCreateLike handles the route "POST /api/likes".
// It reads {target} from the json body and likes that freet or comment as the logged in user.
func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Target string `json:"target"`
	}
	if err := decode(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	like, err := s.ls.Create(r.Context(), body.Target)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, s.agg.LikeResponse(like))
}

// handleDeleteLike handles the route "DELETE /api/likes/{id}".
func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	if err := s.ls.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, messageResponse{Message: "Your like was deleted successfully."})
}
