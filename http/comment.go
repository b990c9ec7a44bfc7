package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fritter/domain"
	"fritter/errs"
)

func (s *Server) registerCommentRoutes(r *mux.Router) {
	// Get comments: all of them, those of a user with ?user=handle,
	// or those directly on a freet or comment with ?target=id[&kind=freet|comment].
	r.HandleFunc("/comments", s.handleGetComments).Methods("GET")

	// Count the comments directly on a freet or comment.
	r.HandleFunc("/comments/count", s.handleCountComments).Methods("GET")

	// Comment on a freet or comment.
	r.HandleFunc("/comments", s.handleCreateComment).Methods("POST")

	// Delete an existing comment. Replies to it stay.
	r.HandleFunc("/comments/{id}", s.handleDeleteComment).Methods("DELETE")
}

// handleGetComments handles the route "GET /api/comments".
func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	var (
		comments []domain.Comment
		err      error
	)
	q := r.URL.Query()
	switch {
	case q.Get("target") != "":
		var target domain.Target
		if target, err = s.targetFromQuery(r); err == nil {
			comments, err = s.agg.ThreadFor(r.Context(), target)
		}
	case q.Get("user") != "":
		comments, err = s.cs.FindAllByUser(r.Context(), q.Get("user"))
	default:
		comments, err = s.cs.FindAll(r.Context())
	}
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	res, err := s.agg.CommentResponses(r.Context(), comments)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, res)
}

// handleCountComments handles the route "GET /api/comments/count".
func (s *Server) handleCountComments(w http.ResponseWriter, r *http.Request) {
	target, err := s.targetFromQuery(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	count, err := s.agg.CountComments(r.Context(), target)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, countResponse{Target: target.ID, Count: count})
}

// handleCreateComment handles the route "POST /api/comments".
// It reads {target, content} from the json body and comments as the logged in user.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Target  string `json:"target"`
		Content string `json:"content"`
	}
	if err := decode(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	comment, err := s.cs.Create(r.Context(), body.Target, body.Content)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	res, err := s.agg.CommentResponse(r.Context(), comment)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, res)
}

// handleDeleteComment handles the route "DELETE /api/comments/{id}".
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.cs.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, messageResponse{Message: "Your comment was deleted successfully."})
}
