package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fritter/crud"
	"fritter/domain"
	"fritter/errs"
)

func (s *Server) registerFreetRoutes(r *mux.Router) {
	// Get all freets, or the freets of one author with ?author=handle.
	r.HandleFunc("/freets", s.handleGetFreets).Methods("GET")

	// Get a single freet.
	r.HandleFunc("/freets/{id}", s.handleGetFreet).Methods("GET")

	// Post a new freet.
	r.HandleFunc("/freets", s.handleCreateFreet).Methods("POST")

	// Delete a freet. Its likes and comments stay.
	r.HandleFunc("/freets/{id}", s.handleDeleteFreet).Methods("DELETE")
}

// freetResponse is a Freet formatted for clients.
type freetResponse struct {
	ID           string `json:"id"`
	Author       string `json:"author"`
	Content      string `json:"content"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}

func newFreetResponse(freet *domain.Freet) freetResponse {
	return freetResponse{
		ID:           freet.ID,
		Author:       freet.Author.Username,
		Content:      freet.Content,
		DateCreated:  crud.FormatDate(freet.CreatedAt),
		DateModified: crud.FormatDate(freet.UpdatedAt),
	}
}

func newFreetResponses(freets []domain.Freet) []freetResponse {
	res := make([]freetResponse, 0, len(freets))
	for i := range freets {
		res = append(res, newFreetResponse(&freets[i]))
	}
	return res
}

// handleGetFreets handles the route "GET /api/freets".
func (s *Server) handleGetFreets(w http.ResponseWriter, r *http.Request) {
	var (
		freets []domain.Freet
		err    error
	)
	if author := r.URL.Query().Get("author"); author != "" {
		freets, err = s.fs.ByAuthor(r.Context(), author)
	} else {
		freets, err = s.fs.All(r.Context())
	}
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, newFreetResponses(freets))
}

// handleGetFreet handles the route "GET /api/freets/{id}".
func (s *Server) handleGetFreet(w http.ResponseWriter, r *http.Request) {
	freet, err := s.fs.ByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, newFreetResponse(freet))
}

// handleCreateFreet handles the route "POST /api/freets".
// It reads {content} from the json body and posts it as the logged in user.
func (s *Server) handleCreateFreet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := decode(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	freet := domain.Freet{Content: body.Content}
	if err := s.fs.Create(r.Context(), &freet); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, newFreetResponse(&freet))
}

// handleDeleteFreet handles the route "DELETE /api/freets/{id}".
func (s *Server) handleDeleteFreet(w http.ResponseWriter, r *http.Request) {
	if err := s.fs.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, messageResponse{Message: "Your freet was deleted successfully."})
}
