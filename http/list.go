package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fritter/crud"
	"fritter/domain"
	"fritter/errs"
)

func (s *Server) registerListRoutes(r *mux.Router) {
	// Get the lists of a creator with ?creator=handle, or those a user subscribed to with ?subscriber=handle.
	r.HandleFunc("/lists", s.handleGetLists).Methods("GET")

	// Get a single list with its freets and subscribers.
	r.HandleFunc("/lists/{id}", s.handleGetList).Methods("GET")

	// Create a new list.
	r.HandleFunc("/lists", s.handleCreateList).Methods("POST")

	// Delete a list.
	r.HandleFunc("/lists/{id}", s.handleDeleteList).Methods("DELETE")

	// Put a freet on a list, or take it off.
	r.HandleFunc("/lists/{id}/freets/{freet_id}", s.handleAddListFreet).Methods("PUT")
	r.HandleFunc("/lists/{id}/freets/{freet_id}", s.handleRemoveListFreet).Methods("DELETE")

	// Subscribe to a list, or unsubscribe from it.
	r.HandleFunc("/lists/{id}/subscribers", s.handleSubscribeList).Methods("PUT")
	r.HandleFunc("/lists/{id}/subscribers", s.handleUnsubscribeList).Methods("DELETE")
}

// listResponse is a List formatted for clients.
type listResponse struct {
	ID          string          `json:"id"`
	Creator     string          `json:"creator"`
	Name        string          `json:"name"`
	Freets      []freetResponse `json:"freets"`
	Subscribers []string        `json:"subscribers"`
	DateCreated string          `json:"dateCreated"`
}

func newListResponse(list *domain.List) listResponse {
	subscribers := make([]string, 0, len(list.Subscribers))
	for _, u := range list.Subscribers {
		subscribers = append(subscribers, u.Username)
	}
	return listResponse{
		ID:          list.ID,
		Creator:     list.Creator.Username,
		Name:        list.Name,
		Freets:      newFreetResponses(list.Freets),
		Subscribers: subscribers,
		DateCreated: crud.FormatDate(list.CreatedAt),
	}
}

// handleGetLists handles the route "GET /api/lists".
func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request) {
	var (
		lists []domain.List
		err   error
	)
	q := r.URL.Query()
	switch {
	case q.Get("creator") != "":
		lists, err = s.lts.ByCreator(r.Context(), q.Get("creator"))
	case q.Get("subscriber") != "":
		lists, err = s.lts.BySubscriber(r.Context(), q.Get("subscriber"))
	default:
		err = errs.Errorf(errs.EINVALID, "A creator or a subscriber is required.")
	}
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	res := make([]listResponse, 0, len(lists))
	for i := range lists {
		res = append(res, newListResponse(&lists[i]))
	}
	respond(w, r, http.StatusOK, res)
}

// handleGetList handles the route "GET /api/lists/{id}".
func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	list, err := s.lts.ByID(r.Context(), mux.Vars(r)["id"])
	s.respondList(w, r, http.StatusOK, list, err)
}

// handleCreateList handles the route "POST /api/lists".
func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := s.decodeValid(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	list, err := s.lts.Create(r.Context(), body.Name)
	s.respondList(w, r, http.StatusCreated, list, err)
}

// handleDeleteList handles the route "DELETE /api/lists/{id}".
func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.lts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, messageResponse{Message: "Your list was deleted successfully."})
}

// handleAddListFreet handles the route "PUT /api/lists/{id}/freets/{freet_id}".
func (s *Server) handleAddListFreet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := s.lts.AddFreet(r.Context(), vars["id"], vars["freet_id"])
	s.respondList(w, r, http.StatusOK, list, err)
}

// handleRemoveListFreet handles the route "DELETE /api/lists/{id}/freets/{freet_id}".
func (s *Server) handleRemoveListFreet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := s.lts.RemoveFreet(r.Context(), vars["id"], vars["freet_id"])
	s.respondList(w, r, http.StatusOK, list, err)
}

// handleSubscribeList handles the route "PUT /api/lists/{id}/subscribers".
func (s *Server) handleSubscribeList(w http.ResponseWriter, r *http.Request) {
	list, err := s.lts.Subscribe(r.Context(), mux.Vars(r)["id"])
	s.respondList(w, r, http.StatusOK, list, err)
}

// handleUnsubscribeList handles the route "DELETE /api/lists/{id}/subscribers".
func (s *Server) handleUnsubscribeList(w http.ResponseWriter, r *http.Request) {
	list, err := s.lts.Unsubscribe(r.Context(), mux.Vars(r)["id"])
	s.respondList(w, r, http.StatusOK, list, err)
}

func (s *Server) respondList(w http.ResponseWriter, r *http.Request, status int, list *domain.List, err error) {
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, status, newListResponse(list))
}
