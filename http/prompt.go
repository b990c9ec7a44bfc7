package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fritter/crud"
	"fritter/domain"
	"fritter/errs"
)

func (s *Server) registerPromptRoutes(r *mux.Router) {
	// Get all responses, or those of one user with ?user=handle.
	r.HandleFunc("/prompts", s.handleGetPrompts).Methods("GET")

	// Respond to the prompt.
	r.HandleFunc("/prompts", s.handleCreatePrompt).Methods("POST")

	// Edit a response.
	r.HandleFunc("/prompts/{id}", s.handleUpdatePrompt).Methods("PUT")

	// Delete a response.
	r.HandleFunc("/prompts/{id}", s.handleDeletePrompt).Methods("DELETE")
}

// promptResponse is a Prompt response formatted for clients.
type promptResponse struct {
	ID            string `json:"id"`
	User          string `json:"user"`
	Content       string `json:"content"`
	DateResponded string `json:"dateResponded"`
	DateModified  string `json:"dateModified"`
}

// promptBody is the json body of create and update requests.
type promptBody struct {
	Content string `json:"content"`
}

func newPromptResponse(prompt *domain.Prompt) promptResponse {
	return promptResponse{
		ID:            prompt.ID,
		User:          prompt.User.Username,
		Content:       prompt.Content,
		DateResponded: crud.FormatDate(prompt.CreatedAt),
		DateModified:  crud.FormatDate(prompt.UpdatedAt),
	}
}

// handleGetPrompts handles the route "GET /api/prompts".
func (s *Server) handleGetPrompts(w http.ResponseWriter, r *http.Request) {
	var (
		prompts []domain.Prompt
		err     error
	)
	if user := r.URL.Query().Get("user"); user != "" {
		prompts, err = s.ps.FindAllByUser(r.Context(), user)
	} else {
		prompts, err = s.ps.FindAll(r.Context())
	}
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	res := make([]promptResponse, 0, len(prompts))
	for i := range prompts {
		res = append(res, newPromptResponse(&prompts[i]))
	}
	respond(w, r, http.StatusOK, res)
}

// handleCreatePrompt handles the route "POST /api/prompts".
func (s *Server) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var body promptBody
	if err := decode(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	prompt, err := s.ps.Create(r.Context(), body.Content)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, newPromptResponse(prompt))
}

// handleUpdatePrompt handles the route "PUT /api/prompts/{id}".
func (s *Server) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	var body promptBody
	if err := decode(r, &body); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	prompt, err := s.ps.Update(r.Context(), mux.Vars(r)["id"], body.Content)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, newPromptResponse(prompt))
}

// handleDeletePrompt handles the route "DELETE /api/prompts/{id}".
func (s *Server) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	if err := s.ps.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, messageResponse{Message: "Your response was deleted successfully."})
}
