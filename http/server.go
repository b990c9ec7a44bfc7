package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fritter/auth"
	"fritter/crud"
	"fritter/errs"
)

// Server provides the http functionality of this app, namely routing, request handling,
// and middleware. It maps requests to the crud services and their results to json responses.
// Authorization happens in the crud services; the server only establishes who the caller is.
type Server struct {
	router   *mux.Router
	handler  http.Handler
	logger   *zap.Logger
	tokens   *auth.Tokens
	validate *validator.Validate

	us  *crud.UserService
	fs  *crud.FreetService
	ls  *crud.LikeService
	cs  *crud.CommentService
	ps  *crud.PromptService
	lts *crud.ListService
	res *crud.Resolver
	agg *crud.Aggregator
}

// NewServer returns a new instance of the server, registers all routes and gives their
// handlers access to the services passed in. Requests from clientURL are allowed by CORS.
func NewServer(logger *zap.Logger, tokens *auth.Tokens, clientURL string, services *crud.Services) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		logger:   logger,
		tokens:   tokens,
		validate: validator.New(),
		us:       services.User,
		fs:       services.Freet,
		ls:       services.Like,
		cs:       services.Comment,
		ps:       services.Prompt,
		lts:      services.List,
		res:      services.Resolver,
		agg:      services.Aggregator,
	}

	api := s.router.PathPrefix("/api").Subrouter()
	s.registerAuthRoutes(api)
	s.registerFreetRoutes(api)
	s.registerLikeRoutes(api)
	s.registerCommentRoutes(api)
	s.registerPromptRoutes(api)
	s.registerListRoutes(api)
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs.ReturnError(w, r, errs.Errorf(errs.ENOTFOUND, "There is nothing at %s.", r.URL.Path))
	})
	s.router.NotFoundHandler = notFound
	api.NotFoundHandler = notFound

	// Middleware that runs on every matched route.
	s.router.Use(s.logRequests, setContentTypeJSON, s.checkUser)

	s.handler = cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(s.router)
	return s
}

// ServeHTTP lets the server handle requests directly, CORS included.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	s.logger.Info("listening", zap.Int("port", port))
	return srv.ListenAndServe()
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// decode parses the json body of a request into v. Bodies that aren't valid json are
// reported as EINVALID.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Errorf(errs.EINVALID, "Invalid json body.")
	}
	return nil
}

// decodeValid parses the json body of a request into v and checks it against its validation tags.
func (s *Server) decodeValid(r *http.Request, v interface{}) error {
	if err := decode(r, v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		return errs.Errorf(errs.EINVALID, "Required fields are missing.")
	}
	return nil
}

// respond writes v as the json body of a response with the given status code.
func respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errs.LogError(r, err)
	}
}

// messageResponse is the body of responses that only acknowledge an action.
type messageResponse struct {
	Message string `json:"message"`
}
