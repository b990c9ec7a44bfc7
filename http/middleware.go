package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"fritter/auth"
	"fritter/errs"
)

// checkUser looks for a session token on the request. If it carries a valid one, the user it
// was issued for is stored in the request context. Requests without one pass through
// anonymously; the services decide whether that is enough. Failing to look the user up
// ends the request with an internal error.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.FromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := s.tokens.Validate(token)
		if err != nil {
			s.logger.Debug("rejected session token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByID(r.Context(), userID)
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			// The user was deleted after the token was issued.
			next.ServeHTTP(w, r)
			return
		} else if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.SetUser(r.Context(), user)))
	})
}

// logRequests logs every request once it has been served and records its duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		duration := time.Since(start)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Observe(duration.Seconds())
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("duration", duration),
		)
	})
}

// statusWriter remembers the status code and the size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}
