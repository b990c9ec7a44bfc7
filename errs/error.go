package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Application error codes. Every expected failure of a request maps to exactly one of these,
// so that clients can branch on the code instead of parsing messages.
const (
	EUNAUTHENTICATED = "unauthenticated"
	ETARGETNOTFOUND  = "target_not_found"
	ERECORDNOTFOUND  = "record_not_found"
	ENOTFOUND        = "not_found"
	EFORBIDDEN       = "forbidden"
	EEMPTYCONTENT    = "empty_content"
	ECONTENTTOOLONG  = "content_too_long"
	EINVALID         = "invalid"
	ECONFLICT        = "conflict"
	EINTERNAL        = "internal"
)

// Predefined errors that are returned from more than one place.
var (
	Unauthenticated = Errorf(EUNAUTHENTICATED, "You must be logged in to do that.")
)

// codes maps application error codes to http status codes.
var codes = map[string]int{
	EUNAUTHENTICATED: http.StatusUnauthorized,
	ETARGETNOTFOUND:  http.StatusNotFound,
	ERECORDNOTFOUND:  http.StatusNotFound,
	ENOTFOUND:        http.StatusNotFound,
	EFORBIDDEN:       http.StatusForbidden,
	EEMPTYCONTENT:    http.StatusBadRequest,
	ECONTENTTOOLONG:  http.StatusRequestEntityTooLarge,
	EINVALID:         http.StatusBadRequest,
	ECONFLICT:        http.StatusConflict,
	EINTERNAL:        http.StatusInternalServerError,
}

// Error represents an application-specific error. Its Message is safe to show to users.
// Errors that are not of this type are considered internal.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("fritter error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorStatusCode returns the http status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the json body written for every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the code and the user-facing message of a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReturnError writes an error response to the client. Internal errors are logged
// and their details are hidden from the client.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL {
		LogError(r, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	_ = json.NewEncoder(w).Encode(&ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// LogError logs an error along with the request that produced it.
func LogError(r *http.Request, err error) {
	zap.L().Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}
