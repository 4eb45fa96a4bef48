// Package errors is the failure taxonomy shared by the CLIs and the dashboard API.
// Each kind carries the HTTP status it is rendered with.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any error of the same kind, whatever its cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of kind carrying err as its cause. The kind itself is never mutated.
func Wrap(kind *Error, err error) *Error {
	return New(kind.Code, kind.Message, err)
}

// Store and run failures
var (
	ErrDatabaseConnection = New(http.StatusServiceUnavailable, "Database connection error", nil)
	ErrDatabaseQuery      = New(http.StatusInternalServerError, "Database query error", nil)
	ErrValidation         = New(http.StatusBadRequest, "Validation error", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
)

// HTTP surface
var (
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// From converts any error to an application error, defaulting to an internal error.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// Respond writes err as {"error": message} with the status of its kind.
// The cause is never exposed to the client.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// ErrorMiddleware renders the last error a handler attached with c.Error
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			Respond(c, c.Errors.Last().Err)
		}
	}
}

// NoRoute answers unknown paths in the same shape as every other error.
func NoRoute(c *gin.Context) {
	Respond(c, ErrNotFound)
}
