package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation is a 400 for bad input shape, malformed identifiers and
// quantities exceeding stock.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Unauthorized is a 401 for missing, invalid, expired or revoked credentials.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Forbidden is a 403 for role mismatches.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// NotFound is a 404 for missing documents.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Conflict is a 409 for uniqueness violations (duplicate slug, duplicate email).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Dependency is a 500 for external-service failures. The upstream message is
// passed through to the caller.
func Dependency(message string, err error) *Error {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return New(http.StatusInternalServerError, message, err)
}

// Internal is a 500 for unexpected failures.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// Respond writes err as a JSON error response. Unknown error types are
// masked as 500s so database internals never leak to the caller.
func Respond(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
