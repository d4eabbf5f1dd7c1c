// Package apperror defines the error taxonomy shared by all handlers.
// Every failure a handler can surface is one of these types; the HTTP
// boundary renders them through a single path.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an application error.
type Type int

const (
	// TypeInternal is an unexpected failure. Its cause is logged
	// server-side and never shown to the client.
	TypeInternal Type = iota
	// TypeBadRequest is missing or invalid input.
	TypeBadRequest
	// TypeNotFound is a single-entity lookup with no match.
	TypeNotFound
	// TypeConflict is a natural-key collision.
	TypeConflict
)

// Error is an application error with an HTTP status mapping.
type Error struct {
	Type    Type
	Message string
	Err     error
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

// StatusCode maps the error type to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Type {
	case TypeBadRequest:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(message string) *Error {
	return &Error{Type: TypeBadRequest, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

// Internal wraps an unexpected failure. The message shown to clients is
// always generic; err carries the real cause for server-side logging.
func Internal(err error) *Error {
	return &Error{Type: TypeInternal, Message: "Internal Server Error", Err: err}
}

// As extracts an *Error from err's chain, if present.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
