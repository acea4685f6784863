package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindForbidden        Kind = "FORBIDDEN"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindBadRequest       Kind = "BAD_REQUEST"
	KindConflict         Kind = "CONFLICT"
)

var statusByKind = map[Kind]int{
	KindNotFound:         http.StatusNotFound,
	KindUnauthorized:     http.StatusUnauthorized,
	KindForbidden:        http.StatusForbidden,
	KindInvalidOperation: http.StatusBadRequest,
	KindBadRequest:       http.StatusBadRequest,
	KindConflict:         http.StatusConflict,
}

// StatusCode returns the HTTP status code for this kind
func (k Kind) StatusCode() int {
	if code, ok := statusByKind[k]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Error is an error the caller is expected to handle by kind
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NotFound creates a NOT_FOUND error
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Unauthorized creates an UNAUTHORIZED error
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden creates a FORBIDDEN error
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// InvalidOperation creates an INVALID_OPERATION error
func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

// BadRequest creates a BAD_REQUEST error
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Conflict creates a CONFLICT error
func Conflict(resource string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s already exists", resource)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
