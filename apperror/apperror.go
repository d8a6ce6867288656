// Package apperror defines the stable error taxonomy every core component
// normalizes to. Raw storage or crypto errors never cross a package boundary,
// they are attached as causes for logging only.
package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable, client-visible class of a failure.
type Kind string

const (
	Validation     Kind = "validation_error"
	NotFound       Kind = "not_found"
	DuplicateUser  Kind = "duplicate_user"
	BadCredentials Kind = "bad_credentials"
	AlreadyReacted Kind = "already_reacted"
	Unauthorized   Kind = "unauthorized"
	Internal       Kind = "internal"
)

// Error carries a kind, a human readable message, and an optional cause. The
// cause is for server side logs, it is never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error keeping the underlying cause for logging.
func Wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind of an error. Anything that is not an *Error is an
// unexpected infra failure and classified Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the client-facing message of an error. Internal failures
// get a fixed message so no storage detail ever leaks outward.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case DuplicateUser, BadCredentials, AlreadyReacted:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
