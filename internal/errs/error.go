package errs

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the HTTP layer can map it to a status code
// without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unavailable(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}

// KindOf returns the classification of err, or KindUnknown for errors that
// did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the status code the response envelope carries.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		// Store and collaborator failures surface as unavailable.
		return http.StatusServiceUnavailable
	}
}
