package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("task not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("invalid input")
)

// APIError carries the server's {"error": ...} message. It unwraps to one of
// the sentinels above.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.kind
}
