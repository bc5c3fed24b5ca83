package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth indicates the bearer credential was missing or rejected.
	ErrAuth = errors.New("authentication rejected")
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates the server rejected a create/update as malformed.
	ErrValidation = errors.New("request rejected")
)

// StatusError is returned for non-2xx responses that do not map to one of
// the sentinel errors above.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}
