package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks connectivity-class failures: the request was
	// sent but no response arrived (timeout, refused connection, DNS).
	// Callers match it with errors.Is to show a "check your connection"
	// message instead of a server one.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks 401 responses. By the time a caller sees it
	// the session has already been torn down.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a server-rejected response: the server answered with a 4xx/5xx
// status and (usually) a JSON body carrying a message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// Is makes errors.Is(err, ErrUnauthorized) true for 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}
