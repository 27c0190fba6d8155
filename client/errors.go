package client

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a by-id fetch hit a plan that does not exist
// on the server
var ErrNotFound = errors.New("plan not found")

// RequestError represents a non-success HTTP status from the server
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// TransportError represents a network-level failure: the request never
// produced an HTTP response
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err resulted from a 404 by-id fetch
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
