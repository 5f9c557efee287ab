package transport

import (
	"errors"
	"fmt"
)

// ErrInvalidRoot is returned when the content root cannot be parsed.
var ErrInvalidRoot = errors.New("invalid content root")

// StatusError is a non-success, non-404 HTTP response. It is retryable.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}
