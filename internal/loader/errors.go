package loader

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoFetchCapability is returned when the content root cannot be
	// fetched over the network at all, e.g. a file:// root.
	ErrNoFetchCapability = errors.New("content root does not support fetching")

	// ErrAvailabilityMissing is returned when moves are loaded before the
	// availability map has been published.
	ErrAvailabilityMissing = errors.New("availability map not loaded, cannot determine move file paths")
)

// LoadError is a fatal failure to load a dataset.
type LoadError struct {
	// Path is the content path that failed, e.g. "data/stats.json".
	Path string

	// Status is the HTTP status of a non-success response, or 0.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("failed to load %s: HTTP %d: %v", e.Path, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("failed to load %s: %d %s", e.Path, e.Status, http.StatusText(e.Status))
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LoadError) Unwrap() error {
	return e.Err
}
