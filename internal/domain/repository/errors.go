package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an id-based lookup with no match. Implementations wrap it
// so callers can test with errors.Is.
var ErrNotFound = errors.New("record not found")

// FetchError wraps a network or storage failure from a collaborator. The view
// engine classifies these separately from lookup misses: cached data stays
// visible and only the error indicator is raised.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a FetchError for the named operation.
func NewFetchError(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}

// IsFetchError reports whether any error in the chain is a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
