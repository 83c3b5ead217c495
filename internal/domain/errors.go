package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested trail does not exist in the
// data source. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDataFetch is matched by every DataFetchError.
var ErrDataFetch = errors.New("data fetch failed")

// ErrInvalidRecord is returned when a raw record from a data source cannot be
// decoded into a Trail (missing key, wrong type, unknown enum value).
var ErrInvalidRecord = errors.New("invalid trail record")

// ErrValidation is returned when caller-supplied input fails validation
// (e.g. an unknown status in a query string).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// TrailNotFoundError reports that a data source confirmed a trail id is absent.
// It matches ErrNotFound via errors.Is.
type TrailNotFoundError struct {
	ID string
}

func (e *TrailNotFoundError) Error() string {
	return fmt.Sprintf("trail not found: %s", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) succeed for a *TrailNotFoundError.
func (e *TrailNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DataFetchError is returned by data sources when the underlying fetch fails
// for any reason other than legitimate absence. Cause is the original error
// and may be nil.
type DataFetchError struct {
	Message string
	Cause   error
}

// NewDataFetchError builds a DataFetchError whose message includes the cause.
func NewDataFetchError(message string, cause error) *DataFetchError {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return &DataFetchError{Message: message, Cause: cause}
}

func (e *DataFetchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *DataFetchError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrDataFetch) succeed for a *DataFetchError.
func (e *DataFetchError) Is(target error) bool {
	return target == ErrDataFetch
}
