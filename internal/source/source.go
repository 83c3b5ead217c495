// Package source contains the trail data sources the service reads from.
// Each backend has its own file; all of them satisfy DataSource and return
// raw domain.Records. Decoding into domain.Trail happens in the service.
package source

import (
	"context"

	"github.com/thirddot45/sftrails/internal/domain"
)

// DataSource supplies raw trail records from some backing store.
// The service layer depends on this interface, not on any backend, which
// allows the service to be unit-tested with an in-memory source or a mock.
type DataSource interface {
	// FetchAll returns every record. An empty store yields an empty,
	// non-nil slice, never an error.
	FetchAll(ctx context.Context) ([]domain.Record, error)

	// FetchOne returns the record with the given id. ok is false when the
	// store confirms the id is absent; absence is not an error.
	FetchOne(ctx context.Context, id string) (rec domain.Record, ok bool, err error)
}

// recordID returns the id key of rec, or "" if it is missing or not a string.
func recordID(rec domain.Record) string {
	id, _ := rec["id"].(string)
	return id
}
