package source

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/thirddot45/sftrails/internal/domain"
)

// querier is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn,
// pgx.Tx and pgxmock pools. The source only reads.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads trails from the trails table created by the
// migrations package. It does not own the pool; the caller closes it.
type PostgresSource struct {
	db querier
}

// NewPostgresSource constructs a PostgresSource over db.
// In production pass *pgxpool.Pool; in tests pass a pgxmock pool or a pgx.Tx.
func NewPostgresSource(db querier) *PostgresSource {
	return &PostgresSource{db: db}
}

const trailColumns = `id, name, park, status, condition, length_miles, elevation_gain_ft, last_updated, notes`

// FetchAll returns every row of the trails table ordered by id.
func (p *PostgresSource) FetchAll(ctx context.Context) ([]domain.Record, error) {
	const q = `SELECT ` + trailColumns + ` FROM trails ORDER BY id`

	rows, err := p.db.Query(ctx, q)
	if err != nil {
		return nil, domain.NewDataFetchError("failed to fetch trails", err)
	}
	defer rows.Close()

	recs := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, domain.NewDataFetchError("failed to fetch trails: scan", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDataFetchError("failed to fetch trails: rows", err)
	}
	return recs, nil
}

// FetchOne returns the row with the given id, or ok == false if none exists.
func (p *PostgresSource) FetchOne(ctx context.Context, id string) (domain.Record, bool, error) {
	const q = `SELECT ` + trailColumns + ` FROM trails WHERE id = $1`

	rec, err := scanRecord(p.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, domain.NewDataFetchError("failed to fetch trail "+id, err)
	}
	return rec, true, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanRecord to
// be reused for QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord maps a single trails row into a raw Record.
func scanRecord(s scanner) (domain.Record, error) {
	var (
		id, name, park, status, condition, notes string
		lengthMiles                              float64
		elevationGainFt                          int64
		lastUpdated                              time.Time
	)

	err := s.Scan(&id, &name, &park, &status, &condition, &lengthMiles, &elevationGainFt, &lastUpdated, &notes)
	if err != nil {
		return nil, err
	}

	return domain.Record{
		"id":                id,
		"name":              name,
		"park":              park,
		"status":            status,
		"condition":         condition,
		"length_miles":      lengthMiles,
		"elevation_gain_ft": elevationGainFt,
		"last_updated":      lastUpdated,
		"notes":             notes,
	}, nil
}
