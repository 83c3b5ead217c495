package source_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirddot45/sftrails/internal/domain"
	"github.com/thirddot45/sftrails/internal/source"
	"github.com/thirddot45/sftrails/testutil"
)

// TestPostgresSource_Integration_SeededTrails reads the sample rows inserted
// by the seed migration through a real pool.
func TestPostgresSource_Integration_SeededTrails(t *testing.T) {
	pool := testutil.NewPool(t)
	src := source.NewPostgresSource(pool)
	ctx := context.Background()

	recs, err := src.FetchAll(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(recs), 7)

	rec, ok, err := src.FetchOne(ctx, "trail-001")
	require.NoError(t, err)
	require.True(t, ok)

	trail, err := domain.DecodeTrail(rec)
	require.NoError(t, err)
	assert.Equal(t, "Dipsea Trail", trail.Name)
	assert.Equal(t, 2200, trail.ElevationGainFt)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), trail.LastUpdated)

	_, ok, err = src.FetchOne(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestPostgresSource_Integration_InsideTx verifies rows written in a
// transaction are visible to a source built on that transaction.
func TestPostgresSource_Integration_InsideTx(t *testing.T) {
	pool := testutil.NewPool(t)
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	_, err = tx.Exec(ctx, `INSERT INTO trails (id, name, park, status, condition, length_miles, elevation_gain_ft, last_updated)
		VALUES ('it-001', 'Integration Trail', 'Test Park', 'limited', 'snowy', 1.5, 120, now())`)
	require.NoError(t, err)

	rec, ok, err := source.NewPostgresSource(tx).FetchOne(ctx, "it-001")
	require.NoError(t, err)
	require.True(t, ok)

	trail, err := domain.DecodeTrail(rec)
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionSnowy, trail.Condition)
	assert.Empty(t, trail.Notes)
	assert.False(t, trail.IsSafeForHiking())
}
