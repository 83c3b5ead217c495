package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirddot45/sftrails/internal/domain"
)

func trailWith(status domain.TrailStatus, condition domain.TrailCondition) domain.Trail {
	return domain.Trail{
		ID:              "t1",
		Name:            "Test Trail",
		Park:            "Test Park",
		Status:          status,
		Condition:       condition,
		LengthMiles:     1.0,
		ElevationGainFt: 100,
		LastUpdated:     time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestTrail_IsAccessible(t *testing.T) {
	cases := map[domain.TrailStatus]bool{
		domain.StatusOpen:    true,
		domain.StatusLimited: true,
		domain.StatusClosed:  false,
		domain.StatusUnknown: false,
	}
	for status, want := range cases {
		t.Run(string(status), func(t *testing.T) {
			assert.Equal(t, want, trailWith(status, domain.ConditionDry).IsAccessible())
		})
	}
}

func TestTrail_IsSafeForHiking(t *testing.T) {
	assert.True(t, trailWith(domain.StatusOpen, domain.ConditionDry).IsSafeForHiking())
	assert.True(t, trailWith(domain.StatusLimited, domain.ConditionMuddy).IsSafeForHiking())
	assert.False(t, trailWith(domain.StatusOpen, domain.ConditionIcy).IsSafeForHiking())
	assert.False(t, trailWith(domain.StatusOpen, domain.ConditionSnowy).IsSafeForHiking())
	assert.False(t, trailWith(domain.StatusClosed, domain.ConditionDry).IsSafeForHiking())
}

// TestTrail_PredicatesOverAllCombinations checks both predicates against their
// definitions for every status and condition pair.
func TestTrail_PredicatesOverAllCombinations(t *testing.T) {
	for _, s := range domain.TrailStatuses {
		for _, c := range domain.TrailConditions {
			tr := trailWith(s, c)

			accessible := s == domain.StatusOpen || s == domain.StatusLimited
			hazardous := c == domain.ConditionIcy || c == domain.ConditionSnowy

			assert.Equal(t, accessible, tr.IsAccessible(), "%s/%s", s, c)
			assert.Equal(t, accessible && !hazardous, tr.IsSafeForHiking(), "%s/%s", s, c)
			if tr.IsSafeForHiking() {
				assert.True(t, tr.IsAccessible(), "safe implies accessible for %s/%s", s, c)
			}
		}
	}
}

func TestParseTrailStatus(t *testing.T) {
	got, err := domain.ParseTrailStatus("open")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, got)

	got, err = domain.ParseTrailStatus("closed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, got)

	_, err = domain.ParseTrailStatus("OPEN")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTrailCondition(t *testing.T) {
	for _, c := range domain.TrailConditions {
		got, err := domain.ParseTrailCondition(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := domain.ParseTrailCondition("slushy")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTrailNotFoundError(t *testing.T) {
	err := error(&domain.TrailNotFoundError{ID: "trail-123"})

	assert.Contains(t, err.Error(), "trail-123")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var nf *domain.TrailNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "trail-123", nf.ID)
}

func TestDataFetchError(t *testing.T) {
	original := errors.New("connection refused")
	err := domain.NewDataFetchError("failed to fetch trails", original)

	assert.Equal(t, "failed to fetch trails: connection refused", err.Error())
	assert.ErrorIs(t, err, domain.ErrDataFetch)
	assert.ErrorIs(t, err, original)
	assert.Same(t, original, err.Cause)
}

func TestDataFetchError_NoCause(t *testing.T) {
	err := domain.NewDataFetchError("fetch failed", nil)

	assert.Equal(t, "fetch failed", err.Error())
	assert.Nil(t, err.Cause)
	assert.Nil(t, errors.Unwrap(err))
}
