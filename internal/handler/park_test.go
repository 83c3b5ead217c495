package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirddot45/sftrails/internal/domain"
	"github.com/thirddot45/sftrails/internal/handler"
)

func TestListParks(t *testing.T) {
	svc := &mockTrailServicer{listParks: func(context.Context) ([]domain.ParkCount, error) {
		return []domain.ParkCount{
			{Name: "Golden Gate National Recreation Area", TrailCount: 3},
			{Name: "McLaren Park", TrailCount: 1},
		}, nil
	}}

	rec := do(t, newHTTPHandler(svc), "/api/v1/parks")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.ParkListResponse](t, rec)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, []handler.ParkResponse{
		{Name: "Golden Gate National Recreation Area", TrailCount: 3},
		{Name: "McLaren Park", TrailCount: 1},
	}, body.Parks)
}

func TestListParks_Empty(t *testing.T) {
	svc := &mockTrailServicer{listParks: func(context.Context) ([]domain.ParkCount, error) {
		return []domain.ParkCount{}, nil
	}}

	rec := do(t, newHTTPHandler(svc), "/api/v1/parks")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"parks":[],"total":0}`, rec.Body.String())
}

func TestListParks_ServiceError(t *testing.T) {
	svc := &mockTrailServicer{listParks: func(context.Context) ([]domain.ParkCount, error) {
		return nil, errors.New("boom")
	}}

	rec := do(t, newHTTPHandler(svc), "/api/v1/parks")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListParkTrails(t *testing.T) {
	var gotPark string
	svc := &mockTrailServicer{listByPark: func(_ context.Context, park string) ([]domain.Trail, error) {
		gotPark = park
		return []domain.Trail{
			trailFixture("trail-003", domain.StatusClosed, domain.ConditionMuddy),
			trailFixture("trail-001", domain.StatusOpen, domain.ConditionDry),
		}, nil
	}}

	rec := do(t, newHTTPHandler(svc), "/api/v1/parks/mount%20tamalpais%20state%20park/trails")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mount tamalpais state park", gotPark)
	body := decode[handler.TrailListResponse](t, rec)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "trail-001", body.Trails[0].ID)
	require.NotNil(t, body.FiltersApplied["park"])
	assert.Equal(t, "mount tamalpais state park", *body.FiltersApplied["park"])
}

func TestListParkTrails_UnknownPark_Returns404(t *testing.T) {
	svc := &mockTrailServicer{listByPark: func(context.Context, string) ([]domain.Trail, error) {
		return []domain.Trail{}, nil
	}}

	rec := do(t, newHTTPHandler(svc), "/api/v1/parks/Yosemite/trails")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Contains(t, body.Error.Message, "Yosemite")
}
