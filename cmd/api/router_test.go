package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirddot45/sftrails/internal/config"
	"github.com/thirddot45/sftrails/internal/service"
	"github.com/thirddot45/sftrails/internal/source"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trails := service.NewTrailService(source.NewMemorySource(source.SampleRecords()...), service.WithLogger(logger))
	cfg := config.Config{CORSOrigins: []string{"http://localhost:3000"}}
	return newRouter(cfg, logger, trails)
}

func TestRouter_ServesTrails(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trails", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trails"`)
}

// TestRouter_OversizedBodyRejected verifies the body limit is part of the
// served chain: a GET advertising more than maxBodyBytes never reaches a
// handler, while the same route without a body succeeds.
func TestRouter_OversizedBodyRejected(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{"/health", "/api/v1/trails"} {
		big := strings.NewReader(strings.Repeat("x", maxBodyBytes+1))
		req := httptest.NewRequest(http.MethodGet, target, big)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, target)

		req = httptest.NewRequest(http.MethodGet, target, strings.NewReader("{}"))
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestRouter_CORSAllowedOrigin(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
