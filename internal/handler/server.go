// Package handler implements the HTTP handlers for the SF Trails API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trail.go, park.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thirddot45/sftrails/internal/domain"
)

// Version is reported by the root and health endpoints.
const Version = "0.1.0"

// TrailServicer defines the trail queries the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without a data source or cache.
type TrailServicer interface {
	GetByID(ctx context.Context, id string) (domain.Trail, error)
	ListByPark(ctx context.Context, park string) ([]domain.Trail, error)
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Trail, error)
	Summary(ctx context.Context) (domain.StatusSummary, error)
	ListParks(ctx context.Context) ([]domain.ParkCount, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trails  TrailServicer
	log     *slog.Logger
	openAPI []byte
}

// NewServer constructs the Server. openAPI is served verbatim at
// /openapi.yaml; pass nil to disable the route's body. A nil logger falls
// back to slog.Default().
func NewServer(trails TrailServicer, log *slog.Logger, openAPI []byte) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trails: trails, log: log, openAPI: openAPI}
}

// Routes returns a chi router with every API route registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.GetRoot)
	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/trails", func(r chi.Router) {
			r.Get("/", s.ListTrails)
			r.Get("/search", s.SearchTrails)
			r.Get("/summary", s.GetTrailSummary)
			r.Get("/{trailID}", s.GetTrail)
		})
		r.Route("/parks", func(r chi.Router) {
			r.Get("/", s.ListParks)
			r.Get("/{parkName}/trails", s.ListParkTrails)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: ErrorDetail{Code: "method_not_allowed", Message: "method not allowed"},
		})
	})

	return r
}
