package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/thirddot45/sftrails/internal/config"
	"github.com/thirddot45/sftrails/internal/handler"
	"github.com/thirddot45/sftrails/internal/middleware"
	"github.com/thirddot45/sftrails/spec"
)

// maxBodyBytes caps request bodies. Every route is a GET, so any sizeable
// body is rejected before a handler or the server reads it.
const maxBodyBytes = 1 << 20

// newRouter assembles the middleware chain and mounts the API routes.
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
// → CORS → body size limit.
func newRouter(cfg config.Config, logger *slog.Logger, trails handler.TrailServicer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	server := handler.NewServer(trails, logger, spec.OpenAPI)
	r.Mount("/", server.Routes())
	return r
}
