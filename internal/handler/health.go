package handler

import "net/http"

// RootResponse describes the API and points at its documentation.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// GetRoot handles GET /.
func (s *Server) GetRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "SF Trails API",
		Version: Version,
		Docs:    "/openapi.yaml",
		Health:  "/health",
	})
}

// GetHealth handles GET /health.
// It returns HTTP 200 with {"status":"healthy"} when the server is running.
// The data source is not contacted.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: Version})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	if len(s.openAPI) == 0 {
		writeJSON(w, http.StatusNotFound, notFoundBody("openapi document not available"))
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(s.openAPI)
}
