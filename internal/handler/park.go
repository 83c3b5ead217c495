package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ParkResponse is a park name with the number of trails in it.
type ParkResponse struct {
	Name       string `json:"name"`
	TrailCount int    `json:"trail_count"`
}

// ParkListResponse is the body of GET /api/v1/parks.
type ParkListResponse struct {
	Parks []ParkResponse `json:"parks"`
	Total int            `json:"total"`
}

// ListParks handles GET /api/v1/parks. Parks are sorted by name.
func (s *Server) ListParks(w http.ResponseWriter, r *http.Request) {
	parks, err := s.trails.ListParks(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]ParkResponse, 0, len(parks))
	for _, p := range parks {
		out = append(out, ParkResponse{Name: p.Name, TrailCount: p.TrailCount})
	}
	writeJSON(w, http.StatusOK, ParkListResponse{Parks: out, Total: len(out)})
}

// ListParkTrails handles GET /api/v1/parks/{parkName}/trails.
// The park name is matched case-insensitively; a park with no trails is
// reported as 404.
func (s *Server) ListParkTrails(w http.ResponseWriter, r *http.Request) {
	var park string
	err := runtime.BindStyledParameterWithOptions("simple", "parkName", chi.URLParam(r, "parkName"), &park,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	trails, err := s.trails.ListByPark(r.Context(), park)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(trails) == 0 {
		writeJSON(w, http.StatusNotFound, notFoundBody("park not found: "+park))
		return
	}
	writeJSON(w, http.StatusOK, newTrailListResponse(trails, map[string]*string{"park": &park}))
}
