package handler

import (
	"cmp"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/thirddot45/sftrails/internal/domain"
)

// TrailResponse is the JSON representation of a trail, including its
// derived predicates.
type TrailResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Park            string  `json:"park"`
	Status          string  `json:"status"`
	Condition       string  `json:"condition"`
	LengthMiles     float64 `json:"length_miles"`
	ElevationGainFt int     `json:"elevation_gain_ft"`
	LastUpdated     string  `json:"last_updated"`
	Notes           string  `json:"notes"`
	IsAccessible    bool    `json:"is_accessible"`
	IsSafeForHiking bool    `json:"is_safe_for_hiking"`
}

// TrailListResponse is the body of every endpoint returning several trails.
// FiltersApplied echoes each supported filter, null when not supplied.
type TrailListResponse struct {
	Trails         []TrailResponse    `json:"trails"`
	Total          int                `json:"total"`
	FiltersApplied map[string]*string `json:"filters_applied"`
}

// SummaryResponse is the body of GET /api/v1/trails/summary.
type SummaryResponse struct {
	TotalTrails int            `json:"total_trails"`
	Open        int            `json:"open"`
	Closed      int            `json:"closed"`
	Limited     int            `json:"limited"`
	Unknown     int            `json:"unknown"`
	ByCondition map[string]int `json:"by_condition"`
}

// trailQuery holds the raw query parameters shared by the list and search
// endpoints, before enum and range validation.
type trailQuery struct {
	Q                  *string
	Status             *string
	Condition          *string
	Park               *string
	MaxLengthMiles     *float64
	MaxElevationGainFt *int
}

// ListTrails handles GET /api/v1/trails.
func (s *Server) ListTrails(w http.ResponseWriter, r *http.Request) {
	s.searchTrails(w, r, false)
}

// SearchTrails handles GET /api/v1/trails/search. It accepts the same
// filters as ListTrails plus q, a case-insensitive trail name substring.
func (s *Server) SearchTrails(w http.ResponseWriter, r *http.Request) {
	s.searchTrails(w, r, true)
}

func (s *Server) searchTrails(w http.ResponseWriter, r *http.Request, withName bool) {
	q, err := bindTrailQuery(r.URL.Query(), withName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	params, err := q.searchParams()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	trails, err := s.trails.Search(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filters := map[string]*string{
		"status":                q.Status,
		"condition":             q.Condition,
		"park":                  q.Park,
		"max_length_miles":      formatOptional(q.MaxLengthMiles, func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }),
		"max_elevation_gain_ft": formatOptional(q.MaxElevationGainFt, strconv.Itoa),
	}
	if withName {
		filters["q"] = q.Q
	}
	writeJSON(w, http.StatusOK, newTrailListResponse(trails, filters))
}

// GetTrailSummary handles GET /api/v1/trails/summary.
func (s *Server) GetTrailSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.trails.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	byCondition := make(map[string]int, len(sum.ByCondition))
	for c, n := range sum.ByCondition {
		byCondition[string(c)] = n
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		TotalTrails: sum.Total,
		Open:        sum.Open,
		Closed:      sum.Closed,
		Limited:     sum.Limited,
		Unknown:     sum.Unknown,
		ByCondition: byCondition,
	})
}

// GetTrail handles GET /api/v1/trails/{trailID}.
// Returns 404 if no trail with that id exists.
func (s *Server) GetTrail(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "trailID", chi.URLParam(r, "trailID"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	trail, err := s.trails.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrailResponse(trail))
}

// bindTrailQuery binds the optional filter parameters. Malformed values
// (e.g. a non-numeric maximum) are reported as errors.
func bindTrailQuery(values url.Values, withName bool) (trailQuery, error) {
	var q trailQuery
	bindings := []struct {
		name string
		dest any
	}{
		{"status", &q.Status},
		{"condition", &q.Condition},
		{"park", &q.Park},
		{"max_length_miles", &q.MaxLengthMiles},
		{"max_elevation_gain_ft", &q.MaxElevationGainFt},
	}
	if withName {
		bindings = append(bindings, struct {
			name string
			dest any
		}{"q", &q.Q})
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, values, b.dest); err != nil {
			return trailQuery{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}

	// An empty park or name filter constrains nothing.
	if q.Park != nil && *q.Park == "" {
		q.Park = nil
	}
	if q.Q != nil && *q.Q == "" {
		q.Q = nil
	}
	return q, nil
}

// searchParams validates enum values and ranges and converts the query into
// domain search criteria. Failures wrap domain.ErrValidation.
func (q trailQuery) searchParams() (domain.SearchParams, error) {
	p := domain.SearchParams{Park: q.Park, Name: q.Q}

	if q.Status != nil {
		st, err := domain.ParseTrailStatus(*q.Status)
		if err != nil {
			return domain.SearchParams{}, err
		}
		p.Status = &st
	}
	if q.Condition != nil {
		c, err := domain.ParseTrailCondition(*q.Condition)
		if err != nil {
			return domain.SearchParams{}, err
		}
		p.Condition = &c
	}
	if q.MaxLengthMiles != nil {
		if v := *q.MaxLengthMiles; math.IsNaN(v) || v < 0 {
			return domain.SearchParams{}, fmt.Errorf("%w: max_length_miles must be a number >= 0", domain.ErrValidation)
		}
		p.MaxLengthMiles = q.MaxLengthMiles
	}
	if q.MaxElevationGainFt != nil {
		if *q.MaxElevationGainFt < 0 {
			return domain.SearchParams{}, fmt.Errorf("%w: max_elevation_gain_ft must be >= 0", domain.ErrValidation)
		}
		p.MaxElevationGainFt = q.MaxElevationGainFt
	}
	return p, nil
}

func newTrailListResponse(trails []domain.Trail, filters map[string]*string) TrailListResponse {
	return TrailListResponse{
		Trails:         toTrailResponses(trails),
		Total:          len(trails),
		FiltersApplied: filters,
	}
}

// toTrailResponses converts trails to responses sorted by id. The input
// slice is not modified.
func toTrailResponses(trails []domain.Trail) []TrailResponse {
	out := make([]TrailResponse, 0, len(trails))
	for _, t := range trails {
		out = append(out, toTrailResponse(t))
	}
	slices.SortFunc(out, func(a, b TrailResponse) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func toTrailResponse(t domain.Trail) TrailResponse {
	return TrailResponse{
		ID:              t.ID,
		Name:            t.Name,
		Park:            t.Park,
		Status:          string(t.Status),
		Condition:       string(t.Condition),
		LengthMiles:     t.LengthMiles,
		ElevationGainFt: t.ElevationGainFt,
		LastUpdated:     domain.FormatTimestamp(t.LastUpdated),
		Notes:           t.Notes,
		IsAccessible:    t.IsAccessible(),
		IsSafeForHiking: t.IsSafeForHiking(),
	}
}

func formatOptional[T any](v *T, format func(T) string) *string {
	if v == nil {
		return nil
	}
	s := format(*v)
	return &s
}
