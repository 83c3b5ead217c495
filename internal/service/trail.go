// Package service contains the query logic of the SF Trails API.
// Services decode raw records from a data source, cache the results in
// process, and answer filter, search, and aggregate queries from that cache.
// No transport or storage details live here; services depend on the
// source.DataSource interface only.
package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/thirddot45/sftrails/internal/domain"
	"github.com/thirddot45/sftrails/internal/source"
)

// snapshot is an immutable view of the trail cache. A new snapshot is built
// for every change and published atomically, so readers never lock.
type snapshot struct {
	trails map[string]domain.Trail
	// complete is true once the snapshot holds a full FetchAll result.
	// Individually fetched trails never make a snapshot complete.
	complete bool
}

func (s *snapshot) list() []domain.Trail {
	out := make([]domain.Trail, 0, len(s.trails))
	for _, t := range s.trails {
		out = append(out, t)
	}
	return out
}

var emptySnapshot = &snapshot{trails: map[string]domain.Trail{}}

// Option configures a TrailService.
type Option func(*TrailService)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *TrailService) {
		if log != nil {
			s.log = log
		}
	}
}

// TrailService answers trail queries through a read-through cache in front of
// a source.DataSource. It is safe for concurrent use by multiple goroutines.
// The service never writes to or closes its source.
type TrailService struct {
	src source.DataSource
	log *slog.Logger

	cache atomic.Pointer[snapshot]
	group singleflight.Group

	// mu serializes cache writers and guards the counters below.
	mu sync.Mutex
	// epoch is bumped by ClearCache; work started in an older epoch is
	// returned to its caller but never installed.
	epoch uint64
	// started and installed order bulk refreshes so an older fetch never
	// replaces the result of a newer one.
	started   uint64
	installed uint64
}

// NewTrailService constructs a TrailService reading from src.
func NewTrailService(src source.DataSource, opts ...Option) *TrailService {
	s := &TrailService{src: src, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.cache.Store(emptySnapshot)
	return s
}

// List returns every trail. With useCache set, a complete non-empty cached
// set is returned without contacting the source; otherwise the whole
// collection is re-fetched and replaces the cache. An empty cache is always
// re-fetched. Order is unspecified. The result is always non-nil.
func (s *TrailService) List(ctx context.Context, useCache bool) ([]domain.Trail, error) {
	if useCache {
		if snap := s.cache.Load(); snap.complete && len(snap.trails) > 0 {
			return snap.list(), nil
		}
		// Concurrent cold-cache callers share one fetch. The fetch outlives
		// any single caller; each caller only stops waiting on its own ctx.
		ch := s.group.DoChan("refresh", func() (any, error) {
			return s.refresh(context.WithoutCancel(ctx))
		})
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("service.TrailService.List: %w", ctx.Err())
		case res := <-ch:
			if res.Err != nil {
				return nil, fmt.Errorf("service.TrailService.List: %w", res.Err)
			}
			return res.Val.(*snapshot).list(), nil
		}
	}

	snap, err := s.refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TrailService.List: %w", err)
	}
	return snap.list(), nil
}

// refresh fetches and decodes the whole collection. Any decode failure aborts
// the refresh and leaves the cache untouched.
func (s *TrailService) refresh(ctx context.Context) (*snapshot, error) {
	s.mu.Lock()
	epoch := s.epoch
	s.started++
	seq := s.started
	s.mu.Unlock()

	recs, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	trails := make(map[string]domain.Trail, len(recs))
	for _, rec := range recs {
		t, err := domain.DecodeTrail(rec)
		if err != nil {
			return nil, err
		}
		trails[t.ID] = t
	}
	snap := &snapshot{trails: trails, complete: true}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || seq < s.installed {
		s.log.DebugContext(ctx, "trail cache refresh discarded", "trails", len(trails))
		return snap, nil
	}
	s.installed = seq
	s.cache.Store(snap)
	s.log.DebugContext(ctx, "trail cache refreshed", "trails", len(trails))
	return snap, nil
}

// GetByID returns the trail with the given id. A cached trail is returned
// without contacting the source. On a miss the single record is fetched,
// decoded, and added to the cache; a bulk refresh is never triggered.
// Returns a *domain.TrailNotFoundError (matching domain.ErrNotFound) if the
// source has no such trail.
func (s *TrailService) GetByID(ctx context.Context, id string) (domain.Trail, error) {
	if t, ok := s.cache.Load().trails[id]; ok {
		return t, nil
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	rec, ok, err := s.src.FetchOne(ctx, id)
	if err != nil {
		return domain.Trail{}, fmt.Errorf("service.TrailService.GetByID: %w", err)
	}
	if !ok {
		return domain.Trail{}, &domain.TrailNotFoundError{ID: id}
	}
	t, err := domain.DecodeTrail(rec)
	if err != nil {
		return domain.Trail{}, fmt.Errorf("service.TrailService.GetByID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch {
		cur := s.cache.Load()
		trails := maps.Clone(cur.trails)
		trails[id] = t
		// A single entry added to an empty set does not make it complete.
		s.cache.Store(&snapshot{trails: trails, complete: cur.complete && len(cur.trails) > 0})
	}
	return t, nil
}

// ListOpen returns trails whose status is open.
func (s *TrailService) ListOpen(ctx context.Context) ([]domain.Trail, error) {
	return s.filter(ctx, "ListOpen", func(t domain.Trail) bool {
		return t.Status == domain.StatusOpen
	})
}

// ListAccessible returns trails that are open or limited.
func (s *TrailService) ListAccessible(ctx context.Context) ([]domain.Trail, error) {
	return s.filter(ctx, "ListAccessible", domain.Trail.IsAccessible)
}

// ListByCondition returns trails in the given surface condition.
func (s *TrailService) ListByCondition(ctx context.Context, c domain.TrailCondition) ([]domain.Trail, error) {
	return s.filter(ctx, "ListByCondition", func(t domain.Trail) bool {
		return t.Condition == c
	})
}

// ListSafeForHiking returns accessible trails that are neither icy nor snowy.
func (s *TrailService) ListSafeForHiking(ctx context.Context) ([]domain.Trail, error) {
	return s.filter(ctx, "ListSafeForHiking", domain.Trail.IsSafeForHiking)
}

// ListByPark returns trails in the named park, compared case-insensitively.
// An unknown park yields an empty slice, not an error.
func (s *TrailService) ListByPark(ctx context.Context, park string) ([]domain.Trail, error) {
	return s.filter(ctx, "ListByPark", func(t domain.Trail) bool {
		return domain.SamePark(t.Park, park)
	})
}

// Search returns the cached trails matching every supplied criterion.
// Zero-value params match every trail.
func (s *TrailService) Search(ctx context.Context, params domain.SearchParams) ([]domain.Trail, error) {
	return s.filter(ctx, "Search", params.Matches)
}

// Summary counts trails by status and condition.
func (s *TrailService) Summary(ctx context.Context) (domain.StatusSummary, error) {
	trails, err := s.List(ctx, true)
	if err != nil {
		return domain.StatusSummary{}, fmt.Errorf("service.TrailService.Summary: %w", err)
	}
	return domain.Summarize(trails), nil
}

// ListParks returns every distinct park name, spelled as in the data, with
// the number of trails in it, sorted by name.
func (s *TrailService) ListParks(ctx context.Context) ([]domain.ParkCount, error) {
	trails, err := s.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("service.TrailService.ListParks: %w", err)
	}

	counts := map[string]int{}
	for _, t := range trails {
		counts[t.Park]++
	}
	parks := make([]domain.ParkCount, 0, len(counts))
	for name, n := range counts {
		parks = append(parks, domain.ParkCount{Name: name, TrailCount: n})
	}
	slices.SortFunc(parks, func(a, b domain.ParkCount) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return parks, nil
}

// ClearCache empties the cache. The next query is a cold start.
func (s *TrailService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.cache.Store(emptySnapshot)
	s.log.Debug("trail cache cleared")
}

func (s *TrailService) filter(ctx context.Context, method string, keep func(domain.Trail) bool) ([]domain.Trail, error) {
	trails, err := s.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("service.TrailService.%s: %w", method, err)
	}
	out := make([]domain.Trail, 0, len(trails))
	for _, t := range trails {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
