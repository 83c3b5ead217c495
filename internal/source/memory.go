package source

import (
	"context"
	"maps"
	"sync"

	"github.com/thirddot45/sftrails/internal/domain"
)

// MemorySource is an in-process DataSource keyed by trail id.
// It backs development mode and tests. Adding a record whose id already
// exists replaces the old record.
type MemorySource struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

// NewMemorySource constructs a MemorySource seeded with records.
func NewMemorySource(records ...domain.Record) *MemorySource {
	m := &MemorySource{records: make(map[string]domain.Record, len(records))}
	for _, rec := range records {
		m.Add(rec)
	}
	return m
}

// Add upserts rec under its id. The record is copied.
func (m *MemorySource) Add(rec domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordID(rec)] = maps.Clone(rec)
}

// Clear removes every record.
func (m *MemorySource) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.records)
}

// FetchAll returns copies of all stored records.
func (m *MemorySource) FetchAll(_ context.Context) ([]domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, maps.Clone(rec))
	}
	return out, nil
}

// FetchOne returns a copy of the record with the given id.
func (m *MemorySource) FetchOne(_ context.Context, id string) (domain.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(rec), true, nil
}
