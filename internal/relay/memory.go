package relay

import (
	"context"
	"sort"
	"sync"

	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
)

// Memory is an in-process relay: a mutex-guarded record store honoring
// the same filter semantics as a remote relay. It backs the test
// harness and the replay path, so its matching behavior is the
// reference for what a conforming relay returns.
type Memory struct {
	url string

	mu      sync.RWMutex
	records []record.Record
	byID    map[string]bool
}

// NewMemory returns an empty in-process relay.
func NewMemory(url string) *Memory {
	if url == "" {
		url = "memory://local"
	}
	return &Memory{url: url, byID: make(map[string]bool)}
}

// URL identifies the relay in logs and error reports.
func (m *Memory) URL() string { return m.url }

// Publish stores a record. Duplicate IDs are accepted and ignored, the
// same way a remote relay treats a re-broadcast.
func (m *Memory) Publish(ctx context.Context, r record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byID[r.ID] {
		return nil
	}
	m.byID[r.ID] = true
	m.records = append(m.records, r)
	return nil
}

// Seed stores records without a context, for test setup.
func (m *Memory) Seed(records ...record.Record) {
	for _, r := range records {
		_ = m.Publish(context.Background(), r)
	}
}

// Query returns the records matching any filter. Each filter's Limit
// caps that filter's contribution, newest records first, matching
// standard relay behavior; the union is deduplicated by ID.
func (m *Memory) Query(ctx context.Context, filters []query.Filter) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var out []record.Record
	for _, f := range filters {
		for _, r := range m.matchOne(f) {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) matchOne(f query.Filter) []record.Record {
	var matched []record.Record
	for _, r := range m.records {
		if f.Match(r) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt != matched[j].CreatedAt {
			return matched[i].CreatedAt > matched[j].CreatedAt
		}
		return matched[i].ID < matched[j].ID
	})
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
