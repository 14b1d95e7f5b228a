package relay

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
)

// Default per-relay query deadline. Views that pull large discussion
// or message backlogs use LongQueryTimeout instead.
const (
	DefaultQueryTimeout = 1500 * time.Millisecond
	LongQueryTimeout    = 5000 * time.Millisecond
)

// Querier fetches the records matching any of the given filters.
// Implementations must honor context cancellation and may return
// partial results alongside a nil error; a relay is a cache of
// someone else's writes, never an authority.
type Querier interface {
	Query(ctx context.Context, filters []query.Filter) ([]record.Record, error)
}

// Publisher accepts a signed record for storage and propagation.
type Publisher interface {
	Publish(ctx context.Context, r record.Record) error
}

// Relay is a named bidirectional endpoint.
type Relay interface {
	Querier
	Publisher
	URL() string
}
