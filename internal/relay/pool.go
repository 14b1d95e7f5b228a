package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
)

// QueryError reports one relay's failure during a fan-out. Failures
// are per-relay facts, not fan-out failures: the merged result is
// whatever the responsive relays returned.
type QueryError struct {
	RelayURL string
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("relay %s: %v", e.RelayURL, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ErrAllRelaysFailed means not a single relay produced a result. A
// partial outage is normal operation; a total one is worth surfacing.
var ErrAllRelaysFailed = errors.New("all relays failed")

// Pool fans queries and publishes out to a fixed relay set.
//
// Each relay gets its own deadline, so one stalled endpoint delays the
// merged result by at most the timeout, never indefinitely. Results
// merge deduplicated by record ID; which relay answered first is
// deliberately unobservable above this layer.
type Pool struct {
	relays  []Relay
	timeout time.Duration
	logger  *slog.Logger
}

// NewPool builds a pool over the given relays. A zero timeout gets
// DefaultQueryTimeout; a nil logger discards.
func NewPool(relays []Relay, timeout time.Duration, logger *slog.Logger) *Pool {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pool{relays: relays, timeout: timeout, logger: logger}
}

// WithTimeout returns a pool over the same relays with a different
// per-relay deadline. Used by views that fetch heavy backlogs.
func (p *Pool) WithTimeout(timeout time.Duration) *Pool {
	return &Pool{relays: p.relays, timeout: timeout, logger: p.logger}
}

// Size reports the number of configured relays.
func (p *Pool) Size() int { return len(p.relays) }

// Query fans the filters out to every relay and merges the responses,
// deduplicated by record ID in first-arrival order.
//
// Per-relay errors (timeouts included) are logged and collected; the
// call fails only when the parent context ends or every relay errors.
func (p *Pool) Query(ctx context.Context, filters []query.Filter) ([]record.Record, error) {
	if len(p.relays) == 0 {
		return nil, ErrAllRelaysFailed
	}
	if len(filters) == 0 {
		return []record.Record{}, nil
	}

	type response struct {
		url     string
		records []record.Record
		err     error
	}
	responses := make(chan response, len(p.relays))

	var wg sync.WaitGroup
	for _, r := range p.relays {
		wg.Add(1)
		go func(r Relay) {
			defer wg.Done()
			rctx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()
			records, err := r.Query(rctx, filters)
			responses <- response{url: r.URL(), records: records, err: err}
		}(r)
	}
	go func() {
		wg.Wait()
		close(responses)
	}()

	seen := make(map[string]bool)
	merged := []record.Record{}
	var failures []error

	for resp := range responses {
		if resp.err != nil {
			p.logger.Warn("relay query failed",
				"relay", resp.url, "error", resp.err)
			failures = append(failures, &QueryError{RelayURL: resp.url, Err: resp.err})
			continue
		}
		for _, r := range resp.records {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			merged = append(merged, r)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(failures) == len(p.relays) {
		return nil, errors.Join(append([]error{ErrAllRelaysFailed}, failures...)...)
	}
	return merged, nil
}

// Publish broadcasts a signed record to every relay. Success means at
// least one relay accepted it; refusals elsewhere are logged and
// collected into the error only when every relay refused.
func (p *Pool) Publish(ctx context.Context, r record.Record) error {
	if len(p.relays) == 0 {
		return ErrAllRelaysFailed
	}

	errs := make(chan error, len(p.relays))
	var wg sync.WaitGroup
	for _, rl := range p.relays {
		wg.Add(1)
		go func(rl Relay) {
			defer wg.Done()
			rctx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()
			if err := rl.Publish(rctx, r); err != nil {
				p.logger.Warn("relay publish failed",
					"relay", rl.URL(), "record", r.ID, "error", err)
				errs <- &QueryError{RelayURL: rl.URL(), Err: err}
				return
			}
			errs <- nil
		}(rl)
	}
	wg.Wait()
	close(errs)

	var failures []error
	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		failures = append(failures, err)
	}
	if accepted == 0 {
		return errors.Join(append([]error{ErrAllRelaysFailed}, failures...)...)
	}
	return nil
}
