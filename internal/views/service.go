package views

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/relay"
	"github.com/roach88/hearth/internal/signer"
	"github.com/roach88/hearth/internal/validate"
)

// Service derives views from relay records and publishes signed drafts.
type Service struct {
	pool   *relay.Pool
	long   *relay.Pool // discussion/message backlogs get a longer deadline
	cache  *cache.Cache
	signer signer.Signer
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the orchestrator. A nil cache disables caching, a
// nil logger discards.
func NewService(pool *relay.Pool, c *cache.Cache, sgn signer.Signer, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.New(0)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		pool:   pool,
		long:   pool.WithTimeout(relay.LongQueryTimeout),
		cache:  c,
		signer: sgn,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Self returns the active identity.
func (s *Service) Self() string { return s.signer.Author() }

// fetch runs a plan through a pool and validates the raw result.
// Malformed records are dropped here, before any reconciler sees them.
func (s *Service) fetch(ctx context.Context, pool *relay.Pool, filters []query.Filter) ([]record.Record, error) {
	if res := query.Validate(filters); len(res.Warnings) > 0 {
		for _, w := range res.Warnings {
			s.logger.Debug("query plan warning", "warning", w)
		}
	}
	raw, err := pool.Query(ctx, filters)
	if err != nil {
		return nil, err
	}
	valid := validate.Filter(raw)
	if dropped := len(raw) - len(valid); dropped > 0 {
		s.logger.Debug("dropped malformed records", "count", dropped)
	}
	return valid, nil
}

// publish signs a draft, checks it against its own kind's validator
// and broadcasts it. The validator runs on the signed record so a
// draft the rest of the network would drop never leaves the client.
func (s *Service) publish(ctx context.Context, d record.Draft) (record.Record, error) {
	r, err := s.signer.Sign(ctx, d)
	if err != nil {
		return record.Record{}, fmt.Errorf("sign draft: %w", err)
	}
	if !validate.Record(r) {
		return record.Record{}, ErrInvalidDraft
	}
	if err := s.pool.Publish(ctx, r); err != nil {
		return record.Record{}, fmt.Errorf("publish record: %w", err)
	}
	s.logger.Info("record published", "kind", r.Kind, "id", r.ID)
	return r, nil
}

// cached runs derive through the view cache.
func cached[T any](s *Service, key cache.Key, derive func() (T, error)) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	derived, err := derive()
	if err != nil {
		var zero T
		return zero, err
	}
	s.cache.Put(key, derived)
	return derived, nil
}
