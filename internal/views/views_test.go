package views

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/relay"
	"github.com/roach88/hearth/internal/signer/testsigner"
)

// counting wraps a relay and counts queries, to observe cache hits.
type counting struct {
	*relay.Memory
	queries atomic.Int64
}

func (c *counting) Query(ctx context.Context, filters []query.Filter) ([]record.Record, error) {
	c.queries.Add(1)
	return c.Memory.Query(ctx, filters)
}

type fixture struct {
	service *Service
	relay   *counting
	now     time.Time
}

// newFixture builds a service over one in-memory relay, signing as
// "self", with a warm cache and a pinned clock.
func newFixture(t *testing.T, seed ...record.Record) *fixture {
	t.Helper()
	mem := &counting{Memory: relay.NewMemory("memory://test")}
	mem.Seed(seed...)

	f := &fixture{relay: mem, now: time.Unix(1700000000, 0)}
	pool := relay.NewPool([]relay.Relay{mem}, 0, nil)
	sgn := testsigner.New("self", func() int64 { return f.now.Unix() })
	f.service = NewService(pool, cache.New(time.Minute), sgn, nil).
		WithClock(func() time.Time { return f.now })
	return f
}

func signedAs(t *testing.T, author string, createdAt int64, d record.Draft) record.Record {
	t.Helper()
	d.CreatedAt = createdAt
	r, err := testsigner.New(author, nil).Sign(context.Background(), d)
	if err != nil {
		t.Fatalf("sign fixture record: %v", err)
	}
	return r
}

// groupDefDraft builds a definition draft for admin's "garden" group.
func groupDefDraft(members ...record.Tag) record.Draft {
	tags := record.Tags{record.NewTag("d", "garden"), record.NewTag("name", "Garden")}
	tags = append(tags, members...)
	return record.Draft{Kind: record.KindGroupDefinition, Tags: tags}
}

func memberTag(subject string, role record.Role) record.Tag {
	return record.Member{Subject: subject, Role: role}.Tag()
}

func gardenCoord() record.Coordinate {
	return record.Coordinate{Kind: record.KindGroupDefinition, Author: "admin", Identifier: "garden"}
}

func eventDraft(identifier string) record.Draft {
	return record.Draft{
		Kind: record.KindCalendarEvent,
		Tags: record.Tags{
			record.NewTag("d", identifier),
			record.NewTag("title", "Picnic"),
			record.NewTag("start", "1700001000"),
			record.NewTag("a", gardenCoord().String()),
		},
	}
}

func eventCoord(author, identifier string) record.Coordinate {
	return record.Coordinate{Kind: record.KindCalendarEvent, Author: author, Identifier: identifier}
}
