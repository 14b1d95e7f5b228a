package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "capture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func rec(id string, kind int, author string, createdAt int64, tags ...record.Tag) record.Record {
	return record.Record{
		ID: id, Author: author, CreatedAt: createdAt,
		Kind: kind, Content: "content-" + id, Sig: "sig-" + id, Tags: tags,
	}
}

func TestArchive_RoundTrip(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	in := rec("r1", 1, "alice", 10, record.NewTag("e", "root"), record.NewTag("p", "bob"))
	require.NoError(t, a.Store(ctx, in, "wss://relay.example"))

	got, err := a.Query(ctx, []query.Filter{{IDs: []string{"r1"}}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in, got[0], "tags and signature survive the round trip")
}

func TestArchive_DuplicateStoreIgnored(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	r := rec("r1", 1, "alice", 10)
	require.NoError(t, a.Store(ctx, r, ""))
	require.NoError(t, a.Store(ctx, r, ""))

	n, err := a.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestArchive_DeterministicOrder(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.StoreAll(ctx, []record.Record{
		rec("bbb", 1, "alice", 10),
		rec("aaa", 1, "alice", 10), // same timestamp, smaller id
		rec("ccc", 1, "alice", 30),
	}, ""))

	got, err := a.Query(ctx, []query.Filter{{Kinds: []int{1}}})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "ccc", got[0].ID, "newest first")
	assert.Equal(t, "aaa", got[1].ID, "timestamp tie breaks on id")
	assert.Equal(t, "bbb", got[2].ID)
}

func TestArchive_FilterSemanticsMatchMemoryRelay(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.StoreAll(ctx, []record.Record{
		rec("r1", 31925, "alice", 10, record.NewTag("a", "31923:host:picnic")),
		rec("r2", 31925, "bob", 20, record.NewTag("a", "31923:host:other")),
		rec("r3", 1, "alice", 30),
	}, ""))

	got, err := a.Query(ctx, []query.Filter{{
		Kinds: []int{31925},
		Tags:  map[string][]string{"a": {"31923:host:picnic"}},
	}})
	require.NoError(t, err)
	require.Len(t, got, 1, "tag constraints apply on replay")
	assert.Equal(t, "r1", got[0].ID)
}

func TestArchive_SinceUntilAndLimit(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.StoreAll(ctx, []record.Record{
		rec("r1", 1, "alice", 10),
		rec("r2", 1, "alice", 20),
		rec("r3", 1, "alice", 30),
	}, ""))

	got, err := a.Query(ctx, []query.Filter{{Kinds: []int{1}, Since: 20, Until: 30}})
	require.NoError(t, err)
	assert.Len(t, got, 2, "bounds are inclusive")

	got, err = a.Query(ctx, []query.Filter{{Kinds: []int{1}, Limit: 1}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID, "limit keeps the newest")
}

func TestArchive_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.db")
	ctx := context.Background()

	a, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, a.Store(ctx, rec("r1", 1, "alice", 10), ""))
	require.NoError(t, a.Close())

	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	n, err := b.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
