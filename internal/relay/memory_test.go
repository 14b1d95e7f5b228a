package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
)

func rec(id string, kind int, author string, createdAt int64) record.Record {
	return record.Record{ID: id, Author: author, CreatedAt: createdAt, Kind: kind}
}

func TestMemory_QueryMatchesFilters(t *testing.T) {
	m := NewMemory("")
	m.Seed(
		rec("a", 1, "alice", 10),
		rec("b", 4, "alice", 20),
		rec("c", 1, "bob", 30),
	)

	got, err := m.Query(context.Background(), []query.Filter{{Kinds: []int{1}}})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestMemory_LimitNewestFirst(t *testing.T) {
	m := NewMemory("")
	m.Seed(rec("a", 1, "alice", 10), rec("b", 1, "alice", 30), rec("c", 1, "alice", 20))

	got, err := m.Query(context.Background(), []query.Filter{{Kinds: []int{1}, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestMemory_DuplicatePublishIgnored(t *testing.T) {
	m := NewMemory("")
	r := rec("a", 1, "alice", 10)
	require.NoError(t, m.Publish(context.Background(), r))
	require.NoError(t, m.Publish(context.Background(), r))
	assert.Equal(t, 1, m.Len())
}

func TestMemory_UnionDedupesAcrossFilters(t *testing.T) {
	m := NewMemory("")
	m.Seed(rec("a", 1, "alice", 10))

	got, err := m.Query(context.Background(), []query.Filter{
		{Kinds: []int{1}},
		{Authors: []string{"alice"}},
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemory_CancelledContext(t *testing.T) {
	m := NewMemory("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Query(ctx, []query.Filter{{Kinds: []int{1}}})
	assert.ErrorIs(t, err, context.Canceled)
}
