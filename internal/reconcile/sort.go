package reconcile

import (
	"sort"

	"github.com/roach88/hearth/internal/record"
)

// sortNewestFirst orders records by CreatedAt descending. Ties break on
// lexically smaller ID so a sorted view is deterministic for any
// arrival order of the same set.
func sortNewestFirst(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
}

// sortOldestFirst orders records by CreatedAt ascending, ID tiebreak.
func sortOldestFirst(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
}

// latestPerAuthor keeps each author's most recent record. Addressable
// or not, one author gets one voice in views keyed by identity.
func latestPerAuthor(records []record.Record) []record.Record {
	best := make(map[string]record.Record)
	for _, r := range records {
		cur, ok := best[r.Author]
		if !ok || record.Supersedes(r, cur) {
			best[r.Author] = r
		}
	}
	out := make([]record.Record, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sortNewestFirst(out)
	return out
}
