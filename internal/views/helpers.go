package views

import (
	"sort"
	"strconv"

	"github.com/roach88/hearth/internal/record"
)

// pickLatest selects the winning record for one addressable slot.
func pickLatest(slot record.Coordinate, records []record.Record) (record.Record, bool) {
	var winner record.Record
	found := false
	for _, r := range records {
		coord, ok := record.CoordinateOf(r)
		if !ok || coord != slot {
			continue
		}
		if !found || record.Supersedes(r, winner) {
			winner = r
			found = true
		}
	}
	return winner, found
}

// sortEventsByStart orders calendar events by their start tag,
// soonest first. Events without a parseable start sort last.
func sortEventsByStart(events []record.Record) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := eventStart(events[i]), eventStart(events[j])
		if a != b {
			if a == 0 {
				return false
			}
			if b == 0 {
				return true
			}
			return a < b
		}
		return events[i].ID < events[j].ID
	})
}

func eventStart(r record.Record) int64 {
	n, err := strconv.ParseInt(r.Tags.Value("start"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func formatUnix(n int64) string {
	return strconv.FormatInt(n, 10)
}
