package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func picnicEvent(t *testing.T) record.Record {
	t.Helper()
	return signedAs(t, "host", 100, record.Draft{
		Kind: record.KindCalendarEvent,
		Tags: record.Tags{
			record.NewTag("d", "picnic"),
			record.NewTag("title", "Spring Picnic"),
			record.NewTag("start", "1700005000"),
		},
		Content: "Potluck in the park",
	})
}

func TestEventsAttendance_JSON(t *testing.T) {
	event := picnicEvent(t)
	rsvp := signedAs(t, "alice", 200, record.Draft{
		Kind: record.KindRSVP,
		Tags: record.Tags{
			record.NewTag("d", "rsvp-alice"),
			record.NewTag("a", "31923:host:picnic"),
			record.NewTag("status", record.StatusAccepted),
		},
	})
	checkin := signedAs(t, "alice", 300, record.Draft{
		Kind: record.KindAttendance,
		Tags: record.Tags{
			record.NewTag("a", "31923:host:picnic"),
			record.NewTag("nonce", "1700000000123"),
			record.NewTag("verified_at", "1700000300"),
		},
	})
	path := seedArchive(t, event, rsvp, checkin)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "events", "attendance", "31923:host:picnic")
	require.NoError(t, err)

	var summary AttendanceSummary
	decodeResponse(t, stdout, &summary)
	assert.Equal(t, []string{"alice"}, summary.Going)
	assert.Equal(t, []string{"alice"}, summary.Attended)
	assert.Empty(t, summary.Declined)
}

func TestEventsThread_Text(t *testing.T) {
	event := picnicEvent(t)
	reply := signedAs(t, "alice", 200, record.Draft{
		Kind:    record.KindNote,
		Tags:    record.Tags{record.NewTag("a", "31923:host:picnic")},
		Content: "I will bring salad",
	})
	path := seedArchive(t, event, reply)

	stdout, _, err := execute(t, "--archive", path, "events", "thread", "31923:host:picnic")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Potluck in the park")
	assert.Contains(t, stdout, "  alice: I will bring salad")
}

func TestEventsList_Text(t *testing.T) {
	group := gardenDef(t)
	event := signedAs(t, "host", 100, record.Draft{
		Kind: record.KindCalendarEvent,
		Tags: record.Tags{
			record.NewTag("d", "picnic"),
			record.NewTag("title", "Spring Picnic"),
			record.NewTag("start", "1700005000"),
			record.NewTag("a", "34550:admin:garden"),
		},
	})
	path := seedArchive(t, group, event)

	stdout, _, err := execute(t, "--archive", path, "events", "list", "34550:admin:garden")
	require.NoError(t, err)
	assert.Contains(t, stdout, "31923:host:picnic")
	assert.Contains(t, stdout, "Spring Picnic")
}
