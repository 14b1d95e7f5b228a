package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

var picnic = record.Coordinate{Kind: record.KindCalendarEvent, Author: "host", Identifier: "picnic"}

func rsvp(id, author, status string, createdAt int64) record.Record {
	return record.Record{
		ID: id, Author: author, CreatedAt: createdAt,
		Kind: record.KindRSVP,
		Tags: record.Tags{
			record.NewTag("d", record.RSVPIdentifier(picnic, author)),
			record.NewTag("a", picnic.String()),
			record.NewTag("status", status),
		},
	}
}

func checkin(id, author string, createdAt int64) record.Record {
	return record.Record{
		ID: id, Author: author, CreatedAt: createdAt,
		Kind: record.KindAttendance,
		Tags: record.Tags{
			record.NewTag("a", picnic.String()),
			record.NewTag("nonce", "1700000000123"),
			record.NewTag("verified_at", "1700000000"),
		},
	}
}

func TestAttendance_Buckets(t *testing.T) {
	rsvps := []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 10),
		rsvp("r2", "bob", record.StatusTentative, 20),
		rsvp("r3", "carol", record.StatusDeclined, 30),
	}

	v := Attendance(picnic, rsvps, nil)
	require.Len(t, v.Going, 1)
	require.Len(t, v.Maybe, 1)
	require.Len(t, v.Declined, 1)
	assert.Empty(t, v.Attended, "no check-ins, nobody attended")
}

func TestAttendance_ChangeOfHeartCollapsesToLatest(t *testing.T) {
	rsvps := []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 10),
		rsvp("r2", "alice", record.StatusDeclined, 20),
	}

	for name, in := range map[string][]record.Record{
		"in order": rsvps,
		"reversed": {rsvps[1], rsvps[0]},
		"doubled":  {rsvps[0], rsvps[1], rsvps[0]},
	} {
		t.Run(name, func(t *testing.T) {
			v := Attendance(picnic, in, nil)
			assert.Empty(t, v.Going)
			require.Len(t, v.Declined, 1)
			assert.Equal(t, "r2", v.Declined[0].ID)
		})
	}
}

func TestAttendance_IntersectionByAuthor(t *testing.T) {
	// Accepted: {alice, bob, carol}. Checked in: {bob, carol, dave}.
	// Attended must be exactly {bob, carol}: declared intent without a
	// check-in is not attendance, and dave's check-in without an
	// accepted RSVP counts for nothing.
	rsvps := []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 10),
		rsvp("r2", "bob", record.StatusAccepted, 20),
		rsvp("r3", "carol", record.StatusAccepted, 30),
	}
	checkins := []record.Record{
		checkin("c1", "bob", 100),
		checkin("c2", "carol", 110),
		checkin("c3", "dave", 120),
	}

	v := Attendance(picnic, rsvps, checkins)
	require.Len(t, v.Attended, 2)
	authors := []string{v.Attended[0].Author, v.Attended[1].Author}
	assert.ElementsMatch(t, []string{"bob", "carol"}, authors)
}

func TestAttendance_TentativeCheckinDoesNotCount(t *testing.T) {
	v := Attendance(picnic,
		[]record.Record{rsvp("r1", "alice", record.StatusTentative, 10)},
		[]record.Record{checkin("c1", "alice", 100)})
	assert.Empty(t, v.Attended, "attendance requires an accepted rsvp")
}

func TestAttendance_NewestFirstWithinBuckets(t *testing.T) {
	v := Attendance(picnic, []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 10),
		rsvp("r2", "bob", record.StatusAccepted, 30),
		rsvp("r3", "carol", record.StatusAccepted, 20),
	}, nil)

	require.Len(t, v.Going, 3)
	assert.Equal(t, "bob", v.Going[0].Author)
	assert.Equal(t, "carol", v.Going[1].Author)
	assert.Equal(t, "alice", v.Going[2].Author)
}

func TestAttendance_ScopedToEvent(t *testing.T) {
	other := record.Record{
		ID: "r9", Author: "alice", CreatedAt: 10,
		Kind: record.KindRSVP,
		Tags: record.Tags{
			record.NewTag("d", "rsvp-other"),
			record.NewTag("a", "31923:host:bbq"),
			record.NewTag("status", record.StatusAccepted),
		},
	}
	v := Attendance(picnic, []record.Record{other}, nil)
	assert.Empty(t, v.Going)
}

func TestStatusOf(t *testing.T) {
	v := Attendance(picnic, []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 10),
	}, nil)
	assert.Equal(t, record.StatusAccepted, v.StatusOf("alice"))
	assert.Equal(t, "", v.StatusOf("stranger"))
}

func TestRSVPDraft(t *testing.T) {
	d := RSVPDraft(picnic, "alice", record.StatusAccepted, "reply-1")
	id, _ := d.Tags.Identifier()
	assert.Equal(t, record.RSVPIdentifier(picnic, "alice"), id)
	assert.Equal(t, picnic.String(), d.Tags.Value("a"))
	assert.Equal(t, "host", d.Tags.Value("p"))
	assert.Equal(t, "reply-1", d.Tags.Value("e"))
	assert.Equal(t, "busy", d.Tags.Value("fb"))

	declined := RSVPDraft(picnic, "alice", record.StatusDeclined, "")
	assert.Equal(t, "", declined.Tags.Value("fb"), "declining does not block the calendar")
	assert.Equal(t, "", declined.Tags.Value("e"))
}
