package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func reply(id, author, content string, createdAt int64) record.Record {
	return record.Record{
		ID: id, Author: author, CreatedAt: createdAt,
		Kind:    record.KindNote,
		Content: content,
		Tags:    record.Tags{record.NewTag("a", picnic.String()), record.NewTag("e", "root-note")},
	}
}

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		content string
		status  string
		ok      bool
	}{
		{"Count me in!", record.StatusAccepted, true},
		{"yes", record.StatusAccepted, true},
		{"I'll be there", record.StatusAccepted, true},
		{"sounds great \U0001F44D", record.StatusAccepted, true},
		{"maybe, depends on weather", record.StatusTentative, true},
		{"not sure yet", record.StatusTentative, true},
		{"\U0001F914", record.StatusTentative, true},
		{"can't make it, sorry", record.StatusDeclined, true},
		{"no", record.StatusDeclined, true},
		{"❌", record.StatusDeclined, true},
		{"what time does it start?", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.content, func(t *testing.T) {
			status, ok := ClassifyReply(tc.content)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestClassifyReply_WordBoundaries(t *testing.T) {
	_, ok := ClassifyReply("the yesterday session was fun")
	assert.False(t, ok, "'yes' inside 'yesterday' must not match")

	_, ok = ClassifyReply("nothing beats a picnic")
	assert.False(t, ok, "'no' inside 'nothing' must not match")
}

func TestSuggestRSVPs(t *testing.T) {
	replies := []record.Record{
		reply("n1", "alice", "count me in", 10),
		reply("n2", "host", "see you all there, yes!", 20),
		reply("n3", "bob", "what should I bring?", 30),
		reply("n4", "carol", "can't make it", 40),
	}

	got := SuggestRSVPs(replies, "host", AttendanceView{})
	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].Reply.ID)
	assert.Equal(t, record.StatusAccepted, got[0].Status)
	assert.Equal(t, record.StatusDeclined, got[1].Status)
}

func TestSuggestRSVPs_SkipsExistingResponders(t *testing.T) {
	attendance := Attendance(picnic, []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 5),
	}, nil)

	got := SuggestRSVPs([]record.Record{reply("n1", "alice", "count me in", 10)}, "host", attendance)
	assert.Empty(t, got, "a structured rsvp already exists")
}

func TestConvertReply(t *testing.T) {
	r := reply("n1", "alice", "count me in", 10)

	draft, err := ConvertReply(r, "alice", picnic, AttendanceView{})
	require.NoError(t, err)
	assert.Equal(t, record.KindRSVP, draft.Kind)
	assert.Equal(t, record.StatusAccepted, draft.Tags.Status())
	assert.Equal(t, "n1", draft.Tags.Value("e"), "rsvp links back to the source reply")

	// Converting twice against the refreshed view is blocked, so the
	// operation is idempotent at the slot level: the second attempt
	// produces no draft at all.
	after := Attendance(picnic, []record.Record{
		rsvp("r1", "alice", record.StatusAccepted, 20),
	}, nil)
	_, err = ConvertReply(r, "alice", picnic, after)
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestConvertReply_ConsentGates(t *testing.T) {
	r := reply("n1", "alice", "count me in", 10)

	_, err := ConvertReply(r, "host", picnic, AttendanceView{})
	assert.ErrorIs(t, err, ErrNotReplyAuthor, "only the author converts their own words")

	_, err = ConvertReply(reply("n2", "alice", "what time?", 10), "alice", picnic, AttendanceView{})
	assert.ErrorIs(t, err, ErrNoIntentDetected)
}
