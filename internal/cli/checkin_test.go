package cli

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

var codePattern = regexp.MustCompile(`^\d{13}$`)

func TestCheckinCode_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "checkin", "code")
	require.NoError(t, err)

	var payload CheckinCode
	decodeResponse(t, stdout, &payload)
	assert.Regexp(t, codePattern, payload.Code)
	assert.NotEmpty(t, payload.RotatesIn)
}

func TestCheckinCode_Text(t *testing.T) {
	stdout, _, err := execute(t, "checkin", "code")
	require.NoError(t, err)
	assert.Regexp(t, `\d{13} \(rotates every `, stdout)
}

func TestCheckinSubmit_RecordsAttendance(t *testing.T) {
	rsvp := signedAs(t, "alice", 200, record.Draft{
		Kind: record.KindRSVP,
		Tags: record.Tags{
			record.NewTag("d", "rsvp-alice"),
			record.NewTag("a", "31923:host:picnic"),
			record.NewTag("status", record.StatusAccepted),
		},
	})
	path := seedArchive(t, picnicEvent(t), rsvp)

	stdout, _, err := execute(t, "--archive", path, "--as", "alice",
		"checkin", "submit", "31923:host:picnic", "1700000000123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "checked in to 31923:host:picnic")

	stdout, _, err = execute(t, "--archive", path, "--format", "json", "events", "attendance", "31923:host:picnic")
	require.NoError(t, err)

	var summary AttendanceSummary
	decodeResponse(t, stdout, &summary)
	assert.Contains(t, summary.Attended, "alice")
}

func TestCheckinSubmit_UnknownEvent(t *testing.T) {
	path := seedArchive(t)

	_, _, err := execute(t, "--archive", path, "checkin", "submit", "31923:host:ghost", "1700000000123")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
