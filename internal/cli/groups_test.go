package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func TestGroupsList_JSON(t *testing.T) {
	path := seedArchive(t, gardenDef(t))

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "groups", "list")
	require.NoError(t, err)

	var groups []GroupSummary
	decodeResponse(t, stdout, &groups)
	require.Len(t, groups, 1)
	assert.Equal(t, "34550:admin:garden", groups[0].Coordinate)
	assert.Equal(t, "Garden Club", groups[0].Name)
	assert.Equal(t, 1, groups[0].Members)
}

func TestGroupsShow_Text(t *testing.T) {
	path := seedArchive(t, gardenDef(t))

	stdout, _, err := execute(t, "--archive", path, "groups", "show", "34550:admin:garden")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Garden Club")
	assert.Contains(t, stdout, "alice  moderator")
}

func TestGroupsShow_NotFound(t *testing.T) {
	path := seedArchive(t)

	_, _, err := execute(t, "--archive", path, "groups", "show", "34550:admin:ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestGroupsShow_BadCoordinate(t *testing.T) {
	path := seedArchive(t)

	_, _, err := execute(t, "--archive", path, "groups", "show", "not-a-coordinate")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGroupsPending_JSON(t *testing.T) {
	request := signedAs(t, "bob", 200, record.Draft{
		Kind:    record.KindJoinRequest,
		Tags:    record.Tags{record.NewTag("h", "admin:garden")},
		Content: "let me in",
	})
	path := seedArchive(t, gardenDef(t), request)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "groups", "pending", "34550:admin:garden")
	require.NoError(t, err)

	var pending []PendingRequest
	decodeResponse(t, stdout, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Author)
	assert.Equal(t, "let me in", pending[0].Message)
}
