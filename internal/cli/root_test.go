package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "checkin", "code")
	assert.ErrorContains(t, err, "invalid format")
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "hearth")
	assert.Contains(t, stdout, "groups")
	assert.Contains(t, stdout, "replay")
}

func TestCommands_RequireArchive(t *testing.T) {
	_, _, err := execute(t, "groups", "list")
	assert.ErrorContains(t, err, "no capture archive")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
