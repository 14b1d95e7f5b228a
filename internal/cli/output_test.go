package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", errors.New("cause")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapExitError(ExitFailure, "derive roster", cause)
	assert.Equal(t, "derive roster: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewExitError(ExitFailure, "derive roster")
	assert.Equal(t, "derive roster", bare.Error())
}

func TestFormatter_SuccessJSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out}
	require.NoError(t, f.Success(map[string]int{"n": 3}))

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data["n"])
}

func TestFormatter_SuccessTextPassesThrough(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out}
	require.NoError(t, f.SuccessText(map[string]int{"n": 3}, "three\n"))
	assert.Equal(t, "three\n", out.String())
}

func TestFormatter_ErrorJSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out}
	require.NoError(t, f.Error(ErrCodeNotFound, "group not found", nil))

	var resp struct {
		Status string    `json:"status"`
		Error  *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "group not found", resp.Error.Message)
}

func TestFormatter_VerboseLogTargetsErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}
	f.VerboseLog("checked %d record(s)", 4)
	assert.Empty(t, out.String())
	assert.Equal(t, "checked 4 record(s)\n", errOut.String())

	quiet := &OutputFormatter{Writer: &out, ErrWriter: &errOut}
	quiet.VerboseLog("never shown")
	assert.Equal(t, "checked 4 record(s)\n", errOut.String())
}
