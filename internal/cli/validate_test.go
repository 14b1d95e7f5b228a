package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/config"
)

func TestValidateConfig_Defaults(t *testing.T) {
	stdout, _, err := execute(t, "validate", "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "config valid")
	assert.Contains(t, stdout, "wss://relay.damus.io")
}

func TestValidateConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.cue")
	require.NoError(t, os.WriteFile(path, []byte(`query_timeout_ms: 900`), 0o644))

	stdout, _, err := execute(t, "--format", "json", "validate", "config", path)
	require.NoError(t, err)

	var cfg config.Config
	decodeResponse(t, stdout, &cfg)
	assert.Equal(t, 900, cfg.QueryTimeoutMS)
}

func TestValidateConfig_RejectsOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.cue")
	require.NoError(t, os.WriteFile(path, []byte(`query_timeout_ms: 5`), 0o644))

	_, _, err := execute(t, "validate", "config", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateConfig_UsesConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearth.cue")
	require.NoError(t, os.WriteFile(path, []byte(`cache_ttl_seconds: 0`), 0o644))

	stdout, _, err := execute(t, "--config", path, "validate", "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cache ttl: 0s")
}

func TestValidateRecords_AllValid(t *testing.T) {
	valid, err := json.Marshal(gardenDef(t))
	require.NoError(t, err)
	input := writeJSONL(t, string(valid))

	stdout, _, err := execute(t, "--format", "json", "validate", "records", input)
	require.NoError(t, err)

	var report ValidationReport
	decodeResponse(t, stdout, &report)
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 1, report.LinesRead)
}

func TestValidateRecords_ReportsAndFails(t *testing.T) {
	valid := gardenDef(t)
	validJSON, err := json.Marshal(valid)
	require.NoError(t, err)

	tampered := valid
	tampered.Content = "edited"
	tamperedJSON, err := json.Marshal(tampered)
	require.NoError(t, err)

	input := writeJSONL(t, string(validJSON), string(tamperedJSON), "{broken")

	stdout, _, err := execute(t, "validate", "records", input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "1 valid, 1 bad JSON, 1 bad id, 0 bad shape")
}
