package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func writeJSONL(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	data := ""
	for _, l := range lines {
		data += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestCaptureImport_CountsValidAndSkipped(t *testing.T) {
	valid := gardenDef(t)
	validJSON, err := json.Marshal(valid)
	require.NoError(t, err)

	tampered := valid
	tampered.Content = "edited after signing"
	tamperedJSON, err := json.Marshal(tampered)
	require.NoError(t, err)

	input := writeJSONL(t, string(validJSON), string(tamperedJSON), "not json at all")
	archivePath := filepath.Join(t.TempDir(), "capture.db")

	stdout, _, err := execute(t, "--archive", archivePath, "--format", "json", "capture", "import", input)
	require.NoError(t, err)

	var result ImportResult
	decodeResponse(t, stdout, &result)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	stdout, _, err = execute(t, "--archive", archivePath, "--format", "json", "capture", "stats")
	require.NoError(t, err)

	var stats ArchiveStats
	decodeResponse(t, stdout, &stats)
	assert.Equal(t, 1, stats.Records)
}

func TestCaptureImport_SkipsInvalidShape(t *testing.T) {
	// Signed and correctly addressed, but a group definition without a
	// d tag has no coordinate and must not be stored.
	bad := signedAs(t, "admin", 100, record.Draft{
		Kind: record.KindGroupDefinition,
		Tags: record.Tags{record.NewTag("name", "No Slot")},
	})
	badJSON, err := json.Marshal(bad)
	require.NoError(t, err)

	input := writeJSONL(t, string(badJSON))
	archivePath := filepath.Join(t.TempDir(), "capture.db")

	stdout, _, err := execute(t, "--archive", archivePath, "--format", "json", "capture", "import", input)
	require.NoError(t, err)

	var result ImportResult
	decodeResponse(t, stdout, &result)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}

func TestCaptureImport_MissingInput(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "capture.db")
	_, _, err := execute(t, "--archive", archivePath, "capture", "import", "/does/not/exist.jsonl")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
