package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/relay/archive"
	"github.com/roach88/hearth/internal/signer/testsigner"
)

// execute runs the root command with the given args and captures both
// output streams.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// signedAs signs a draft under a fixed author and timestamp.
func signedAs(t *testing.T, author string, createdAt int64, d record.Draft) record.Record {
	t.Helper()
	d.CreatedAt = createdAt
	r, err := testsigner.New(author, nil).Sign(context.Background(), d)
	require.NoError(t, err)
	return r
}

// seedArchive writes records into a fresh capture archive and returns
// its path.
func seedArchive(t *testing.T, records ...record.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.db")
	arch, err := archive.Open(path)
	require.NoError(t, err)
	require.NoError(t, arch.StoreAll(context.Background(), records, "test"))
	require.NoError(t, arch.Close())
	return path
}

// decodeResponse parses the JSON envelope and unmarshals its data
// payload into target.
func decodeResponse(t *testing.T, output string, target any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

func gardenDef(t *testing.T) record.Record {
	t.Helper()
	return signedAs(t, "admin", 100, record.Draft{
		Kind: record.KindGroupDefinition,
		Tags: record.Tags{
			record.NewTag("d", "garden"),
			record.NewTag("name", "Garden Club"),
			record.NewTag("t", "tribe"),
			record.NewTag("p", "alice", "", "moderator"),
		},
	})
}
