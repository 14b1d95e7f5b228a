package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func dmRecord(t *testing.T, from, to string, createdAt int64) record.Record {
	t.Helper()
	return signedAs(t, from, createdAt, record.Draft{
		Kind:    record.KindDirectMessage,
		Tags:    record.Tags{record.NewTag("p", to)},
		Content: "ciphertext",
	})
}

func TestDMConversations_JSON(t *testing.T) {
	path := seedArchive(t,
		dmRecord(t, "local", "bob", 100),
		dmRecord(t, "bob", "local", 200),
		dmRecord(t, "carol", "local", 300),
		dmRecord(t, "bob", "mallory", 400),
	)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "dm", "conversations")
	require.NoError(t, err)

	var conversations []ConversationSummary
	decodeResponse(t, stdout, &conversations)
	require.Len(t, conversations, 2)
	assert.Equal(t, "carol", conversations[0].Counterpart)
	assert.Equal(t, 1, conversations[0].Messages)
	assert.Equal(t, "bob", conversations[1].Counterpart)
	assert.Equal(t, 2, conversations[1].Messages)
}

func TestDMConversations_Empty(t *testing.T) {
	path := seedArchive(t)

	stdout, _, err := execute(t, "--archive", path, "dm", "conversations")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no conversations")
}
