package testsigner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/signer"
)

func TestSign_ContentAddressedID(t *testing.T) {
	s := New("alice", nil)
	d := record.Draft{Kind: record.KindNote, Content: "hello"}

	r, err := s.Sign(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "alice", r.Author)
	assert.True(t, record.IDValid(r), "id is a real content address")
	assert.NotEmpty(t, r.Sig)

	again, err := s.Sign(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, r.ID, again.ID, "same draft, same clock, same id")
}

func TestSign_RespectsDraftTimestamp(t *testing.T) {
	s := New("alice", nil)
	r, err := s.Sign(context.Background(), record.Draft{Kind: record.KindNote, CreatedAt: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), r.CreatedAt)
}

func TestEncrypterCapability(t *testing.T) {
	s := New("alice", nil)
	enc, err := signer.EncrypterFor(s)
	require.NoError(t, err)

	ciphertext, err := enc.Encrypt(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", ciphertext)

	plaintext, err := enc.Decrypt(context.Background(), "bob", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "secret", plaintext)
}

// signOnly hides the encryption methods, leaving a bare Signer.
type signOnly struct{ inner *Signer }

func (s signOnly) Author() string { return s.inner.Author() }
func (s signOnly) Sign(ctx context.Context, d record.Draft) (record.Record, error) {
	return s.inner.Sign(ctx, d)
}

func TestEncrypterFor_Unsupported(t *testing.T) {
	_, err := signer.EncrypterFor(signOnly{inner: New("alice", nil)})
	assert.ErrorIs(t, err, signer.ErrEncryptionUnsupported)
}
