// Package testsigner provides a deterministic Signer for tests and the
// conformance harness.
//
// IDs are real content addresses computed over the canonical form, so
// identity-sensitive behavior (dedup by ID, timestamp tie-breaks,
// thread references) is exercised exactly as in production. Signatures
// are fabricated: nothing in this repository verifies them.
package testsigner

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/hearth/internal/record"
)

// Signer signs drafts under a fixed author with a fixed clock.
type Signer struct {
	author string
	now    func() int64
}

// New builds a test signer for the given author. now supplies
// CreatedAt for drafts that don't set one; nil pins the clock to a
// fixed epoch so tests stay deterministic by default.
func New(author string, now func() int64) *Signer {
	if now == nil {
		now = func() int64 { return 1700000000 }
	}
	return &Signer{author: author, now: now}
}

// Author returns the fixed test identity.
func (s *Signer) Author() string { return s.author }

// Sign completes the draft with a genuine content-addressed ID and a
// fake signature.
func (s *Signer) Sign(_ context.Context, d record.Draft) (record.Record, error) {
	createdAt := d.CreatedAt
	if createdAt == 0 {
		createdAt = s.now()
	}
	id := record.ComputeID(s.author, createdAt, d.Kind, d.Tags, d.Content)
	return record.Record{
		ID:        id,
		Author:    s.author,
		CreatedAt: createdAt,
		Kind:      d.Kind,
		Tags:      d.Tags,
		Content:   d.Content,
		Sig:       "test-sig-" + id[:16],
	}, nil
}

// Encrypt implements the direct-message capability with a reversible
// marker, no real cryptography.
func (s *Signer) Encrypt(_ context.Context, recipient, plaintext string) (string, error) {
	return "enc:" + recipient + ":" + plaintext, nil
}

// Decrypt reverses Encrypt. Real encryption derives a shared secret,
// so either side of a conversation can open either direction; the fake
// mirrors that by stripping the marker regardless of addressee.
func (s *Signer) Decrypt(_ context.Context, _ string, ciphertext string) (string, error) {
	rest, ok := strings.CutPrefix(ciphertext, "enc:")
	if !ok {
		return "", fmt.Errorf("ciphertext missing envelope marker")
	}
	_, payload, ok := strings.Cut(rest, ":")
	if !ok {
		return "", fmt.Errorf("ciphertext missing addressee")
	}
	return payload, nil
}
