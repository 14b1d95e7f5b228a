// Package signer is the identity boundary.
//
// The reconciliation layer proposes drafts; turning a draft into a
// signed record is the signer's job, and nothing else in the client
// ever sees key material. Signature verification is likewise out of
// scope here: records arrive from relays already signed, and whether a
// signature checks out is the transport/identity subsystem's concern.
package signer

import (
	"context"
	"errors"

	"github.com/roach88/hearth/internal/record"
)

// ErrEncryptionUnsupported is returned when a direct-message operation
// needs encryption but the active signer cannot provide it. The check
// happens before any record is constructed, so an unencryptable
// message never exists even transiently.
var ErrEncryptionUnsupported = errors.New("signer does not support encryption")

// Signer turns drafts into signed records under one identity.
type Signer interface {
	// Author returns the stable public identity records will carry.
	Author() string

	// Sign completes a draft: stamps CreatedAt if unset, computes the
	// content-addressed ID and signs it. The draft itself is not
	// modified.
	Sign(ctx context.Context, d record.Draft) (record.Record, error)
}

// Encrypter is the optional direct-message capability. A Signer
// implementation that can encrypt to a recipient implements this too;
// callers type-assert and fail with ErrEncryptionUnsupported otherwise.
type Encrypter interface {
	Encrypt(ctx context.Context, recipient, plaintext string) (string, error)
	Decrypt(ctx context.Context, counterpart, ciphertext string) (string, error)
}

// EncrypterFor extracts the encryption capability from a signer.
func EncrypterFor(s Signer) (Encrypter, error) {
	if e, ok := s.(Encrypter); ok {
		return e, nil
	}
	return nil, ErrEncryptionUnsupported
}
