package record

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeID returns the content-addressed ID for a record's signed
// fields: the lowercase hex SHA-256 of the canonical serialization.
//
// The ID is a pure function of (author, created_at, kind, tags,
// content); it is the dedup key across relays and the stable handle
// reply tags point at.
func ComputeID(author string, createdAt int64, kind int, tags Tags, content string) string {
	sum := sha256.Sum256(CanonicalBytes(author, createdAt, kind, tags, content))
	return hex.EncodeToString(sum[:])
}

// IDValid reports whether a record's declared ID matches its content.
// Records with a forged ID are malformed: they would break dedup and
// reply addressing, so validators reject them before reconciliation.
func IDValid(r Record) bool {
	return r.ID == ComputeID(r.Author, r.CreatedAt, r.Kind, r.Tags, r.Content)
}
