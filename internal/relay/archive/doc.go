// Package archive captures relay traffic into a local SQLite file and
// replays it as a relay.
//
// An archive is not client state: every record in it is a signed,
// immutable copy of what some relay returned, and replaying the file
// through the reconcilers yields the same views the live fetch did.
// That makes archives useful for offline reads, for debugging a view
// against the exact record set that produced it, and as fixtures for
// the conformance harness.
//
// Writes are idempotent by record ID; capturing the same fetch twice
// changes nothing. Reads are ordered deterministically (created_at
// descending, ID ascending) so replay output is stable across runs.
package archive
