package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/hearth/internal/record"
)

// Store inserts one record. Uses ON CONFLICT(id) DO NOTHING for
// idempotency - a record ID is a content address, so a duplicate ID
// is by definition the same record and is silently ignored.
//
// sourceURL records which relay the record came from, for provenance
// when debugging divergent relay state.
func (a *Archive) Store(ctx context.Context, r record.Record, sourceURL string) error {
	tagsJSON, err := json.Marshal(r.Tags)
	if err != nil {
		return fmt.Errorf("store record: marshal tags: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO records
		(id, author, created_at, kind, tags, content, sig, source_url, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Author,
		r.CreatedAt,
		r.Kind,
		string(tagsJSON),
		r.Content,
		r.Sig,
		sourceURL,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// StoreAll captures a whole fetch result. Duplicates inside the batch
// or against prior captures are ignored; the first error aborts.
func (a *Archive) StoreAll(ctx context.Context, records []record.Record, sourceURL string) error {
	for _, r := range records {
		if err := a.Store(ctx, r, sourceURL); err != nil {
			return err
		}
	}
	return nil
}

// Publish lets the archive stand in as a relay sink during capture.
func (a *Archive) Publish(ctx context.Context, r record.Record) error {
	return a.Store(ctx, r, "")
}

// URL identifies the archive in logs when it substitutes for a relay.
func (a *Archive) URL() string { return "archive://local" }
