package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/record"
)

// Query replays captured records through relay filter semantics, so an
// archive can stand in for a live relay anywhere a Querier is wanted.
//
// Scalar constraints (kinds, authors, IDs, time bounds) compile to SQL;
// tag constraints apply in Go after the scan because tags live in a
// JSON column. Rows come back ordered created_at DESC, id ASC, so the
// same archive always replays the same sequence.
func (a *Archive) Query(ctx context.Context, filters []query.Filter) ([]record.Record, error) {
	seen := make(map[string]bool)
	var out []record.Record
	for _, f := range filters {
		matched, err := a.queryOne(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, r := range matched {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	return out, nil
}

func (a *Archive) queryOne(ctx context.Context, f query.Filter) ([]record.Record, error) {
	where, args := compileFilter(f)
	q := `
		SELECT id, author, created_at, kind, tags, content, sig
		FROM records
	`
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY created_at DESC, id ASC"

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var matched []record.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		// Tag constraints are checked post-scan; Match re-checks the
		// scalar constraints too, which is cheap and keeps archive
		// replay behavior identical to the in-memory relay.
		if !f.Match(r) {
			continue
		}
		matched = append(matched, r)
		if f.Limit > 0 && len(matched) >= f.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive rows: %w", err)
	}
	return matched, nil
}

// compileFilter renders the filter's scalar constraints as a SQL WHERE
// clause. Tag constraints are deliberately left out.
func compileFilter(f query.Filter) (string, []any) {
	var clauses []string
	var args []any

	if len(f.IDs) > 0 {
		clauses = append(clauses, "id IN ("+placeholders(len(f.IDs))+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}
	if len(f.Kinds) > 0 {
		clauses = append(clauses, "kind IN ("+placeholders(len(f.Kinds))+")")
		for _, k := range f.Kinds {
			args = append(args, k)
		}
	}
	if len(f.Authors) > 0 {
		clauses = append(clauses, "author IN ("+placeholders(len(f.Authors))+")")
		for _, p := range f.Authors {
			args = append(args, p)
		}
	}
	if f.Since > 0 {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, f.Since)
	}
	if f.Until > 0 {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, f.Until)
	}

	return strings.Join(clauses, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func scanRecord(rows *sql.Rows) (record.Record, error) {
	var r record.Record
	var tagsJSON string
	if err := rows.Scan(&r.ID, &r.Author, &r.CreatedAt, &r.Kind, &tagsJSON, &r.Content, &r.Sig); err != nil {
		return record.Record{}, fmt.Errorf("scan record: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
		return record.Record{}, fmt.Errorf("unmarshal tags for %s: %w", r.ID, err)
	}
	return r, nil
}

// Len reports the number of captured records.
func (a *Archive) Len(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
