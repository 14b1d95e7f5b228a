package query

import (
	"github.com/roach88/hearth/internal/record"
)

// Filter is one conjunctive filter expression. Zero-valued constraint
// fields are unconstrained. Multiple filters in one query are
// disjunctive: a record matches the query if it matches any filter.
type Filter struct {
	IDs     []string            `json:"ids,omitempty"`
	Kinds   []int               `json:"kinds,omitempty"`
	Authors []string            `json:"authors,omitempty"`
	Tags    map[string][]string `json:"tags,omitempty"` // tag name -> accepted first values
	Since   int64               `json:"since,omitempty"`
	Until   int64               `json:"until,omitempty"`
	Limit   int                 `json:"limit,omitempty"`
}

// Match reports whether a record satisfies every constraint of the
// filter. Limit is a fetch hint, not a match constraint.
func (f Filter) Match(r record.Record) bool {
	if len(f.IDs) > 0 && !containsString(f.IDs, r.ID) {
		return false
	}
	if len(f.Kinds) > 0 && !containsInt(f.Kinds, r.Kind) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, r.Author) {
		return false
	}
	if f.Since > 0 && r.CreatedAt < f.Since {
		return false
	}
	if f.Until > 0 && r.CreatedAt > f.Until {
		return false
	}
	for name, accepted := range f.Tags {
		if !tagMatches(r.Tags, name, accepted) {
			return false
		}
	}
	return true
}

// tagMatches reports whether any tag with the given name has a first
// value in the accepted set. Tags are a multiset: one matching
// occurrence is enough.
func tagMatches(ts record.Tags, name string, accepted []string) bool {
	for _, t := range ts.All(name) {
		if containsString(accepted, t.Value()) {
			return true
		}
	}
	return false
}

// MatchAny reports whether a record satisfies at least one filter.
func MatchAny(filters []Filter, r record.Record) bool {
	for _, f := range filters {
		if f.Match(r) {
			return true
		}
	}
	return false
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func containsInt(xs []int, n int) bool {
	for _, x := range xs {
		if x == n {
			return true
		}
	}
	return false
}
