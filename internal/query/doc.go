// Package query builds the filter expressions a view needs to fetch
// its raw records from relays.
//
// A Filter is a conjunction of constraints (kinds AND authors AND tag
// values); a plan is a small set of filters that is disjunctive across
// filters, mirroring the transport contract. Plans are minimal: each
// view function returns exactly the filters required to materialize
// that view, nothing speculative.
//
// Filters also evaluate locally via Match, which is what the in-memory
// relay and the archive use, so a record set fetched remotely and one
// replayed locally answer a plan identically.
package query
