// Package validate holds the per-kind structural predicates that stand
// between raw relay results and the reconcilers.
//
// Every predicate is pure: it checks shape (required tags present,
// enumerated fields inside their closed sets, numeric fields inside
// domain bounds) and nothing else. A record that fails its kind's
// predicate is dropped silently before reconciliation - malformed
// records are a fact of life on open relays, not an error condition.
//
// Validators deliberately do not verify signatures or content-address
// integrity; that belongs to the identity subsystem at the transport
// boundary.
package validate
