// Package relay defines the transport boundary: how record sets are
// fetched from and published to untrusted remote stores.
//
// Everything above this package works on materialized record sets; the
// relay layer's job is to produce those sets and nothing more. Relays
// are interchangeable and unreliable: any relay may be missing records,
// hold stale addressable versions or be unreachable, and correctness
// must come from querying several and reconciling, never from trusting
// one.
//
// The Pool is the only fan-out point. A slow relay never blocks a fast
// one, a failed relay yields its error and an empty contribution, and
// results merge deduplicated by record ID.
package relay
