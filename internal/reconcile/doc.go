// Package reconcile turns raw, unordered, possibly-duplicated record
// sets into stable derived views.
//
// Every function here is a pure merge over a materialized record set:
// no I/O, no clock reads, no mutation of inputs. Conflicts between
// concurrent writers are resolved only here, at read time, under
// explicit rules (latest-writer-wins for addressable slots, role
// precedence for duplicate members, permanent rejections, set
// intersection for attendance). Each merge is idempotent and
// commutative with respect to record arrival order: any permutation of
// the same set yields an identical view.
//
// Absence is always a representable state. An empty roster, an empty
// thread or zero RSVPs is a valid result, never an error.
package reconcile
