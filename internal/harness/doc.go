// Package harness runs declarative conformance scenarios against the
// reconciliation layer.
//
// A scenario is a YAML file: a relay pre-seeded with signed records, an
// active identity, a pinned clock, and a scripted sequence of view
// derivations and write operations. The output of every step is
// snapshotted and compared against a golden file, so reconciliation
// semantics (latest-wins, rejection permanence, moderation filtering,
// check-in intersection) are pinned end to end.
//
// # Scenario Format
//
//	name: join-approval
//	description: "What this scenario pins down"
//	self: admin
//	now: 1700000000
//	records:
//	  - ref: garden
//	    author: admin
//	    created_at: 100
//	    kind: 34550
//	    tags:
//	      - [d, garden]
//	  - author: alice
//	    created_at: 200
//	    kind: 9021
//	    tags:
//	      - [h, "admin:garden"]
//	    content: let me in
//	steps:
//	  - view: pending_requests
//	    group: "34550:admin:garden"
//	  - op: approve_join
//	    group: "34550:admin:garden"
//	    subject: alice
//
// Seed records are signed at load time with the deterministic test
// signer, so IDs are genuine content addresses and identity-sensitive
// behavior (dedup, tie-breaks, thread references) is exercised for
// real. Steps reference seeded or published records by their ref name;
// the harness resolves refs to record IDs so scenario files never
// contain hashes.
//
// # Determinism
//
// Scenarios run against a single in-memory relay with caching disabled
// and the service clock pinned to the scenario's "now". Identical runs
// produce identical snapshots, which is what makes golden comparison
// possible.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
package harness
