// Package record defines the immutable signed-record model that all
// durable application state is expressed in.
//
// A Record is the universal unit of state: groups, calendar events,
// RSVPs, check-ins, discussion notes, service listings, moderation
// labels and direct messages are all records of different kinds,
// published to mutually distrusting relays and reconciled on read.
//
// Records are content-addressed: the ID is the SHA-256 of a canonical
// serialization of the signed fields, so two records with the same ID
// are the same record. Records of an addressable kind (30000-39999)
// additionally form a mutable slot keyed by (kind, author, identifier);
// the newest record for that slot is authoritative and replaces older
// ones wholesale, never field-by-field.
package record
