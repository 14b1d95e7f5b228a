package record

import (
	"fmt"

	"github.com/google/uuid"
)

// NewIdentifier generates a fresh "d" identifier for a new addressable
// record. The prefix keeps identifiers greppable per record family
// ("offer-", "request-", "match-").
func NewIdentifier(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// RSVPIdentifier derives the deterministic "d" identifier for one
// author's RSVP to one event, so repeated RSVPs from the same author
// land in the same addressable slot and replace each other.
func RSVPIdentifier(event Coordinate, author string) string {
	return fmt.Sprintf("rsvp-%s:%s-%s", event.Author, event.Identifier, author)
}
