package record

import (
	"encoding/json"
	"fmt"
)

// Record is an immutable signed record as it appears on the wire.
//
// The JSON field names are part of the relay wire contract and must be
// preserved bit-exactly for interop with other clients.
type Record struct {
	ID        string `json:"id"`         // Content-addressed hash (see ComputeID)
	Author    string `json:"pubkey"`     // Stable identity of the signer
	CreatedAt int64  `json:"created_at"` // Author-asserted unix timestamp
	Kind      int    `json:"kind"`       // Semantic type (see kind.go)
	Tags      Tags   `json:"tags"`       // Ordered multiset of tags
	Content   string `json:"content"`    // Free-form payload, possibly encrypted
	Sig       string `json:"sig"`        // Author's signature over the canonical form
}

// Draft is an unsigned record under construction. The identity
// subsystem turns a Draft into a signed Record (populating ID, Author
// and Sig); the reconciliation layer only ever proposes drafts, it
// never signs or publishes on its own.
type Draft struct {
	Kind      int
	CreatedAt int64
	Tags      Tags
	Content   string
}

// Tag is a single tag: a name plus positional string values.
// On the wire a tag is a JSON array whose first element is the name.
//
// Tags are NOT unique by name. A group definition carries one "p" tag
// per member; consumers must treat tags as an ordered multiset.
type Tag struct {
	Name   string
	Values []string
}

// Value returns the first positional value, or "" if the tag has none.
func (t Tag) Value() string {
	if len(t.Values) == 0 {
		return ""
	}
	return t.Values[0]
}

// MarshalJSON encodes the tag as a flat JSON string array.
func (t Tag) MarshalJSON() ([]byte, error) {
	flat := make([]string, 0, len(t.Values)+1)
	flat = append(flat, t.Name)
	flat = append(flat, t.Values...)
	return json.Marshal(flat)
}

// UnmarshalJSON decodes a flat JSON string array into name + values.
// An empty array decodes to a tag with an empty name, which no
// validator accepts; it is preserved rather than rejected here because
// decoding must not drop foreign records.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("decode tag: %w", err)
	}
	if len(flat) == 0 {
		*t = Tag{}
		return nil
	}
	t.Name = flat[0]
	t.Values = flat[1:]
	return nil
}

// Tags is an ordered multiset of tags. Order is significant for
// reply-chain ("e") tags and must survive decode/encode round trips.
type Tags []Tag

// First returns the first tag with the given name, if any.
func (ts Tags) First(name string) (Tag, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Value returns the first positional value of the first tag with the
// given name, or "" if absent. Convenience for single-valued tags.
func (ts Tags) Value(name string) string {
	t, ok := ts.First(name)
	if !ok {
		return ""
	}
	return t.Value()
}

// All returns every tag with the given name, preserving order.
func (ts Tags) All(name string) []Tag {
	var out []Tag
	for _, t := range ts {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// Count returns the number of tags with the given name.
func (ts Tags) Count(name string) int {
	n := 0
	for _, t := range ts {
		if t.Name == name {
			n++
		}
	}
	return n
}

// NewTag builds a tag from a name and positional values.
func NewTag(name string, values ...string) Tag {
	return Tag{Name: name, Values: values}
}
