package record

import (
	"strconv"
	"strings"
)

// Typed views over the tag multiset. Each known tag name gets a variant
// struct with an accessor; positional string indexing stays inside this
// file so reconcilers never touch raw tag arrays. Unknown tags remain
// reachable through Tags.All as the raw fallback.

// Member is a decoded membership ("p") tag on a group definition:
// subject identity, an optional relay hint, and an optional role.
type Member struct {
	Subject   string
	RelayHint string
	Role      Role
}

// Tag renders the member back to its wire tag. The relay hint position
// is kept even when empty so the role stays in its own slot.
func (m Member) Tag() Tag {
	if m.Role == RoleMember {
		if m.RelayHint == "" {
			return NewTag("p", m.Subject)
		}
		return NewTag("p", m.Subject, m.RelayHint)
	}
	return NewTag("p", m.Subject, m.RelayHint, string(m.Role))
}

// Members decodes every "p" tag, preserving order and duplicates.
// Dedup by role precedence is the membership reconciler's job, not the
// accessor's: the roster derivation must see the raw multiset.
func (ts Tags) Members() []Member {
	var out []Member
	for _, t := range ts.All("p") {
		m := Member{Subject: t.Value()}
		if len(t.Values) > 1 {
			m.RelayHint = t.Values[1]
		}
		if len(t.Values) > 2 {
			m.Role = Role(t.Values[2])
		}
		// Some writers put the role in the fourth slot with an empty
		// relay hint placeholder; prefer it when present.
		if len(t.Values) > 3 && t.Values[3] != "" {
			m.Role = Role(t.Values[3])
		}
		out = append(out, m)
	}
	return out
}

// Identifier returns the "d" tag value that keys an addressable record.
func (ts Tags) Identifier() (string, bool) {
	t, ok := ts.First("d")
	if !ok {
		return "", false
	}
	return t.Value(), true
}

// EventRefs returns the record IDs referenced by "e" (and "E") tags in
// order. Reply threading depends on both the set and the count.
func (ts Tags) EventRefs() []string {
	var out []string
	for _, t := range ts {
		if (t.Name == "e" || t.Name == "E") && t.Value() != "" {
			out = append(out, t.Value())
		}
	}
	return out
}

// AddressRefs returns coordinates referenced by "a" (and "A") tags.
// Unparseable values are skipped; a malformed ref must not hide the
// valid ones next to it.
func (ts Tags) AddressRefs() []Coordinate {
	var out []Coordinate
	for _, t := range ts {
		if t.Name != "a" && t.Name != "A" {
			continue
		}
		c, err := ParseCoordinate(t.Value())
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// GroupRef returns the "h" tag group key on join requests/rejections.
func (ts Tags) GroupRef() string {
	return ts.Value("h")
}

// Status returns the "status" tag value (RSVP records).
func (ts Tags) Status() string {
	return ts.Value("status")
}

// Nonce returns the "nonce" tag value (attendance check-ins).
func (ts Tags) Nonce() string {
	return ts.Value("nonce")
}

// VerifiedAt returns the numeric "verified_at" tag value, or 0.
func (ts Tags) VerifiedAt() int64 {
	n, err := strconv.ParseInt(ts.Value("verified_at"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Location is a decoded coarse "l" location tag ("lat,lon").
type Location struct {
	Lat float64
	Lon float64
}

// Location decodes the "l" location tag. ok is false when the tag is
// absent or does not parse as "lat,lon".
//
// Note the collision with the single-letter moderation value tag: on
// marketplace records "l" is a location, on label records it is the
// label value. Kind decides which accessor applies.
func (ts Tags) Location() (Location, bool) {
	raw := ts.Value("l")
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Location{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Location{}, false
	}
	return Location{Lat: lat, Lon: lon}, true
}

// Valid reports whether the location is inside domain bounds.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// Category returns the "t" category tag (marketplace records).
func (ts Tags) Category() string {
	return ts.Value("t")
}

// Tribe returns the "tribe" tag: the group identifier a service listing
// belongs to.
func (ts Tags) Tribe() string {
	return ts.Value("tribe")
}

// Villages returns every "village" tag value on a service listing.
func (ts Tags) Villages() []string {
	var out []string
	for _, t := range ts.All("village") {
		if t.Value() != "" {
			out = append(out, t.Value())
		}
	}
	return out
}

// Label is a decoded namespace/value pair from a label record:
// the "L" tag names the namespace, each "l" tag carries a value with
// the namespace echoed in its second slot.
type Label struct {
	Namespace string
	Value     string
}

// Labels decodes namespace/value pairs from a moderation label record.
// An "l" tag without an explicit namespace inherits the record's "L"
// namespace.
func (ts Tags) Labels() []Label {
	namespace := ts.Value("L")
	var out []Label
	for _, t := range ts.All("l") {
		l := Label{Namespace: namespace, Value: t.Value()}
		if len(t.Values) > 1 && t.Values[1] != "" {
			l.Namespace = t.Values[1]
		}
		out = append(out, l)
	}
	return out
}

// Expires returns the numeric "expires" tag value, or 0 when the
// record does not expire.
func (ts Tags) Expires() int64 {
	n, err := strconv.ParseInt(ts.Value("expires"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// IsOpen reports whether a group definition carries the "open" marker
// tag (members may join without admin approval).
func (ts Tags) IsOpen() bool {
	_, ok := ts.First("open")
	return ok
}

// MatchType returns the "type" tag on a service match record.
func (ts Tags) MatchType() string {
	return ts.Value("type")
}

// MatchInitiator returns the "by" tag on a service match record.
func (ts Tags) MatchInitiator() string {
	return ts.Value("by")
}
