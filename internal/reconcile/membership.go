package reconcile

import (
	"github.com/roach88/hearth/internal/record"
)

// RosterEntry is one deduplicated member of a group.
type RosterEntry struct {
	Subject   string
	RelayHint string
	Role      record.Role
}

// RosterView is the derived membership of one group: the membership
// tags of the single most-recent definition record, deduplicated by
// subject with role precedence.
//
// A roster is derived, never stored. The protocol does not dedupe the
// winning record's tags for us - an admin may have appended the same
// subject several times under different roles - so the merge happens
// here on every read.
type RosterView struct {
	Group      record.Coordinate
	Definition record.Record // winning definition; zero when Found is false
	Found      bool
	Members    []RosterEntry
	Open       bool // group accepts joins without admin approval
	Name       string
}

// Roster reconciles all definition records for one group slot into a
// membership view. Records for other slots are ignored rather than
// rejected, so a caller may pass a mixed fetch result directly.
//
// When two admins race, the record with the later CreatedAt wins
// entirely and the loser's edits are gone. That is the accepted
// limitation of last-writer-wins; there is no causal merge.
func Roster(group record.Coordinate, defs []record.Record) RosterView {
	view := RosterView{Group: group}

	winner, found := latestForSlot(group, defs)
	if !found {
		return view
	}

	view.Definition = winner
	view.Found = true
	view.Open = winner.Tags.IsOpen()
	view.Name = winner.Tags.Value("name")
	if view.Name == "" {
		view.Name = group.Identifier
	}
	view.Members = dedupeMembers(winner.Tags.Members())
	return view
}

// latestForSlot picks the winning record for a coordinate out of a
// mixed set. Arrival order is irrelevant.
func latestForSlot(slot record.Coordinate, records []record.Record) (record.Record, bool) {
	var winner record.Record
	found := false
	for _, r := range records {
		coord, ok := record.CoordinateOf(r)
		if !ok || coord != slot {
			continue
		}
		if !found || record.Supersedes(r, winner) {
			winner = r
			found = true
		}
	}
	return winner, found
}

// dedupeMembers keeps one entry per subject at the highest-precedence
// role, preserving first-appearance order.
func dedupeMembers(members []record.Member) []RosterEntry {
	best := make(map[string]record.Member)
	var order []string

	for _, m := range members {
		if m.Subject == "" {
			continue
		}
		cur, seen := best[m.Subject]
		if !seen {
			best[m.Subject] = m
			order = append(order, m.Subject)
			continue
		}
		if m.Role.Precedence() > cur.Role.Precedence() {
			// Keep the earlier relay hint when the later tag has none.
			if m.RelayHint == "" {
				m.RelayHint = cur.RelayHint
			}
			best[m.Subject] = m
		}
	}

	entries := make([]RosterEntry, 0, len(order))
	for _, subject := range order {
		m := best[subject]
		entries = append(entries, RosterEntry{Subject: m.Subject, RelayHint: m.RelayHint, Role: m.Role})
	}
	return entries
}

// Contains reports whether a subject is on the roster in any role.
func (v RosterView) Contains(subject string) bool {
	for _, e := range v.Members {
		if e.Subject == subject {
			return true
		}
	}
	return false
}

// RoleOf returns a subject's deduplicated role. The group author is an
// implicit admin even without a membership tag.
func (v RosterView) RoleOf(subject string) record.Role {
	for _, e := range v.Members {
		if e.Subject == subject {
			return e.Role
		}
	}
	if v.Found && subject == v.Definition.Author {
		return record.RoleAdmin
	}
	return record.RoleMember
}

// CleanDefinition proposes a replacement definition with duplicate
// membership tags merged away. Non-membership tags pass through
// untouched, in order. Returns false when the definition is already
// clean and nothing needs publishing.
//
// The proposal is a draft: history is never mutated, the admin decides
// whether to sign and publish it, and once published it simply becomes
// the newest input to the next Roster call.
func CleanDefinition(def record.Record) (record.Draft, bool) {
	deduped := dedupeMembers(def.Tags.Members())
	if len(deduped) == def.Tags.Count("p") {
		return record.Draft{}, false
	}

	emitted := make(map[string]bool, len(deduped))
	byID := make(map[string]RosterEntry, len(deduped))
	for _, e := range deduped {
		byID[e.Subject] = e
	}

	var tags record.Tags
	for _, t := range def.Tags {
		if t.Name != "p" {
			tags = append(tags, t)
			continue
		}
		subject := t.Value()
		if subject == "" || emitted[subject] {
			continue
		}
		emitted[subject] = true
		e := byID[subject]
		tags = append(tags, record.Member{Subject: e.Subject, RelayHint: e.RelayHint, Role: e.Role}.Tag())
	}

	return record.Draft{
		Kind:    def.Kind,
		Tags:    tags,
		Content: def.Content,
	}, true
}
