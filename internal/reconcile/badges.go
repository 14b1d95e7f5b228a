package reconcile

import (
	"github.com/roach88/hearth/internal/record"
)

// Badge is a resolved award: the award record joined against the
// latest definition of the badge it references. Definition may be nil
// when the definition was never fetched; the award still counts.
type Badge struct {
	Award      record.Record
	Definition *record.Record
	Name       string
}

// BadgesFor resolves the badges awarded to one subject. An award names
// its subjects via "p" tags and the badge via an address reference to
// the definition slot; the definition, being addressable, is always
// read at its latest version. Newest award first.
func BadgesFor(subject string, awards, definitions []record.Record) []Badge {
	ix := record.NewLatestIndex()
	for _, d := range definitions {
		if d.Kind == record.KindBadgeDefinition {
			ix.Add(d)
		}
	}

	var scoped []record.Record
	for _, a := range record.Dedupe(awards) {
		if a.Kind != record.KindBadgeAward {
			continue
		}
		for _, t := range a.Tags.All("p") {
			if t.Value() == subject {
				scoped = append(scoped, a)
				break
			}
		}
	}
	sortNewestFirst(scoped)

	out := make([]Badge, 0, len(scoped))
	for _, a := range scoped {
		b := Badge{Award: a}
		for _, ref := range a.Tags.AddressRefs() {
			if def, ok := ix.Get(ref); ok {
				held := def
				b.Definition = &held
				b.Name = def.Tags.Value("name")
				if b.Name == "" {
					b.Name = ref.Identifier
				}
				break
			}
		}
		if b.Definition == nil {
			// Fall back to the referenced identifier for display.
			if refs := a.Tags.AddressRefs(); len(refs) > 0 {
				b.Name = refs[0].Identifier
			}
		}
		out = append(out, b)
	}
	return out
}

// DisplayedBadges intersects a subject's profile-badge selection with
// the badges actually awarded to them: a selection only shows badges
// the subject verifiably holds.
func DisplayedBadges(subject string, profile record.Record, awards, definitions []record.Record) []Badge {
	if profile.Kind != record.KindProfileBadges || profile.Author != subject {
		return nil
	}
	selected := make(map[record.Coordinate]bool)
	for _, ref := range profile.Tags.AddressRefs() {
		selected[ref] = true
	}

	var out []Badge
	for _, b := range BadgesFor(subject, awards, definitions) {
		for _, ref := range b.Award.Tags.AddressRefs() {
			if selected[ref] {
				out = append(out, b)
				break
			}
		}
	}
	return out
}
