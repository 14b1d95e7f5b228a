package reconcile

import (
	"github.com/roach88/hearth/internal/record"
)

// Moderation is soft by construction: immutable records cannot be
// deleted, so moderators publish label records naming a target, and
// views filter the targets out at read time. A client that ignores
// labels still sees the content; one that honors them hides it.

// Hidden reduces label records to the set of hidden target IDs. Only
// labels in the moderation namespace with a hide or remove value count;
// foreign namespaces pass through untouched.
func Hidden(labels []record.Record) map[string]bool {
	hidden := make(map[string]bool)
	for _, r := range labels {
		if r.Kind != record.KindModerationLabel {
			continue
		}
		if !hasModerationLabel(r) {
			continue
		}
		for _, t := range r.Tags.All("e") {
			if t.Value() != "" {
				hidden[t.Value()] = true
			}
		}
	}
	return hidden
}

func hasModerationLabel(r record.Record) bool {
	for _, l := range r.Tags.Labels() {
		if l.Namespace != record.LabelNamespaceModeration {
			continue
		}
		if l.Value == record.LabelHiddenByModerator || l.Value == record.LabelRemovedByModerator {
			return true
		}
	}
	return false
}

// FilterModerated drops records targeted by moderation labels,
// preserving order. Labels accumulate and are never revoked by another
// label kind, so a once-hidden record stays hidden.
func FilterModerated(records, labels []record.Record) []record.Record {
	hidden := Hidden(labels)
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if hidden[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// HideDraft builds the moderation label that hides one record. Reason
// text travels in the content.
func HideDraft(targetID, targetAuthor, reason string) record.Draft {
	return record.Draft{
		Kind: record.KindModerationLabel,
		Tags: record.Tags{
			record.NewTag("L", record.LabelNamespaceModeration),
			record.NewTag("l", record.LabelHiddenByModerator, record.LabelNamespaceModeration),
			record.NewTag("e", targetID),
			record.NewTag("p", targetAuthor),
		},
		Content: reason,
	}
}
