package reconcile

import (
	"github.com/roach88/hearth/internal/record"
)

// PendingRequests reconciles join requests against rejections and the
// current roster: per requesting author, the most recent request
// survives unless the author is already a member or has ever been
// rejected for this group.
//
// Rejection is permanent by rule. A re-request after rejection never
// resurfaces - there is no rejection-revocation record, so any match
// against the rejected set wins regardless of timestamps. Result is
// newest first.
func PendingRequests(requests, rejections []record.Record, roster RosterView) []record.Record {
	groupKey := roster.Group.GroupKey()

	rejected := make(map[string]bool)
	for _, r := range rejections {
		if r.Kind != record.KindJoinRejection || r.Tags.GroupRef() != groupKey {
			continue
		}
		if subject := r.Tags.Value("p"); subject != "" {
			rejected[subject] = true
		}
	}

	var scoped []record.Record
	for _, r := range requests {
		if r.Kind != record.KindJoinRequest || r.Tags.GroupRef() != groupKey {
			continue
		}
		if rejected[r.Author] || roster.Contains(r.Author) {
			continue
		}
		scoped = append(scoped, r)
	}

	return latestPerAuthor(scoped)
}

// ApproveRequest proposes the definition that admits a subject: the
// current winning definition with one membership tag appended. The
// approval is complete only when the returned draft is signed and
// published; until then the roster is unchanged.
func ApproveRequest(roster RosterView, subject string) (record.Draft, bool) {
	if !roster.Found || subject == "" || roster.Contains(subject) {
		return record.Draft{}, false
	}
	def := roster.Definition
	tags := make(record.Tags, 0, len(def.Tags)+1)
	tags = append(tags, def.Tags...)
	tags = append(tags, record.Member{Subject: subject}.Tag())
	return record.Draft{Kind: def.Kind, Tags: tags, Content: def.Content}, true
}

// RejectRequest builds the rejection record draft for a subject. The
// draft carries the group key and the rejected identity; once published
// it permanently shadows every past and future request by that subject.
func RejectRequest(roster RosterView, subject, reason string) (record.Draft, bool) {
	if !roster.Found || subject == "" {
		return record.Draft{}, false
	}
	return record.Draft{
		Kind: record.KindJoinRejection,
		Tags: record.Tags{
			record.NewTag("h", roster.Group.GroupKey()),
			record.NewTag("p", subject),
		},
		Content: reason,
	}, true
}
