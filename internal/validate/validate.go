package validate

import (
	"strconv"

	"github.com/roach88/hearth/internal/record"
)

// MaxServiceContentLength caps marketplace record content, in bytes.
// 141 bytes is rejected, 140 accepted.
const MaxServiceContentLength = 140

// Func is a structural predicate for one record kind.
type Func func(record.Record) bool

// ForKind returns the predicate for a kind. Unknown kinds get a
// permissive predicate: views that merely pass foreign records through
// must not drop them.
func ForKind(kind int) Func {
	if f, ok := validators[kind]; ok {
		return f
	}
	return func(record.Record) bool { return true }
}

// Record validates a single record against its kind's predicate.
func Record(r record.Record) bool {
	return ForKind(r.Kind)(r)
}

// Filter returns only the records that pass their kind's predicate,
// preserving order. Never returns nil.
func Filter(records []record.Record) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if Record(r) {
			out = append(out, r)
		}
	}
	return out
}

var validators = map[int]Func{
	record.KindGroupDefinition: GroupDefinition,
	record.KindJoinRequest:     JoinRequest,
	record.KindJoinRejection:   JoinRejection,
	record.KindCalendarEvent:   CalendarEvent,
	record.KindRSVP:            RSVP,
	record.KindAttendance:      Attendance,
	record.KindServiceOffer:    Service,
	record.KindServiceRequest:  Service,
	record.KindServiceMatch:    ServiceMatch,
	record.KindModerationLabel: ModerationLabel,
	record.KindBadgeDefinition: BadgeDefinition,
	record.KindBadgeAward:      BadgeAward,
	record.KindProfileBadges:   ProfileBadges,
}

// GroupDefinition requires exactly one "d" identifier. The name tag is
// optional; the identifier doubles as display name when absent.
func GroupDefinition(r record.Record) bool {
	if r.Kind != record.KindGroupDefinition {
		return false
	}
	if r.Tags.Count("d") != 1 {
		return false
	}
	id, _ := r.Tags.Identifier()
	return id != ""
}

// JoinRequest requires the target group key.
func JoinRequest(r record.Record) bool {
	if r.Kind != record.KindJoinRequest {
		return false
	}
	return r.Tags.GroupRef() != ""
}

// JoinRejection requires the group key and the rejected subject.
func JoinRejection(r record.Record) bool {
	if r.Kind != record.KindJoinRejection {
		return false
	}
	return r.Tags.GroupRef() != "" && r.Tags.Value("p") != ""
}

// CalendarEvent requires identifier, title and a positive start time.
func CalendarEvent(r record.Record) bool {
	if r.Kind != record.KindCalendarEvent {
		return false
	}
	if r.Tags.Count("d") != 1 {
		return false
	}
	id, _ := r.Tags.Identifier()
	if id == "" || r.Tags.Value("title") == "" {
		return false
	}
	start, err := strconv.ParseInt(r.Tags.Value("start"), 10, 64)
	return err == nil && start > 0
}

// RSVP requires identifier, event reference and a status from the
// closed set.
func RSVP(r record.Record) bool {
	if r.Kind != record.KindRSVP {
		return false
	}
	if r.Tags.Count("d") != 1 {
		return false
	}
	id, _ := r.Tags.Identifier()
	if id == "" || r.Tags.Value("a") == "" {
		return false
	}
	return record.ValidRSVPStatuses[r.Tags.Status()]
}

// Attendance requires an event reference, a 13-digit nonce and a
// positive verification time. The nonce is checked for shape only:
// check-ins are a tamper-evident proximity signal, not a proof, and no
// issued-value verification exists by design.
func Attendance(r record.Record) bool {
	if r.Kind != record.KindAttendance {
		return false
	}
	if r.Tags.Value("a") == "" {
		return false
	}
	if !nonceWellFormed(r.Tags.Nonce()) {
		return false
	}
	return r.Tags.VerifiedAt() > 0
}

// nonceWellFormed accepts exactly 13 ASCII digits.
func nonceWellFormed(nonce string) bool {
	if len(nonce) != 13 {
		return false
	}
	for _, c := range nonce {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Service validates marketplace offers and requests: identifier, owning
// group, closed-set category, in-bounds coarse location, and content no
// longer than MaxServiceContentLength bytes.
func Service(r record.Record) bool {
	if r.Kind != record.KindServiceOffer && r.Kind != record.KindServiceRequest {
		return false
	}
	if r.Tags.Count("d") != 1 {
		return false
	}
	id, _ := r.Tags.Identifier()
	if id == "" || r.Tags.Tribe() == "" {
		return false
	}
	if !record.ServiceCategories[r.Tags.Category()] {
		return false
	}
	loc, ok := r.Tags.Location()
	if !ok || !loc.Valid() {
		return false
	}
	return len(r.Content) <= MaxServiceContentLength
}

// ServiceMatch requires identifier, initiating author, closed-set type
// and at least one service reference.
func ServiceMatch(r record.Record) bool {
	if r.Kind != record.KindServiceMatch {
		return false
	}
	if r.Tags.Count("d") != 1 {
		return false
	}
	id, _ := r.Tags.Identifier()
	if id == "" || r.Tags.MatchInitiator() == "" {
		return false
	}
	if !record.ValidMatchTypes[r.Tags.MatchType()] {
		return false
	}
	return len(r.Tags.AddressRefs()) > 0
}

// ModerationLabel requires a namespace, at least one label value and a
// target record reference.
func ModerationLabel(r record.Record) bool {
	if r.Kind != record.KindModerationLabel {
		return false
	}
	if r.Tags.Value("L") == "" {
		return false
	}
	if len(r.Tags.Labels()) == 0 {
		return false
	}
	return r.Tags.Value("e") != ""
}

// BadgeDefinition requires an identifier.
func BadgeDefinition(r record.Record) bool {
	if r.Kind != record.KindBadgeDefinition {
		return false
	}
	id, _ := r.Tags.Identifier()
	return id != ""
}

// BadgeAward requires the awarded badge's coordinate and at least one
// subject.
func BadgeAward(r record.Record) bool {
	if r.Kind != record.KindBadgeAward {
		return false
	}
	if len(r.Tags.AddressRefs()) == 0 {
		return false
	}
	return r.Tags.Value("p") != ""
}

// ProfileBadges requires the fixed "profile_badges" identifier.
func ProfileBadges(r record.Record) bool {
	if r.Kind != record.KindProfileBadges {
		return false
	}
	id, _ := r.Tags.Identifier()
	return id == "profile_badges"
}
