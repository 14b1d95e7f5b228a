package record

// Record kinds used as the wire contract. The numeric values are
// shared with other clients on the network and must never change.
const (
	KindProfileMetadata = 0     // User profile (name, about, picture)
	KindNote            = 1     // Plain discussion note
	KindDirectMessage   = 4     // Encrypted direct message
	KindBadgeAward      = 8     // Badge award to one or more subjects
	KindComment         = 1111  // Threaded comment on another record
	KindModerationLabel = 1985  // Namespaced label (soft delete et al.)
	KindAttendance      = 2073  // Event attendance check-in
	KindJoinRequest     = 9021  // Request to join a group
	KindJoinRejection   = 9022  // Rejection of a join request
	KindProfileBadges   = 30008 // Badges a user chose to display
	KindBadgeDefinition = 30009 // Badge definition
	KindAppData         = 30078 // Application-specific data (privacy settings)
	KindServiceRequest  = 30627 // Service marketplace request
	KindCalendarEvent   = 31923 // Time-based calendar event
	KindRSVP            = 31925 // Calendar event RSVP
	KindGroupDefinition = 34550 // Group definition with membership tags
	KindServiceMatch    = 34871 // Offer/request match
	KindServiceOffer    = 38857 // Service marketplace offer
)

// Addressable reports whether records of this kind are treated as a
// mutable slot keyed by (kind, author, identifier). For addressable
// kinds the newest record for the slot replaces older ones entirely.
func Addressable(kind int) bool {
	return kind >= 30000 && kind < 40000
}

// RSVPStatus values allowed on an RSVP record's "status" tag.
const (
	StatusAccepted  = "accepted"
	StatusTentative = "tentative"
	StatusDeclined  = "declined"
)

// ValidRSVPStatuses is the closed set of RSVP statuses.
var ValidRSVPStatuses = map[string]bool{
	StatusAccepted:  true,
	StatusTentative: true,
	StatusDeclined:  true,
}

// Service categories form a closed enum; records outside it are
// malformed and dropped before reconciliation.
var ServiceCategories = map[string]bool{
	"yardwork":  true,
	"pets":      true,
	"eldercare": true,
	"errands":   true,
	"oddjobs":   true,
}

// Match types allowed on a service match record's "type" tag.
const (
	MatchOfferToRequest  = "offer_to_request"
	MatchRequestToOffer  = "request_to_offer"
	MatchAdminSuggestion = "admin_suggestion"
)

// ValidMatchTypes is the closed set of match types.
var ValidMatchTypes = map[string]bool{
	MatchOfferToRequest:  true,
	MatchRequestToOffer:  true,
	MatchAdminSuggestion: true,
}

// Moderation label namespace and values recognized by the soft-delete
// filter. Labels outside this namespace are ignored, and the target
// record is never removed from the network either way.
const (
	LabelNamespaceModeration = "moderation"
	LabelHiddenByModerator   = "hidden-by-moderator"
	LabelRemovedByModerator  = "removed-by-moderator"
)
