package query

import (
	"github.com/roach88/hearth/internal/record"
)

// Plan builders: one per derived view. Each returns the minimal filter
// set that fetches the records the view's reconciler consumes. Filters
// within one plan are disjunctive.

// MyGroups fetches group definitions that mention a subject in any
// membership tag.
func MyGroups(subject string) []Filter {
	return []Filter{{
		Kinds: []int{record.KindGroupDefinition},
		Tags:  map[string][]string{"p": {subject}},
		Limit: 50,
	}}
}

// PublicGroups fetches discoverable group definitions.
func PublicGroups() []Filter {
	return []Filter{{
		Kinds: []int{record.KindGroupDefinition},
		Tags:  map[string][]string{"t": {"tribe"}},
		Limit: 50,
	}}
}

// GroupDefinitions fetches every definition record for one group slot.
// All of them are needed: the membership reconciler picks the winner
// itself rather than trusting a relay's notion of "latest".
func GroupDefinitions(author, identifier string) []Filter {
	return []Filter{{
		Kinds:   []int{record.KindGroupDefinition},
		Authors: []string{author},
		Tags:    map[string][]string{"d": {identifier}},
		Limit:   10,
	}}
}

// JoinRequests fetches join requests and rejections for a group key in
// one disjunctive plan; the reconciler needs both streams together.
func JoinRequests(groupKey string) []Filter {
	return []Filter{
		{
			Kinds: []int{record.KindJoinRequest},
			Tags:  map[string][]string{"h": {groupKey}},
			Limit: 100,
		},
		{
			Kinds: []int{record.KindJoinRejection},
			Tags:  map[string][]string{"h": {groupKey}},
			Limit: 100,
		},
	}
}

// GroupEvents fetches calendar events referencing a group coordinate.
func GroupEvents(group record.Coordinate) []Filter {
	return []Filter{{
		Kinds: []int{record.KindCalendarEvent},
		Tags:  map[string][]string{"a": {group.String()}},
		Limit: 100,
	}}
}

// Event fetches the current record for one addressable event slot.
func Event(event record.Coordinate) []Filter {
	return []Filter{{
		Kinds:   []int{event.Kind},
		Authors: []string{event.Author},
		Tags:    map[string][]string{"d": {event.Identifier}},
		Limit:   1,
	}}
}

// RSVPs fetches every RSVP referencing an event coordinate.
func RSVPs(event record.Coordinate) []Filter {
	return []Filter{{
		Kinds: []int{record.KindRSVP},
		Tags:  map[string][]string{"a": {event.String()}},
		Limit: 200,
	}}
}

// Attendance fetches check-in records referencing an event coordinate.
func Attendance(event record.Coordinate) []Filter {
	return []Filter{{
		Kinds: []int{record.KindAttendance},
		Tags:  map[string][]string{"a": {event.String()}},
		Limit: 200,
	}}
}

// Discussion fetches notes and comments that reference a root record by
// either addressing convention: direct id reference ("e"/"E") or
// addressable coordinate reference ("a"/"A"). Non-addressable roots
// get only the id-reference filters.
func Discussion(rootID string, coord record.Coordinate, addressable bool) []Filter {
	// Comments mark the thread root in either tag case depending on the
	// writing client, so both spellings are fetched.
	filters := []Filter{
		{Kinds: []int{record.KindNote, record.KindComment}, Tags: map[string][]string{"e": {rootID}}},
		{Kinds: []int{record.KindComment}, Tags: map[string][]string{"E": {rootID}}},
	}
	if addressable {
		filters = append(filters,
			Filter{Kinds: []int{record.KindNote, record.KindComment}, Tags: map[string][]string{"a": {coord.String()}}},
			Filter{Kinds: []int{record.KindComment}, Tags: map[string][]string{"A": {coord.String()}}},
		)
	}
	return filters
}

// Replies fetches second-level notes referencing any of the given ids.
func Replies(parentIDs []string) []Filter {
	if len(parentIDs) == 0 {
		return nil
	}
	return []Filter{{
		Kinds: []int{record.KindNote, record.KindComment},
		Tags:  map[string][]string{"e": parentIDs},
		Limit: 200,
	}}
}

// GroupServices fetches marketplace listings published by the group
// author. Listings carry the group in a "tribe" tag that not every
// relay indexes, so the plan filters by author and the reconciler
// narrows by group client-side.
func GroupServices(groupAuthor string) []Filter {
	return []Filter{{
		Kinds:   []int{record.KindServiceOffer, record.KindServiceRequest},
		Authors: []string{groupAuthor},
		Limit:   100,
	}}
}

// VillageServices fetches listings tagged with a village slug,
// optionally narrowed to one category.
func VillageServices(village, category string) []Filter {
	f := Filter{
		Kinds: []int{record.KindServiceOffer, record.KindServiceRequest},
		Tags:  map[string][]string{"village": {village}},
		Limit: 100,
	}
	if category != "" {
		f.Tags["t"] = []string{category}
	}
	return []Filter{f}
}

// ServiceMatches fetches match records referencing a service by either
// of its possible coordinates (a listing may be cited as offer or as
// request).
func ServiceMatches(author, identifier string) []Filter {
	offer := record.Coordinate{Kind: record.KindServiceOffer, Author: author, Identifier: identifier}
	request := record.Coordinate{Kind: record.KindServiceRequest, Author: author, Identifier: identifier}
	return []Filter{{
		Kinds: []int{record.KindServiceMatch},
		Tags:  map[string][]string{"a": {offer.String(), request.String()}},
		Limit: 50,
	}}
}

// ModerationLabels fetches moderation-namespace labels targeting any of
// the given record ids.
func ModerationLabels(targetIDs []string) []Filter {
	if len(targetIDs) == 0 {
		return nil
	}
	return []Filter{{
		Kinds: []int{record.KindModerationLabel},
		Tags: map[string][]string{
			"L": {record.LabelNamespaceModeration},
			"e": targetIDs,
		},
		Limit: 200,
	}}
}

// Conversations fetches both directions of a user's direct messages.
func Conversations(self string) []Filter {
	return []Filter{
		{Kinds: []int{record.KindDirectMessage}, Authors: []string{self}, Limit: 200},
		{Kinds: []int{record.KindDirectMessage}, Tags: map[string][]string{"p": {self}}, Limit: 200},
	}
}

// ConversationThread fetches the messages between two identities.
// Both appear as authors and as recipients; the reconciler drops
// messages involving third parties.
func ConversationThread(self, other string) []Filter {
	return []Filter{{
		Kinds:   []int{record.KindDirectMessage},
		Authors: []string{self, other},
		Tags:    map[string][]string{"p": {self, other}},
		Limit:   100,
	}}
}

// Profile fetches a user's profile metadata record.
func Profile(author string) []Filter {
	return []Filter{{
		Kinds:   []int{record.KindProfileMetadata},
		Authors: []string{author},
		Limit:   1,
	}}
}

// PrivacySettings fetches a user's privacy-settings blob.
func PrivacySettings(author string) []Filter {
	return []Filter{{
		Kinds:   []int{record.KindAppData},
		Authors: []string{author},
		Tags:    map[string][]string{"d": {"profile-privacy"}},
		Limit:   1,
	}}
}

// GroupBadges fetches badge definitions published by a group author.
func GroupBadges(groupAuthor string) []Filter {
	return []Filter{{
		Kinds:   []int{record.KindBadgeDefinition},
		Authors: []string{groupAuthor},
		Limit:   50,
	}}
}

// BadgeAwards fetches awards naming a subject.
func BadgeAwards(subject string) []Filter {
	return []Filter{{
		Kinds: []int{record.KindBadgeAward},
		Tags:  map[string][]string{"p": {subject}},
		Limit: 100,
	}}
}
