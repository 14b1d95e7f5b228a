package reconcile

import (
	"github.com/roach88/hearth/internal/record"
)

// AttendanceView buckets an event's audience by their latest RSVP and
// intersects acceptances with physical check-ins.
type AttendanceView struct {
	Going    []record.Record
	Maybe    []record.Record
	Declined []record.Record

	// Attended is the subset of Going whose authors also published a
	// check-in for the event. Declared intent alone is not attendance,
	// and a check-in without an accepted RSVP is not attendance either.
	Attended []record.Record
}

// Attendance reconciles RSVP and check-in records for one event.
//
// Multiple RSVPs by the same author collapse to the most recent, so a
// change of heart (accepted then declined) lands the author in exactly
// one bucket. Check-ins intersect by author identity, never by record
// identity: any check-in from an accepted author counts. Buckets are
// newest first; Attended inherits Going's order.
func Attendance(event record.Coordinate, rsvps, checkins []record.Record) AttendanceView {
	var scoped []record.Record
	for _, r := range rsvps {
		if r.Kind == record.KindRSVP && refersTo(r, event) {
			scoped = append(scoped, r)
		}
	}
	latest := latestPerAuthor(scoped)

	var view AttendanceView
	for _, r := range latest {
		switch r.Tags.Status() {
		case record.StatusAccepted:
			view.Going = append(view.Going, r)
		case record.StatusTentative:
			view.Maybe = append(view.Maybe, r)
		case record.StatusDeclined:
			view.Declined = append(view.Declined, r)
		}
	}

	checkedIn := make(map[string]bool)
	for _, c := range checkins {
		if c.Kind == record.KindAttendance && refersTo(c, event) {
			checkedIn[c.Author] = true
		}
	}
	for _, r := range view.Going {
		if checkedIn[r.Author] {
			view.Attended = append(view.Attended, r)
		}
	}
	return view
}

// refersTo reports whether a record's address references include the
// given coordinate.
func refersTo(r record.Record, coord record.Coordinate) bool {
	for _, ref := range r.Tags.AddressRefs() {
		if ref == coord {
			return true
		}
	}
	return false
}

// StatusOf returns the author's latest RSVP status for the event, or
// "" when none exists.
func (v AttendanceView) StatusOf(author string) string {
	for _, bucket := range [][]record.Record{v.Going, v.Maybe, v.Declined} {
		for _, r := range bucket {
			if r.Author == author {
				return r.Tags.Status()
			}
		}
	}
	return ""
}

// RSVPDraft builds an RSVP record draft for an event. The identifier is
// derived from the event coordinate and the author, so re-RSVPing
// rewrites the same addressable slot instead of accumulating records.
// The source reply ID, when present, links the RSVP back to the
// discussion note it was converted from.
func RSVPDraft(event record.Coordinate, author, status, sourceReplyID string) record.Draft {
	tags := record.Tags{
		record.NewTag("d", record.RSVPIdentifier(event, author)),
		record.NewTag("a", event.String()),
		record.NewTag("p", event.Author),
		record.NewTag("status", status),
	}
	if sourceReplyID != "" {
		tags = append(tags, record.NewTag("e", sourceReplyID))
	}
	if status != record.StatusDeclined {
		tags = append(tags, record.NewTag("fb", "busy"))
	}
	return record.Draft{Kind: record.KindRSVP, Tags: tags}
}
