package reconcile

import (
	"errors"
	"regexp"
	"strings"

	"github.com/roach88/hearth/internal/record"
)

// Free-text RSVP detection. Replies under an event announcement often
// carry intent ("count me in", "can't make it") without a structured
// RSVP record. The patterns below classify such replies; the result is
// only ever a suggestion surfaced to the event host, or the basis of an
// explicit conversion confirmed by the reply's own author. Detection
// never publishes anything on its own.

var (
	acceptWords    = regexp.MustCompile(`\b(yes|going|accept|attending|count me in|i'll be there)\b`)
	tentativeWords = regexp.MustCompile(`\b(maybe|might|tentative|possibly|not sure)\b`)
	declineWords   = regexp.MustCompile(`\b(no|not going|decline|can't|cannot|won't|unable)\b`)

	acceptEmoji    = []string{"\U0001F44D", "✅"} // thumbs up, check mark
	tentativeEmoji = []string{"\U0001F914"}           // thinking face
	declineEmoji   = []string{"❌", "\U0001F44E"} // cross mark, thumbs down
)

// ClassifyReply scans a reply's text against the accept, tentative and
// decline pattern sets, in that order; the first set that matches wins.
// ok is false when no set matches, in which case the reply carries no
// detectable intent and must be left alone.
func ClassifyReply(content string) (status string, ok bool) {
	text := strings.ToLower(strings.TrimSpace(content))
	if text == "" {
		return "", false
	}
	switch {
	case acceptWords.MatchString(text) || containsAny(text, acceptEmoji):
		return record.StatusAccepted, true
	case tentativeWords.MatchString(text) || containsAny(text, tentativeEmoji):
		return record.StatusTentative, true
	case declineWords.MatchString(text) || containsAny(text, declineEmoji):
		return record.StatusDeclined, true
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Suggestion is one reply the host may follow up on: the reply record
// and the status its text suggests.
type Suggestion struct {
	Reply  record.Record
	Status string
}

// SuggestRSVPs classifies event-thread replies into RSVP suggestions
// for the host. Replies by the host are skipped (the host does not RSVP
// to their own event), as are authors who already hold a structured
// RSVP for the event - a suggestion would only duplicate it.
func SuggestRSVPs(replies []record.Record, host string, attendance AttendanceView) []Suggestion {
	var out []Suggestion
	for _, r := range replies {
		if r.Author == host {
			continue
		}
		if attendance.StatusOf(r.Author) != "" {
			continue
		}
		status, ok := ClassifyReply(r.Content)
		if !ok {
			continue
		}
		out = append(out, Suggestion{Reply: r, Status: status})
	}
	return out
}

var (
	// ErrNotReplyAuthor rejects converting someone else's reply: only
	// the reply's own author may turn their words into their RSVP.
	ErrNotReplyAuthor = errors.New("reply was written by a different author")

	// ErrNoIntentDetected rejects conversion of a reply whose text
	// matches no pattern set.
	ErrNoIntentDetected = errors.New("no rsvp intent detected in reply")

	// ErrAlreadyResponded rejects conversion when the author already
	// holds a structured RSVP for the event.
	ErrAlreadyResponded = errors.New("author already has an rsvp for this event")
)

// ConvertReply turns the caller's own free-text reply into a structured
// RSVP draft. The conversion is explicit and consent-gated: author must
// match, intent must be detectable, and an existing RSVP blocks the
// conversion rather than being silently overwritten.
func ConvertReply(reply record.Record, author string, event record.Coordinate, attendance AttendanceView) (record.Draft, error) {
	if reply.Author != author {
		return record.Draft{}, ErrNotReplyAuthor
	}
	status, ok := ClassifyReply(reply.Content)
	if !ok {
		return record.Draft{}, ErrNoIntentDetected
	}
	if attendance.StatusOf(author) != "" {
		return record.Draft{}, ErrAlreadyResponded
	}
	return RSVPDraft(event, author, status, reply.ID), nil
}
