package harness

import (
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
)

// Snapshot shapes. Outputs carry semantic fields only - no record IDs,
// no timestamps - so golden files stay readable and survive signer
// changes. Slices are always non-nil: an empty view renders as [].

type rosterOut struct {
	Name    string      `json:"name"`
	Open    bool        `json:"open"`
	Members []memberOut `json:"members"`
}

type memberOut struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

type requestOut struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

type attendanceOut struct {
	Going    []string `json:"going"`
	Maybe    []string `json:"maybe"`
	Declined []string `json:"declined"`
	Attended []string `json:"attended"`
}

type threadOut struct {
	Root    string     `json:"root"`
	Replies []replyOut `json:"replies"`
}

type replyOut struct {
	Author  string     `json:"author"`
	Content string     `json:"content"`
	Replies []replyOut `json:"replies,omitempty"`
}

type listingOut struct {
	Author   string `json:"author"`
	Offer    bool   `json:"offer"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type suggestionOut struct {
	Author string `json:"author"`
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

type publishOut struct {
	Kind int `json:"kind"`
}

type errorOut struct {
	Error string `json:"error"`
}

func rosterSnapshot(v reconcile.RosterView) rosterOut {
	members := make([]memberOut, 0, len(v.Members))
	for _, m := range v.Members {
		members = append(members, memberOut{Subject: m.Subject, Role: roleName(m.Role)})
	}
	return rosterOut{Name: v.Name, Open: v.Open, Members: members}
}

func roleName(r record.Role) string {
	if r == record.RoleMember {
		return "member"
	}
	return string(r)
}

func requestsSnapshot(records []record.Record) []requestOut {
	out := make([]requestOut, 0, len(records))
	for _, r := range records {
		out = append(out, requestOut{Author: r.Author, Message: r.Content})
	}
	return out
}

func attendanceSnapshot(v reconcile.AttendanceView) attendanceOut {
	return attendanceOut{
		Going:    authorsOf(v.Going),
		Maybe:    authorsOf(v.Maybe),
		Declined: authorsOf(v.Declined),
		Attended: authorsOf(v.Attended),
	}
}

func authorsOf(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Author)
	}
	return out
}

func threadSnapshot(t *reconcile.ThreadView) threadOut {
	return threadOut{Root: t.Root.Content, Replies: replyNodes(t, t.TopLevel())}
}

func replyNodes(t *reconcile.ThreadView, records []record.Record) []replyOut {
	out := make([]replyOut, 0, len(records))
	for _, r := range records {
		out = append(out, replyOut{
			Author:  r.Author,
			Content: r.Content,
			Replies: replyNodes(t, t.DirectReplies(r.ID)),
		})
	}
	return out
}

func listingsSnapshot(listings []reconcile.Listing) []listingOut {
	out := make([]listingOut, 0, len(listings))
	for _, l := range listings {
		out = append(out, listingOut{
			Author:   l.Record.Author,
			Offer:    l.Offer,
			Category: l.Category,
			Content:  l.Record.Content,
		})
	}
	return out
}

func suggestionsSnapshot(suggestions []reconcile.Suggestion) []suggestionOut {
	out := make([]suggestionOut, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionOut{
			Author: s.Reply.Author,
			Status: s.Status,
			Reply:  s.Reply.Content,
		})
	}
	return out
}
