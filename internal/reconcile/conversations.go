package reconcile

import (
	"sort"

	"github.com/roach88/hearth/internal/record"
)

// Direct-message views. Message content stays opaque here: records
// arrive encrypted and decryption belongs to the identity layer. The
// reconcilers only decide who talked to whom and in what order, which
// needs nothing but envelope metadata.

// Conversation is one correspondent and the latest message exchanged
// with them.
type Conversation struct {
	Counterpart string
	LastMessage record.Record
	Messages    int
}

// Conversations groups direct messages involving self by counterpart,
// newest conversation first. Messages where self is neither sender nor
// recipient are ignored; a self-to-self note keeps self as counterpart.
func Conversations(dms []record.Record, self string) []Conversation {
	byCounterpart := make(map[string]*Conversation)

	for _, r := range record.Dedupe(dms) {
		if r.Kind != record.KindDirectMessage {
			continue
		}
		other, ok := counterpartOf(r, self)
		if !ok {
			continue
		}
		c, exists := byCounterpart[other]
		if !exists {
			c = &Conversation{Counterpart: other, LastMessage: r}
			byCounterpart[other] = c
		} else if record.Supersedes(r, c.LastMessage) {
			c.LastMessage = r
		}
		c.Messages++
	}

	out := make([]Conversation, 0, len(byCounterpart))
	for _, c := range byCounterpart {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastMessage, out[j].LastMessage
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		return a.ID < b.ID
	})
	return out
}

// counterpartOf resolves the other side of a message relative to self.
func counterpartOf(r record.Record, self string) (string, bool) {
	recipient := r.Tags.Value("p")
	switch {
	case r.Author == self && recipient != "":
		return recipient, true
	case recipient == self:
		return r.Author, true
	}
	return "", false
}

// PairMessages returns the messages exchanged between self and other,
// oldest first, duplicates collapsed. Both directions are included;
// messages involving anyone else are dropped.
func PairMessages(dms []record.Record, self, other string) []record.Record {
	var out []record.Record
	for _, r := range record.Dedupe(dms) {
		if r.Kind != record.KindDirectMessage {
			continue
		}
		recipient := r.Tags.Value("p")
		fromSelf := r.Author == self && recipient == other
		fromOther := r.Author == other && recipient == self
		if self == other {
			// Self-conversation: both sides are the same identity.
			fromSelf = r.Author == self && recipient == self
			fromOther = false
		}
		if fromSelf || fromOther {
			out = append(out, r)
		}
	}
	sortOldestFirst(out)
	return out
}

// MessageDraft builds an outgoing direct message envelope. Content is
// expected to be encrypted by the identity layer before signing.
func MessageDraft(recipient, encryptedContent string) record.Draft {
	return record.Draft{
		Kind:    record.KindDirectMessage,
		Tags:    record.Tags{record.NewTag("p", recipient)},
		Content: encryptedContent,
	}
}
