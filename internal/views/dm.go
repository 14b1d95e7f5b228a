package views

import (
	"context"
	"fmt"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/signer"
)

// Message is one decrypted direct message.
type Message struct {
	Record     record.Record
	Text       string
	SentBySelf bool
}

// Conversations derives the active identity's conversation list,
// newest first. Message bodies stay encrypted here; only the thread
// view decrypts.
func (s *Service) Conversations(ctx context.Context) ([]reconcile.Conversation, error) {
	self := s.Self()
	key := cache.Key{ViewType: "conversations", Params: self}
	return cached(s, key, func() ([]reconcile.Conversation, error) {
		dms, err := s.fetch(ctx, s.long, query.Conversations(self))
		if err != nil {
			return nil, err
		}
		return reconcile.Conversations(dms, self), nil
	})
}

// ConversationThread derives the ordered, decrypted exchange with one
// counterpart. Requires an encryption-capable signer.
func (s *Service) ConversationThread(ctx context.Context, other string) ([]Message, error) {
	enc, err := signer.EncrypterFor(s.signer)
	if err != nil {
		return nil, err
	}
	self := s.Self()

	dms, err := s.fetch(ctx, s.long, query.ConversationThread(self, other))
	if err != nil {
		return nil, err
	}

	ordered := reconcile.PairMessages(dms, self, other)
	out := make([]Message, 0, len(ordered))
	for _, r := range ordered {
		text, err := enc.Decrypt(ctx, other, r.Content)
		if err != nil {
			// An undecryptable message is shown as such, not dropped:
			// the conversation's shape matters even when a body is lost.
			s.logger.Warn("failed to decrypt message", "id", r.ID, "error", err)
			text = ""
		}
		out = append(out, Message{Record: r, Text: text, SentBySelf: r.Author == self})
	}
	return out, nil
}

// SendMessage encrypts, signs and broadcasts a direct message. The
// encryption capability is checked before any record is constructed,
// so a plaintext draft never exists for an unencryptable recipient.
func (s *Service) SendMessage(ctx context.Context, recipient, text string) (record.Record, error) {
	enc, err := signer.EncrypterFor(s.signer)
	if err != nil {
		return record.Record{}, err
	}
	ciphertext, err := enc.Encrypt(ctx, recipient, text)
	if err != nil {
		return record.Record{}, fmt.Errorf("encrypt message: %w", err)
	}

	published, err := s.publish(ctx, reconcile.MessageDraft(recipient, ciphertext))
	if err != nil {
		return record.Record{}, err
	}
	s.cache.InvalidateView("conversations")
	return published, nil
}
