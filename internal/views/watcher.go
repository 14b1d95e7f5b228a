package views

import (
	"context"
	"time"

	"github.com/roach88/hearth/internal/reconcile"
)

// Poll cadences for live views. Relays offer no push channel in this
// layer, so freshness comes from periodic re-derivation; an open
// message thread polls faster than the conversation list behind it.
const (
	ThreadPollInterval        = 5 * time.Second
	ConversationsPollInterval = 10 * time.Second
)

// Watcher periodically re-derives a view and reports changes.
type Watcher struct {
	service  *Service
	interval time.Duration
}

// NewWatcher builds a watcher over the service. A non-positive
// interval gets ConversationsPollInterval.
func NewWatcher(service *Service, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = ConversationsPollInterval
	}
	return &Watcher{service: service, interval: interval}
}

// WatchConversations polls the conversation list until the context
// ends, invoking onUpdate whenever the newest message changes. The
// first derivation is delivered immediately.
func (w *Watcher) WatchConversations(ctx context.Context, onUpdate func([]reconcile.Conversation)) error {
	var lastTop string
	deliver := func() error {
		w.service.cache.InvalidateView("conversations")
		convs, err := w.service.Conversations(ctx)
		if err != nil {
			w.service.logger.Warn("conversation poll failed", "error", err)
			return nil // transient relay trouble; keep polling
		}
		top := ""
		if len(convs) > 0 {
			top = convs[0].LastMessage.ID
		}
		if top != lastTop {
			lastTop = top
			onUpdate(convs)
		}
		return nil
	}

	if err := deliver(); err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := deliver(); err != nil {
				return err
			}
		}
	}
}

// WatchThread polls one conversation until the context ends, invoking
// onUpdate whenever a new message appears.
func (w *Watcher) WatchThread(ctx context.Context, other string, onUpdate func([]Message)) error {
	var lastCount int
	var lastID string
	deliver := func() {
		msgs, err := w.service.ConversationThread(ctx, other)
		if err != nil {
			w.service.logger.Warn("thread poll failed", "counterpart", other, "error", err)
			return
		}
		tailID := ""
		if len(msgs) > 0 {
			tailID = msgs[len(msgs)-1].Record.ID
		}
		if len(msgs) != lastCount || tailID != lastID {
			lastCount = len(msgs)
			lastID = tailID
			onUpdate(msgs)
		}
	}

	deliver()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			deliver()
		}
	}
}
