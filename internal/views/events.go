package views

import (
	"context"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
)

// GroupEvents derives the calendar of one group: the latest version of
// every event slot referencing the group, moderation-filtered.
func (s *Service) GroupEvents(ctx context.Context, group record.Coordinate) ([]record.Record, error) {
	key := cache.Key{ViewType: "group-events", Params: group.String()}
	return cached(s, key, func() ([]record.Record, error) {
		events, err := s.fetch(ctx, s.pool, query.GroupEvents(group))
		if err != nil {
			return nil, err
		}
		latest := record.Latest(events)
		labels, err := s.moderationLabels(ctx, latest)
		if err != nil {
			return nil, err
		}
		visible := reconcile.FilterModerated(latest, labels)
		sortEventsByStart(visible)
		return visible, nil
	})
}

// Event fetches the current record for one event slot.
func (s *Service) Event(ctx context.Context, event record.Coordinate) (record.Record, error) {
	records, err := s.fetch(ctx, s.pool, query.Event(event))
	if err != nil {
		return record.Record{}, err
	}
	winner, found := pickLatest(event, records)
	if !found {
		return record.Record{}, ErrEventNotFound
	}
	return winner, nil
}

// EventAttendance derives the RSVP buckets and verified attendance for
// one event.
func (s *Service) EventAttendance(ctx context.Context, event record.Coordinate) (reconcile.AttendanceView, error) {
	key := cache.Key{ViewType: "attendance", Params: event.String()}
	return cached(s, key, func() (reconcile.AttendanceView, error) {
		rsvps, err := s.fetch(ctx, s.pool, query.RSVPs(event))
		if err != nil {
			return reconcile.AttendanceView{}, err
		}
		checkins, err := s.fetch(ctx, s.pool, query.Attendance(event))
		if err != nil {
			return reconcile.AttendanceView{}, err
		}
		return reconcile.Attendance(event, rsvps, checkins), nil
	})
}

// EventDiscussion reconstructs the thread under an event, moderation
// labels applied. Discussion backlogs are bulky, so this view uses the
// long per-relay deadline.
func (s *Service) EventDiscussion(ctx context.Context, event record.Coordinate) (*reconcile.ThreadView, error) {
	key := cache.Key{ViewType: "discussion", Params: event.String()}
	return cached(s, key, func() (*reconcile.ThreadView, error) {
		root, err := s.Event(ctx, event)
		if err != nil {
			return nil, err
		}
		notes, err := s.fetch(ctx, s.long, query.Discussion(root.ID, event, true))
		if err != nil {
			return nil, err
		}
		labels, err := s.moderationLabels(ctx, notes)
		if err != nil {
			return nil, err
		}
		return reconcile.Thread(root, reconcile.FilterModerated(notes, labels)), nil
	})
}

// RSVPCandidates classifies the event thread's replies into RSVP
// suggestions for the host. Read-only: nothing is published until the
// reply's author explicitly converts.
func (s *Service) RSVPCandidates(ctx context.Context, event record.Coordinate) ([]reconcile.Suggestion, error) {
	thread, err := s.EventDiscussion(ctx, event)
	if err != nil {
		return nil, err
	}
	attendance, err := s.EventAttendance(ctx, event)
	if err != nil {
		return nil, err
	}
	var replies []record.Record
	replies = append(replies, thread.TopLevel()...)
	for _, top := range thread.TopLevel() {
		replies = append(replies, thread.Descendants(top.ID)...)
	}
	return reconcile.SuggestRSVPs(replies, event.Author, attendance), nil
}

// RSVP publishes the active identity's RSVP for an event. Re-RSVPing
// rewrites the same addressable slot; no guard needed beyond the event
// existing.
func (s *Service) RSVP(ctx context.Context, event record.Coordinate, status string) (record.Record, error) {
	if _, err := s.Event(ctx, event); err != nil {
		return record.Record{}, err
	}
	draft := reconcile.RSVPDraft(event, s.Self(), status, "")
	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.cache.Invalidate(cache.Key{ViewType: "attendance", Params: event.String()})
	return published, nil
}

// ConvertReplyToRSVP turns the active identity's own free-text reply
// into their RSVP. Guards live in the reconciler: wrong author, no
// detectable intent, or an existing RSVP each block the publish.
func (s *Service) ConvertReplyToRSVP(ctx context.Context, event record.Coordinate, replyID string) (record.Record, error) {
	thread, err := s.EventDiscussion(ctx, event)
	if err != nil {
		return record.Record{}, err
	}
	reply, ok := thread.Get(replyID)
	if !ok {
		return record.Record{}, ErrEventNotFound
	}
	attendance, err := s.EventAttendance(ctx, event)
	if err != nil {
		return record.Record{}, err
	}
	draft, err := reconcile.ConvertReply(reply, s.Self(), event, attendance)
	if err != nil {
		return record.Record{}, err
	}
	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.cache.Invalidate(cache.Key{ViewType: "attendance", Params: event.String()})
	return published, nil
}

// CheckIn publishes an attendance check-in carrying the venue's
// rotating code. The nonce is recorded as presented; nothing verifies
// it against an issued value.
func (s *Service) CheckIn(ctx context.Context, event record.Coordinate, nonce string) (record.Record, error) {
	if _, err := s.Event(ctx, event); err != nil {
		return record.Record{}, err
	}
	draft := record.Draft{
		Kind: record.KindAttendance,
		Tags: record.Tags{
			record.NewTag("a", event.String()),
			record.NewTag("nonce", nonce),
			record.NewTag("verified_at", formatUnix(s.now().Unix())),
		},
	}
	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.cache.Invalidate(cache.Key{ViewType: "attendance", Params: event.String()})
	return published, nil
}

// PostReply publishes a reply into an event's discussion thread.
func (s *Service) PostReply(ctx context.Context, event record.Coordinate, parentID, content string) (record.Record, error) {
	thread, err := s.EventDiscussion(ctx, event)
	if err != nil {
		return record.Record{}, err
	}
	published, err := s.publish(ctx, thread.ReplyDraft(parentID, content))
	if err != nil {
		return record.Record{}, err
	}
	s.cache.Invalidate(cache.Key{ViewType: "discussion", Params: event.String()})
	return published, nil
}

// HideRecord publishes a moderation label hiding a record from derived
// views. Only moderation-capable roles on the owning group may hide.
func (s *Service) HideRecord(ctx context.Context, group record.Coordinate, targetID, targetAuthor, reason string) (record.Record, error) {
	roster, err := s.Group(ctx, group)
	if err != nil {
		return record.Record{}, err
	}
	if !roster.Found {
		return record.Record{}, ErrGroupNotFound
	}
	if !roster.RoleOf(s.Self()).CanModerate() {
		return record.Record{}, ErrNotModerator
	}
	published, err := s.publish(ctx, reconcile.HideDraft(targetID, targetAuthor, reason))
	if err != nil {
		return record.Record{}, err
	}
	s.cache.InvalidateView("discussion")
	s.cache.InvalidateView("group-events")
	return published, nil
}

// moderationLabels fetches the moderation labels targeting any of the
// given records.
func (s *Service) moderationLabels(ctx context.Context, targets []record.Record) ([]record.Record, error) {
	ids := make([]string, 0, len(targets))
	for _, r := range targets {
		ids = append(ids, r.ID)
	}
	plan := query.ModerationLabels(ids)
	if plan == nil {
		return nil, nil
	}
	return s.fetch(ctx, s.pool, plan)
}
