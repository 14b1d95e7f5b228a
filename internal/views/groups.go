package views

import (
	"context"
	"fmt"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
)

// MyGroups derives the rosters of every group whose winning definition
// mentions the active identity.
func (s *Service) MyGroups(ctx context.Context) ([]reconcile.RosterView, error) {
	self := s.Self()
	key := cache.Key{ViewType: "my-groups", Params: self}
	return cached(s, key, func() ([]reconcile.RosterView, error) {
		// The mention query may match superseded definitions (or miss
		// the winner), so it only discovers candidate slots; membership
		// is decided by re-deriving each slot's roster.
		mentions, err := s.fetch(ctx, s.pool, query.MyGroups(self))
		if err != nil {
			return nil, err
		}
		var out []reconcile.RosterView
		for _, slot := range slotsOf(mentions) {
			roster, err := s.Group(ctx, slot)
			if err != nil {
				return nil, err
			}
			if roster.Found && (roster.Contains(self) || roster.Definition.Author == self) {
				out = append(out, roster)
			}
		}
		return out, nil
	})
}

// PublicGroups derives the rosters of discoverable groups.
func (s *Service) PublicGroups(ctx context.Context) ([]reconcile.RosterView, error) {
	key := cache.Key{ViewType: "public-groups"}
	return cached(s, key, func() ([]reconcile.RosterView, error) {
		defs, err := s.fetch(ctx, s.pool, query.PublicGroups())
		if err != nil {
			return nil, err
		}
		return rostersFrom(defs), nil
	})
}

// slotsOf collects the distinct addressable slots present in a fetch,
// in first-appearance order.
func slotsOf(records []record.Record) []record.Coordinate {
	seen := make(map[record.Coordinate]bool)
	var order []record.Coordinate
	for _, r := range records {
		coord, ok := record.CoordinateOf(r)
		if !ok || seen[coord] {
			continue
		}
		seen[coord] = true
		order = append(order, coord)
	}
	return order
}

// rostersFrom reduces a mixed definition fetch to one roster per group
// slot.
func rostersFrom(defs []record.Record) []reconcile.RosterView {
	slots := slotsOf(defs)
	out := make([]reconcile.RosterView, 0, len(slots))
	for _, coord := range slots {
		out = append(out, reconcile.Roster(coord, defs))
	}
	return out
}

// Group derives one group's roster.
func (s *Service) Group(ctx context.Context, group record.Coordinate) (reconcile.RosterView, error) {
	key := cache.Key{ViewType: "roster", Params: group.String()}
	return cached(s, key, func() (reconcile.RosterView, error) {
		defs, err := s.fetch(ctx, s.pool, query.GroupDefinitions(group.Author, group.Identifier))
		if err != nil {
			return reconcile.RosterView{}, err
		}
		return reconcile.Roster(group, defs), nil
	})
}

// PendingJoinRequests derives the open join queue for a group.
func (s *Service) PendingJoinRequests(ctx context.Context, group record.Coordinate) ([]record.Record, error) {
	key := cache.Key{ViewType: "pending-requests", Params: group.String()}
	return cached(s, key, func() ([]record.Record, error) {
		roster, err := s.Group(ctx, group)
		if err != nil {
			return nil, err
		}
		if !roster.Found {
			return nil, ErrGroupNotFound
		}
		fetched, err := s.fetch(ctx, s.pool, query.JoinRequests(group.GroupKey()))
		if err != nil {
			return nil, err
		}
		requests, rejections := splitByKind(fetched, record.KindJoinRequest, record.KindJoinRejection)
		return reconcile.PendingRequests(requests, rejections, roster), nil
	})
}

// RequestJoin publishes a join request for the active identity.
// Guards: joining a group you are on the roster of is a conflict, and
// a standing rejection blocks the request permanently.
func (s *Service) RequestJoin(ctx context.Context, group record.Coordinate, message string) (record.Record, error) {
	roster, err := s.Group(ctx, group)
	if err != nil {
		return record.Record{}, err
	}
	if !roster.Found {
		return record.Record{}, ErrGroupNotFound
	}
	self := s.Self()
	if roster.Contains(self) || roster.Definition.Author == self {
		return record.Record{}, ErrAlreadyMember
	}

	fetched, err := s.fetch(ctx, s.pool, query.JoinRequests(group.GroupKey()))
	if err != nil {
		return record.Record{}, err
	}
	for _, r := range fetched {
		if r.Kind == record.KindJoinRejection && r.Tags.Value("p") == self {
			return record.Record{}, ErrJoinRejected
		}
	}

	published, err := s.publish(ctx, record.Draft{
		Kind:    record.KindJoinRequest,
		Tags:    record.Tags{record.NewTag("h", group.GroupKey())},
		Content: message,
	})
	if err != nil {
		return record.Record{}, err
	}
	s.cache.Invalidate(cache.Key{ViewType: "pending-requests", Params: group.String()})
	return published, nil
}

// ApproveJoinRequest publishes a new definition admitting the subject.
// The caller must hold a moderation-capable role on the group.
func (s *Service) ApproveJoinRequest(ctx context.Context, group record.Coordinate, subject string) (record.Record, error) {
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

	draft, ok := reconcile.ApproveRequest(roster, subject)
	if !ok {
		return record.Record{}, ErrAlreadyMember
	}
	draft.CreatedAt = s.now().Unix()

	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.invalidateGroup(group)
	return published, nil
}

// RejectJoinRequest publishes a permanent rejection for the subject.
func (s *Service) RejectJoinRequest(ctx context.Context, group record.Coordinate, subject, reason string) (record.Record, error) {
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

	draft, ok := reconcile.RejectRequest(roster, subject, reason)
	if !ok {
		return record.Record{}, fmt.Errorf("reject request: empty subject")
	}
	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.invalidateGroup(group)
	return published, nil
}

// CleanGroupDefinition republishes the group definition with duplicate
// membership tags merged away. No-op (and no publish) when the current
// definition is already clean.
func (s *Service) CleanGroupDefinition(ctx context.Context, group record.Coordinate) (record.Record, bool, error) {
	roster, err := s.Group(ctx, group)
	if err != nil {
		return record.Record{}, false, err
	}
	if !roster.Found {
		return record.Record{}, false, ErrGroupNotFound
	}
	if !roster.RoleOf(s.Self()).CanModerate() {
		return record.Record{}, false, ErrNotModerator
	}

	draft, changed := reconcile.CleanDefinition(roster.Definition)
	if !changed {
		return record.Record{}, false, nil
	}
	draft.CreatedAt = s.now().Unix()

	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, false, err
	}
	s.invalidateGroup(group)
	return published, true, nil
}

func (s *Service) invalidateGroup(group record.Coordinate) {
	s.cache.Invalidate(cache.Key{ViewType: "roster", Params: group.String()})
	s.cache.Invalidate(cache.Key{ViewType: "pending-requests", Params: group.String()})
	s.cache.InvalidateView("my-groups")
	s.cache.InvalidateView("public-groups")
}

// splitByKind partitions a fetch result into two kind buckets.
func splitByKind(records []record.Record, kindA, kindB int) (a, b []record.Record) {
	for _, r := range records {
		switch r.Kind {
		case kindA:
			a = append(a, r)
		case kindB:
			b = append(b, r)
		}
	}
	return a, b
}
