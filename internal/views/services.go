package views

import (
	"context"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
)

// GroupServices derives the marketplace of one group: current
// listings narrowed to the group's tribe, expired ones dropped.
func (s *Service) GroupServices(ctx context.Context, group record.Coordinate, filters reconcile.ListingFilters) ([]reconcile.Listing, error) {
	key := cache.Key{ViewType: "group-services", Params: group.String() + "|" + listingFiltersKey(filters)}
	return cached(s, key, func() ([]reconcile.Listing, error) {
		raw, err := s.fetch(ctx, s.pool, query.GroupServices(group.Author))
		if err != nil {
			return nil, err
		}
		filters.Tribe = group.Identifier
		if filters.Now == 0 {
			filters.Now = s.now().Unix()
		}
		return reconcile.FilterListings(reconcile.Listings(raw), filters), nil
	})
}

// VillageServices derives the marketplace of one village across
// groups.
func (s *Service) VillageServices(ctx context.Context, village string, filters reconcile.ListingFilters) ([]reconcile.Listing, error) {
	key := cache.Key{ViewType: "village-services", Params: village + "|" + listingFiltersKey(filters)}
	return cached(s, key, func() ([]reconcile.Listing, error) {
		raw, err := s.fetch(ctx, s.pool, query.VillageServices(village, filters.Category))
		if err != nil {
			return nil, err
		}
		filters.Village = village
		if filters.Now == 0 {
			filters.Now = s.now().Unix()
		}
		return reconcile.FilterListings(reconcile.Listings(raw), filters), nil
	})
}

// ServiceMatches derives the resolved matches citing one listing.
func (s *Service) ServiceMatches(ctx context.Context, listing record.Coordinate) ([]reconcile.Match, error) {
	key := cache.Key{ViewType: "service-matches", Params: listing.String()}
	return cached(s, key, func() ([]reconcile.Match, error) {
		matches, err := s.fetch(ctx, s.pool, query.ServiceMatches(listing.Author, listing.Identifier))
		if err != nil {
			return nil, err
		}

		// Resolve each cited side against its current listing.
		var refs []query.Filter
		seen := make(map[record.Coordinate]bool)
		for _, m := range matches {
			for _, ref := range m.Tags.AddressRefs() {
				if seen[ref] {
					continue
				}
				seen[ref] = true
				refs = append(refs, query.Event(ref)...)
			}
		}
		var services []record.Record
		if len(refs) > 0 {
			services, err = s.fetch(ctx, s.pool, refs)
			if err != nil {
				return nil, err
			}
		}
		return reconcile.ResolveMatches(matches, services), nil
	})
}

// PublishListing signs and broadcasts a marketplace listing draft. The
// kind validator enforces the content cap, category enum and location
// bounds before anything reaches a relay.
func (s *Service) PublishListing(ctx context.Context, draft record.Draft) (record.Record, error) {
	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.cache.InvalidateView("group-services")
	s.cache.InvalidateView("village-services")
	return published, nil
}

// SuggestMatch publishes an admin-suggested pairing of an offer and a
// request. Moderation-capable roles only.
func (s *Service) SuggestMatch(ctx context.Context, group record.Coordinate, offer, request record.Coordinate) (record.Record, error) {
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

	draft := reconcile.MatchDraft(record.MatchAdminSuggestion, s.Self(), offer, request)
	published, err := s.publish(ctx, draft)
	if err != nil {
		return record.Record{}, err
	}
	s.cache.InvalidateView("service-matches")
	return published, nil
}

func listingFiltersKey(f reconcile.ListingFilters) string {
	key := f.Category + "|" + f.Village + "|" + f.Tribe
	if f.OffersOnly {
		key += "|offers"
	}
	if f.RequestsOnly {
		key += "|requests"
	}
	return key
}
