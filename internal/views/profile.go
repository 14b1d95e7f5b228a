package views

import (
	"context"
	"encoding/json"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/query"
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
)

// Profile is decoded profile metadata. Missing fields stay empty; an
// unparseable profile record yields a zero profile, not an error.
type Profile struct {
	Author  string `json:"-"`
	Name    string `json:"name,omitempty"`
	About   string `json:"about,omitempty"`
	Picture string `json:"picture,omitempty"`
	Found   bool   `json:"-"`
}

// Profile derives one identity's profile from its latest metadata
// record.
func (s *Service) Profile(ctx context.Context, author string) (Profile, error) {
	key := cache.Key{ViewType: "profile", Params: author}
	return cached(s, key, func() (Profile, error) {
		records, err := s.fetch(ctx, s.pool, query.Profile(author))
		if err != nil {
			return Profile{}, err
		}
		p := Profile{Author: author}
		var winner record.Record
		for i, r := range records {
			if i == 0 || record.Supersedes(r, winner) {
				winner = r
				p.Found = true
			}
		}
		if p.Found {
			// Malformed profile JSON degrades to an empty profile.
			_ = json.Unmarshal([]byte(winner.Content), &p)
		}
		return p, nil
	})
}

// PrivacySettings is a user's app-data privacy blob. Unknown fields
// are preserved nowhere; absence of the record means everything stays
// at the private-by-default zero value.
type PrivacySettings struct {
	ShowProfile  bool `json:"show_profile"`
	ShowActivity bool `json:"show_activity"`
	ShowBadges   bool `json:"show_badges"`
}

// PrivacySettings derives the active identity's privacy settings.
func (s *Service) PrivacySettings(ctx context.Context) (PrivacySettings, error) {
	self := s.Self()
	key := cache.Key{ViewType: "privacy", Params: self}
	return cached(s, key, func() (PrivacySettings, error) {
		records, err := s.fetch(ctx, s.pool, query.PrivacySettings(self))
		if err != nil {
			return PrivacySettings{}, err
		}
		var settings PrivacySettings
		var winner record.Record
		found := false
		for i, r := range records {
			if i == 0 || record.Supersedes(r, winner) {
				winner = r
				found = true
			}
		}
		if found {
			_ = json.Unmarshal([]byte(winner.Content), &settings)
		}
		return settings, nil
	})
}

// UpdatePrivacySettings publishes a new privacy blob, rewriting the
// addressable slot.
func (s *Service) UpdatePrivacySettings(ctx context.Context, settings PrivacySettings) (record.Record, error) {
	payload, err := json.Marshal(settings)
	if err != nil {
		return record.Record{}, err
	}
	published, err := s.publish(ctx, record.Draft{
		Kind:    record.KindAppData,
		Tags:    record.Tags{record.NewTag("d", "profile-privacy")},
		Content: string(payload),
	})
	if err != nil {
		return record.Record{}, err
	}
	s.cache.Invalidate(cache.Key{ViewType: "privacy", Params: s.Self()})
	return published, nil
}

// Badges derives the badges awarded to a subject, resolved against the
// awarding group's definitions.
func (s *Service) Badges(ctx context.Context, group record.Coordinate, subject string) ([]reconcile.Badge, error) {
	key := cache.Key{ViewType: "badges", Params: group.String() + "|" + subject}
	return cached(s, key, func() ([]reconcile.Badge, error) {
		awards, err := s.fetch(ctx, s.pool, query.BadgeAwards(subject))
		if err != nil {
			return nil, err
		}
		defs, err := s.fetch(ctx, s.pool, query.GroupBadges(group.Author))
		if err != nil {
			return nil, err
		}
		return reconcile.BadgesFor(subject, awards, defs), nil
	})
}
