package reconcile

import (
	"sort"

	"github.com/roach88/hearth/internal/record"
)

// Listing is a decoded marketplace offer or request: the latest record
// in its addressable slot with its typed fields pulled out of the tags.
type Listing struct {
	Record     record.Record
	Coordinate record.Coordinate
	Offer      bool // false means request
	Category   string
	Tribe      string
	Villages   []string
	Location   record.Location
	Expires    int64
}

// Listings reduces raw marketplace records to one decoded listing per
// addressable slot, newest first. Records of other kinds are ignored.
func Listings(records []record.Record) []Listing {
	ix := record.NewLatestIndex()
	for _, r := range records {
		if r.Kind == record.KindServiceOffer || r.Kind == record.KindServiceRequest {
			ix.Add(r)
		}
	}

	winners := ix.Records()
	sortNewestFirst(winners)

	out := make([]Listing, 0, len(winners))
	for _, r := range winners {
		coord, _ := record.CoordinateOf(r)
		loc, _ := r.Tags.Location()
		out = append(out, Listing{
			Record:     r,
			Coordinate: coord,
			Offer:      r.Kind == record.KindServiceOffer,
			Category:   r.Tags.Category(),
			Tribe:      r.Tags.Tribe(),
			Villages:   r.Tags.Villages(),
			Location:   loc,
			Expires:    r.Tags.Expires(),
		})
	}
	return out
}

// ListingFilters narrows a marketplace view. Zero values mean "no
// constraint". Now, when positive, drops listings whose expiry has
// passed; expiry is advisory display metadata, so it is applied here at
// the view layer rather than by the validators.
type ListingFilters struct {
	OffersOnly   bool
	RequestsOnly bool
	Category     string
	Tribe        string
	Village      string
	Now          int64
}

// FilterListings applies the filters, preserving order.
func FilterListings(listings []Listing, f ListingFilters) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if f.OffersOnly && !l.Offer {
			continue
		}
		if f.RequestsOnly && l.Offer {
			continue
		}
		if f.Category != "" && l.Category != f.Category {
			continue
		}
		if f.Tribe != "" && l.Tribe != f.Tribe {
			continue
		}
		if f.Village != "" && !contains(l.Villages, f.Village) {
			continue
		}
		if f.Now > 0 && l.Expires > 0 && l.Expires < f.Now {
			continue
		}
		out = append(out, l)
	}
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// Match is a resolved offer/request pairing: the match record plus the
// current listing for each side it references. A side whose listing was
// never fetched (or no longer exists) stays nil; the match still
// surfaces so a stale reference degrades visibly instead of vanishing.
type Match struct {
	Record      record.Record
	Type        string
	InitiatedBy string
	Offer       *Listing
	Request     *Listing
}

// ResolveMatches joins match records against the current marketplace
// listings, latest match per slot, newest first.
func ResolveMatches(matches, services []record.Record) []Match {
	byCoord := make(map[record.Coordinate]Listing)
	for _, l := range Listings(services) {
		byCoord[l.Coordinate] = l
	}

	ix := record.NewLatestIndex()
	for _, m := range matches {
		if m.Kind == record.KindServiceMatch {
			ix.Add(m)
		}
	}
	winners := ix.Records()
	sortNewestFirst(winners)

	out := make([]Match, 0, len(winners))
	for _, m := range winners {
		resolved := Match{
			Record:      m,
			Type:        m.Tags.MatchType(),
			InitiatedBy: m.Tags.MatchInitiator(),
		}
		for _, ref := range m.Tags.AddressRefs() {
			l, ok := byCoord[ref]
			if !ok {
				continue
			}
			side := l
			if side.Offer {
				resolved.Offer = &side
			} else {
				resolved.Request = &side
			}
		}
		out = append(out, resolved)
	}
	return out
}

// MatchDraft builds an admin-suggested (or party-initiated) match
// record referencing both sides.
func MatchDraft(matchType, initiator string, offer, request record.Coordinate) record.Draft {
	return record.Draft{
		Kind: record.KindServiceMatch,
		Tags: record.Tags{
			record.NewTag("d", record.NewIdentifier("match")),
			record.NewTag("by", initiator),
			record.NewTag("type", matchType),
			record.NewTag("a", offer.String()),
			record.NewTag("a", request.String()),
		},
	}
}

// CategoriesInUse returns the sorted distinct categories present in a
// listing set. Handy for building filter UIs over live data.
func CategoriesInUse(listings []Listing) []string {
	seen := make(map[string]bool)
	for _, l := range listings {
		if l.Category != "" {
			seen[l.Category] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
