package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func gardenListing(t *testing.T, identifier string, kind int, category, content string) record.Record {
	t.Helper()
	return signedAs(t, "admin", 200, record.Draft{
		Kind:    kind,
		Content: content,
		Tags: record.Tags{
			record.NewTag("d", identifier),
			record.NewTag("tribe", "garden"),
			record.NewTag("t", category),
			record.NewTag("l", "40.7,-74.0"),
		},
	})
}

func TestServicesList_JSON(t *testing.T) {
	offer := gardenListing(t, "mow", record.KindServiceOffer, "yardwork", "lawn mowing")
	request := gardenListing(t, "need-paint", record.KindServiceRequest, "painting", "need a painter")
	path := seedArchive(t, gardenDef(t), offer, request)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "services", "list", "34550:admin:garden")
	require.NoError(t, err)

	var listings []ListingSummary
	decodeResponse(t, stdout, &listings)
	require.Len(t, listings, 2)

	sides := map[string]string{}
	for _, l := range listings {
		sides[l.Author+"/"+l.Content] = l.Side
	}
	assert.Equal(t, "offer", sides["admin/lawn mowing"])
	assert.Equal(t, "request", sides["admin/need a painter"])
}

func TestServicesList_OffersFlag(t *testing.T) {
	offer := gardenListing(t, "mow", record.KindServiceOffer, "yardwork", "lawn mowing")
	request := gardenListing(t, "need-paint", record.KindServiceRequest, "painting", "need a painter")
	path := seedArchive(t, gardenDef(t), offer, request)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "services", "list", "--offers", "34550:admin:garden")
	require.NoError(t, err)

	var listings []ListingSummary
	decodeResponse(t, stdout, &listings)
	require.Len(t, listings, 1)
	assert.Equal(t, "lawn mowing", listings[0].Content)
}

func TestServicesMatches_ResolvesSides(t *testing.T) {
	offer := gardenListing(t, "mow", record.KindServiceOffer, "yardwork", "lawn mowing")
	request := gardenListing(t, "need-mow", record.KindServiceRequest, "yardwork", "need mowing")
	match := signedAs(t, "admin", 300, record.Draft{
		Kind: record.KindServiceMatch,
		Tags: record.Tags{
			record.NewTag("d", "match-1"),
			record.NewTag("by", "admin"),
			record.NewTag("type", "admin_suggestion"),
			record.NewTag("a", "38857:admin:mow"),
			record.NewTag("a", "30627:admin:need-mow"),
		},
	})
	path := seedArchive(t, offer, request, match)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "services", "matches", "38857:admin:mow")
	require.NoError(t, err)

	var matches []MatchSummary
	decodeResponse(t, stdout, &matches)
	require.Len(t, matches, 1)
	assert.Equal(t, "admin_suggestion", matches[0].Type)
	assert.Equal(t, "38857:admin:mow", matches[0].Offer)
	assert.Equal(t, "30627:admin:need-mow", matches[0].Request)
}

func TestServicesList_CategoryFlag(t *testing.T) {
	offer := gardenListing(t, "mow", record.KindServiceOffer, "yardwork", "lawn mowing")
	other := gardenListing(t, "walk", record.KindServiceOffer, "pets", "dog walking")
	path := seedArchive(t, gardenDef(t), offer, other)

	stdout, _, err := execute(t, "--archive", path, "--format", "json", "services", "list", "--category", "pets", "34550:admin:garden")
	require.NoError(t, err)

	var listings []ListingSummary
	decodeResponse(t, stdout, &listings)
	require.Len(t, listings, 1)
	assert.Equal(t, "dog walking", listings[0].Content)
}
