package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/reconcile"
)

// ListingSummary is one marketplace listing.
type ListingSummary struct {
	Coordinate string `json:"coordinate"`
	Author     string `json:"author"`
	Side       string `json:"side"` // "offer" or "request"
	Category   string `json:"category"`
	Content    string `json:"content"`
}

// NewServicesCommand creates the services command tree.
func NewServicesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Inspect marketplace listings",
	}
	cmd.AddCommand(newServicesListCommand(rootOpts))
	cmd.AddCommand(newServicesMatchesCommand(rootOpts))
	return cmd
}

// MatchSummary is one resolved offer/request pairing.
type MatchSummary struct {
	Type        string `json:"type"`
	InitiatedBy string `json:"initiated_by"`
	Offer       string `json:"offer,omitempty"`
	Request     string `json:"request,omitempty"`
}

func newServicesMatchesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "matches <listing-coordinate>",
		Short:         "Show resolved matches citing a listing",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			listing, err := parseCoordinateArg(formatter, args[0])
			if err != nil {
				return err
			}
			svc, closeArchive, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer closeArchive()

			matches, err := svc.ServiceMatches(context.Background(), listing)
			if err != nil {
				return deriveError(formatter, err)
			}

			summaries := make([]MatchSummary, 0, len(matches))
			var text strings.Builder
			for _, m := range matches {
				s := MatchSummary{Type: m.Type, InitiatedBy: m.InitiatedBy}
				if m.Offer != nil {
					s.Offer = m.Offer.Coordinate.String()
				}
				if m.Request != nil {
					s.Request = m.Request.Coordinate.String()
				}
				summaries = append(summaries, s)
				fmt.Fprintf(&text, "%s by %s  offer=%s  request=%s\n", s.Type, s.InitiatedBy, s.Offer, s.Request)
			}
			if len(matches) == 0 {
				text.WriteString("no matches found\n")
			}
			return formatter.SuccessText(summaries, text.String())
		},
	}
}

func newServicesListCommand(rootOpts *RootOptions) *cobra.Command {
	var category string
	var offersOnly, requestsOnly bool

	cmd := &cobra.Command{
		Use:           "list <group-coordinate>",
		Short:         "List a group's current marketplace listings",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			group, err := parseCoordinateArg(formatter, args[0])
			if err != nil {
				return err
			}
			svc, closeArchive, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer closeArchive()

			filters := reconcile.ListingFilters{
				Category:     category,
				OffersOnly:   offersOnly,
				RequestsOnly: requestsOnly,
			}
			listings, err := svc.GroupServices(context.Background(), group, filters)
			if err != nil {
				return deriveError(formatter, err)
			}

			summaries := make([]ListingSummary, 0, len(listings))
			var text strings.Builder
			for _, l := range listings {
				side := "request"
				if l.Offer {
					side = "offer"
				}
				s := ListingSummary{
					Coordinate: l.Coordinate.String(),
					Author:     l.Record.Author,
					Side:       side,
					Category:   l.Category,
					Content:    l.Record.Content,
				}
				summaries = append(summaries, s)
				fmt.Fprintf(&text, "%s  %s  [%s/%s]  %s\n", s.Coordinate, s.Author, s.Side, s.Category, s.Content)
			}
			if len(listings) == 0 {
				text.WriteString("no listings found\n")
			}
			return formatter.SuccessText(summaries, text.String())
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "restrict to one category")
	cmd.Flags().BoolVar(&offersOnly, "offers", false, "offers only")
	cmd.Flags().BoolVar(&requestsOnly, "requests", false, "requests only")
	return cmd
}
