package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/views"
)

// NewGroupsCommand creates the groups command tree.
func NewGroupsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Inspect group rosters and join queues",
	}
	cmd.AddCommand(newGroupsListCommand(rootOpts))
	cmd.AddCommand(newGroupsShowCommand(rootOpts))
	cmd.AddCommand(newGroupsPendingCommand(rootOpts))
	return cmd
}

// GroupSummary is one line of the groups list.
type GroupSummary struct {
	Coordinate string `json:"coordinate"`
	Name       string `json:"name"`
	Open       bool   `json:"open"`
	Members    int    `json:"members"`
}

// RosterDetail is the full derived roster of one group.
type RosterDetail struct {
	Coordinate string         `json:"coordinate"`
	Name       string         `json:"name"`
	Open       bool           `json:"open"`
	Members    []RosterMember `json:"members"`
}

// RosterMember is one deduplicated roster entry.
type RosterMember struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// PendingRequest is one open join request.
type PendingRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

func newGroupsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List discoverable groups",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			svc, closeArchive, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer closeArchive()

			rosters, err := svc.PublicGroups(context.Background())
			if err != nil {
				return deriveError(formatter, err)
			}

			summaries := make([]GroupSummary, 0, len(rosters))
			var text strings.Builder
			for _, r := range rosters {
				summaries = append(summaries, GroupSummary{
					Coordinate: r.Group.String(),
					Name:       r.Name,
					Open:       r.Open,
					Members:    len(r.Members),
				})
				fmt.Fprintf(&text, "%s  %s  %d member(s)\n", r.Group.String(), r.Name, len(r.Members))
			}
			if len(rosters) == 0 {
				text.WriteString("no groups found\n")
			}
			return formatter.SuccessText(summaries, text.String())
		},
	}
}

func newGroupsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <coordinate>",
		Short:         "Show one group's derived roster",
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

			roster, err := svc.Group(context.Background(), group)
			if err != nil {
				return deriveError(formatter, err)
			}
			if !roster.Found {
				return notFound(formatter, views.ErrGroupNotFound)
			}

			detail := RosterDetail{
				Coordinate: roster.Group.String(),
				Name:       roster.Name,
				Open:       roster.Open,
				Members:    rosterMembers(roster),
			}
			var text strings.Builder
			fmt.Fprintf(&text, "%s (%s)\n", detail.Name, detail.Coordinate)
			fmt.Fprintf(&text, "open: %v\n", detail.Open)
			text.WriteString("members:\n")
			for _, m := range detail.Members {
				fmt.Fprintf(&text, "  %s  %s\n", m.Subject, m.Role)
			}
			return formatter.SuccessText(detail, text.String())
		},
	}
}

func newGroupsPendingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "pending <coordinate>",
		Short:         "Show a group's open join requests",
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

			pending, err := svc.PendingJoinRequests(context.Background(), group)
			if err != nil {
				return deriveError(formatter, err)
			}

			requests := make([]PendingRequest, 0, len(pending))
			var text strings.Builder
			for _, r := range pending {
				requests = append(requests, PendingRequest{Author: r.Author, Message: r.Content})
				fmt.Fprintf(&text, "%s  %s\n", r.Author, r.Content)
			}
			if len(pending) == 0 {
				text.WriteString("no pending requests\n")
			}
			return formatter.SuccessText(requests, text.String())
		},
	}
}

func rosterMembers(roster reconcile.RosterView) []RosterMember {
	out := make([]RosterMember, 0, len(roster.Members))
	for _, m := range roster.Members {
		out = append(out, RosterMember{Subject: m.Subject, Role: roleLabel(m.Role)})
	}
	return out
}

func roleLabel(r record.Role) string {
	if r == record.RoleMember {
		return "member"
	}
	return string(r)
}

func parseCoordinateArg(formatter *OutputFormatter, arg string) (record.Coordinate, error) {
	coord, err := record.ParseCoordinate(arg)
	if err != nil {
		_ = formatter.Error(ErrCodeInput, err.Error(), nil)
		return record.Coordinate{}, WrapExitError(ExitCommandError, "bad coordinate", err)
	}
	return coord, nil
}

func deriveError(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(ErrCodeArchive, err.Error(), nil)
	return WrapExitError(ExitFailure, "derivation failed", err)
}

func notFound(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
	return WrapExitError(ExitFailure, "not found", err)
}
