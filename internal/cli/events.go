package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
)

// NewEventsCommand creates the events command tree.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect a group's calendar, attendance and discussions",
	}
	cmd.AddCommand(newEventsListCommand(rootOpts))
	cmd.AddCommand(newEventsAttendanceCommand(rootOpts))
	cmd.AddCommand(newEventsThreadCommand(rootOpts))
	return cmd
}

// EventSummary is one line of the events list.
type EventSummary struct {
	Coordinate string `json:"coordinate"`
	Title      string `json:"title"`
	Start      string `json:"start"`
}

// AttendanceSummary buckets an event's audience.
type AttendanceSummary struct {
	Going    []string `json:"going"`
	Maybe    []string `json:"maybe"`
	Declined []string `json:"declined"`
	Attended []string `json:"attended"`
}

// ThreadNode is one post in a reconstructed discussion tree.
type ThreadNode struct {
	Author  string       `json:"author"`
	Content string       `json:"content"`
	Replies []ThreadNode `json:"replies,omitempty"`
}

func newEventsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <group-coordinate>",
		Short:         "List a group's events, soonest first",
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

			events, err := svc.GroupEvents(context.Background(), group)
			if err != nil {
				return deriveError(formatter, err)
			}

			summaries := make([]EventSummary, 0, len(events))
			var text strings.Builder
			for _, ev := range events {
				coord, _ := record.CoordinateOf(ev)
				s := EventSummary{
					Coordinate: coord.String(),
					Title:      ev.Tags.Value("title"),
					Start:      ev.Tags.Value("start"),
				}
				summaries = append(summaries, s)
				fmt.Fprintf(&text, "%s  %s  start %s\n", s.Coordinate, s.Title, s.Start)
			}
			if len(events) == 0 {
				text.WriteString("no events found\n")
			}
			return formatter.SuccessText(summaries, text.String())
		},
	}
}

func newEventsAttendanceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "attendance <event-coordinate>",
		Short:         "Show RSVP buckets and verified attendance",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			event, err := parseCoordinateArg(formatter, args[0])
			if err != nil {
				return err
			}
			svc, closeArchive, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer closeArchive()

			view, err := svc.EventAttendance(context.Background(), event)
			if err != nil {
				return deriveError(formatter, err)
			}

			summary := AttendanceSummary{
				Going:    recordAuthors(view.Going),
				Maybe:    recordAuthors(view.Maybe),
				Declined: recordAuthors(view.Declined),
				Attended: recordAuthors(view.Attended),
			}
			var text strings.Builder
			fmt.Fprintf(&text, "going (%d): %s\n", len(summary.Going), strings.Join(summary.Going, ", "))
			fmt.Fprintf(&text, "maybe (%d): %s\n", len(summary.Maybe), strings.Join(summary.Maybe, ", "))
			fmt.Fprintf(&text, "declined (%d): %s\n", len(summary.Declined), strings.Join(summary.Declined, ", "))
			fmt.Fprintf(&text, "attended (%d): %s\n", len(summary.Attended), strings.Join(summary.Attended, ", "))
			return formatter.SuccessText(summary, text.String())
		},
	}
}

func newEventsThreadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "thread <event-coordinate>",
		Aliases:       []string{"discussion"},
		Short:         "Show the reconstructed discussion under an event",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			event, err := parseCoordinateArg(formatter, args[0])
			if err != nil {
				return err
			}
			svc, closeArchive, err := openService(rootOpts)
			if err != nil {
				return err
			}
			defer closeArchive()

			thread, err := svc.EventDiscussion(context.Background(), event)
			if err != nil {
				return deriveError(formatter, err)
			}

			nodes := threadNodes(thread, thread.TopLevel())
			var text strings.Builder
			fmt.Fprintf(&text, "%s\n", thread.Root.Content)
			renderThread(&text, nodes, 1)
			return formatter.SuccessText(nodes, text.String())
		},
	}
}

func threadNodes(t *reconcile.ThreadView, records []record.Record) []ThreadNode {
	out := make([]ThreadNode, 0, len(records))
	for _, r := range records {
		out = append(out, ThreadNode{
			Author:  r.Author,
			Content: r.Content,
			Replies: threadNodes(t, t.DirectReplies(r.ID)),
		})
	}
	return out
}

func renderThread(w *strings.Builder, nodes []ThreadNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s: %s\n", indent, n.Author, n.Content)
		renderThread(w, n.Replies, depth+1)
	}
}

func recordAuthors(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Author)
	}
	return out
}
