package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ConversationSummary is one correspondent line.
type ConversationSummary struct {
	Counterpart string `json:"counterpart"`
	Messages    int    `json:"messages"`
	LastAt      int64  `json:"last_at"`
}

// NewDMCommand creates the dm command tree.
func NewDMCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dm",
		Short: "Inspect direct-message conversations",
	}
	cmd.AddCommand(newDMConversationsCommand(rootOpts))
	return cmd
}

func newDMConversationsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "conversations",
		Short:         "List conversations for the current identity, newest first",
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

			conversations, err := svc.Conversations(context.Background())
			if err != nil {
				return deriveError(formatter, err)
			}

			summaries := make([]ConversationSummary, 0, len(conversations))
			var text strings.Builder
			for _, c := range conversations {
				summaries = append(summaries, ConversationSummary{
					Counterpart: c.Counterpart,
					Messages:    c.Messages,
					LastAt:      c.LastMessage.CreatedAt,
				})
				fmt.Fprintf(&text, "%s  %d message(s)\n", c.Counterpart, c.Messages)
			}
			if len(conversations) == 0 {
				text.WriteString("no conversations\n")
			}
			return formatter.SuccessText(summaries, text.String())
		},
	}
}
