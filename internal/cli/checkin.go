package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/checkin"
)

// CheckinCode is the JSON payload of the checkin code command.
type CheckinCode struct {
	Code      string `json:"code"`
	RotatesIn string `json:"rotates_in"`
}

// NewCheckinCommand creates the checkin command tree.
func NewCheckinCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Venue-side attendance codes",
	}
	cmd.AddCommand(newCheckinCodeCommand(rootOpts))
	cmd.AddCommand(newCheckinSubmitCommand(rootOpts))
	return cmd
}

func newCheckinSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "submit <event-coordinate> <code>",
		Short:         "Record an attendance check-in in the capture archive",
		Args:          cobra.ExactArgs(2),
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

			published, err := svc.CheckIn(context.Background(), event, args[1])
			if err != nil {
				return deriveError(formatter, err)
			}

			payload := struct {
				ID    string `json:"id"`
				Event string `json:"event"`
			}{ID: published.ID, Event: event.String()}
			text := fmt.Sprintf("checked in to %s\n", event)
			return formatter.SuccessText(payload, text)
		},
	}
}

func newCheckinCodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "code",
		Short:         "Print a fresh rotating check-in code",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			code := checkin.Generate(time.Now(), rng)

			payload := CheckinCode{Code: code, RotatesIn: checkin.RotationInterval.String()}
			text := fmt.Sprintf("%s (rotates every %s)\n", code, checkin.RotationInterval)
			return formatter.SuccessText(payload, text)
		},
	}
}
