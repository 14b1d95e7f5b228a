// Package cli implements the hearth command line: an offline inspector
// that reconciles captured records into derived views.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // CUE config file, empty means schema defaults
	Archive string // capture archive path, overrides the config
	As      string // identity views are derived as
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hearth CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hearth",
		Short: "Reconcile captured community records into derived views",
		Long: `Hearth merges signed immutable records captured from untrusted relays
into derived views: group rosters, join queues, event attendance,
discussion threads and marketplace listings. Nothing derived is ever
stored; every view is recomputed from the capture archive on read.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (CUE)")
	cmd.PersistentFlags().StringVar(&opts.Archive, "archive", "", "capture archive path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.As, "as", "local", "identity to derive views as")

	cmd.AddCommand(NewGroupsCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewServicesCommand(opts))
	cmd.AddCommand(NewDMCommand(opts))
	cmd.AddCommand(NewCheckinCommand(opts))
	cmd.AddCommand(NewCaptureCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
