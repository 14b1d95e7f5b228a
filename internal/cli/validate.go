package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/config"
	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/validate"
)

// NewValidateCommand creates the validate command tree.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration or wire-format records",
	}
	cmd.AddCommand(newValidateConfigCommand(rootOpts))
	cmd.AddCommand(newValidateRecordsCommand(rootOpts))
	return cmd
}

func newValidateConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config [config-file]",
		Short: "Validate a configuration file against the schema",
		Long: `Validate loads a CUE config file, unifies it with the schema and
reports the fully resolved configuration. With no argument the global
--config flag (or the schema defaults) is validated instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			path := rootOpts.Config
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := config.Load(path)
			if err != nil {
				_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
				return WrapExitError(ExitFailure, "invalid config", err)
			}

			var text strings.Builder
			text.WriteString("config valid\n")
			fmt.Fprintf(&text, "relays: %s\n", strings.Join(cfg.Relays, ", "))
			fmt.Fprintf(&text, "query timeout: %s (long %s)\n", cfg.QueryTimeout(), cfg.LongQueryTimeout())
			fmt.Fprintf(&text, "cache ttl: %s\n", cfg.CacheTTL())
			if cfg.ArchivePath != "" {
				fmt.Fprintf(&text, "archive: %s\n", cfg.ArchivePath)
			}
			return formatter.SuccessText(cfg, text.String())
		},
	}
}

// ValidationReport counts the outcome of a record validation run.
type ValidationReport struct {
	Valid     int `json:"valid"`
	BadJSON   int `json:"bad_json"`
	BadID     int `json:"bad_id"`
	BadShape  int `json:"bad_shape"`
	LinesRead int `json:"lines_read"`
}

func newValidateRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "records <records.jsonl>",
		Short: "Run identity and kind validators over wire-format records",
		Long: `Records reads one JSON record per line and checks each against the
content-address rule and its kind's shape validator, reporting counts
without storing anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			file, err := os.Open(args[0])
			if err != nil {
				_ = formatter.Error(ErrCodeInput, err.Error(), nil)
				return WrapExitError(ExitCommandError, "open input", err)
			}
			defer file.Close()

			var report ValidationReport
			scanner := bufio.NewScanner(file)
			scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
			for scanner.Scan() {
				raw := scanner.Bytes()
				if len(raw) == 0 {
					continue
				}
				report.LinesRead++
				var r record.Record
				switch {
				case json.Unmarshal(raw, &r) != nil:
					report.BadJSON++
					formatter.VerboseLog("line %d: bad JSON", report.LinesRead)
				case !record.IDValid(r):
					report.BadID++
					formatter.VerboseLog("line %d: content address mismatch", report.LinesRead)
				case !validate.Record(r):
					report.BadShape++
					formatter.VerboseLog("line %d: kind %d fails validation", report.LinesRead, r.Kind)
				default:
					report.Valid++
				}
			}
			if err := scanner.Err(); err != nil {
				_ = formatter.Error(ErrCodeInput, err.Error(), nil)
				return WrapExitError(ExitCommandError, "read input", err)
			}

			text := fmt.Sprintf("%d valid, %d bad JSON, %d bad id, %d bad shape\n",
				report.Valid, report.BadJSON, report.BadID, report.BadShape)
			if report.Valid < report.LinesRead {
				if err := formatter.SuccessText(report, text); err != nil {
					return err
				}
				return NewExitError(ExitFailure, "invalid records found")
			}
			return formatter.SuccessText(report, text)
		},
	}
}
