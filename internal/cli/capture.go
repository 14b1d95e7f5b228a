package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/validate"
)

// ImportResult summarizes a capture import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// NewCaptureCommand creates the capture command tree.
func NewCaptureCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Manage the local capture archive",
	}
	cmd.AddCommand(newCaptureImportCommand(rootOpts))
	cmd.AddCommand(newCaptureStatsCommand(rootOpts))
	return cmd
}

func newCaptureImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <records.jsonl>",
		Short: "Import wire-format records into the capture archive",
		Long: `Import reads one JSON record per line and stores every record that
passes identity and kind validation. Records with a wrong content
address, malformed JSON, or a shape their kind's validator rejects are
skipped and counted, never stored.`,
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

			arch, err := openArchive(rootOpts)
			if err != nil {
				return err
			}
			defer arch.Close()

			ctx := context.Background()
			source := "import:" + filepath.Base(args[0])
			var result ImportResult

			scanner := bufio.NewScanner(file)
			scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
			line := 0
			for scanner.Scan() {
				line++
				raw := scanner.Bytes()
				if len(raw) == 0 {
					continue
				}
				var r record.Record
				if err := json.Unmarshal(raw, &r); err != nil {
					formatter.VerboseLog("line %d: bad JSON: %v", line, err)
					result.Skipped++
					continue
				}
				if !record.IDValid(r) {
					formatter.VerboseLog("line %d: content address mismatch", line)
					result.Skipped++
					continue
				}
				if !validate.Record(r) {
					formatter.VerboseLog("line %d: kind %d fails validation", line, r.Kind)
					result.Skipped++
					continue
				}
				if err := arch.Store(ctx, r, source); err != nil {
					_ = formatter.Error(ErrCodeArchive, err.Error(), nil)
					return WrapExitError(ExitFailure, "store record", err)
				}
				result.Imported++
			}
			if err := scanner.Err(); err != nil {
				_ = formatter.Error(ErrCodeInput, err.Error(), nil)
				return WrapExitError(ExitCommandError, "read input", err)
			}

			text := fmt.Sprintf("imported %d record(s), skipped %d\n", result.Imported, result.Skipped)
			return formatter.SuccessText(result, text)
		},
	}
}

// ArchiveStats is the capture stats payload.
type ArchiveStats struct {
	Records int `json:"records"`
}

func newCaptureStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show capture archive statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			arch, err := openArchive(rootOpts)
			if err != nil {
				return err
			}
			defer arch.Close()

			n, err := arch.Len(context.Background())
			if err != nil {
				_ = formatter.Error(ErrCodeArchive, err.Error(), nil)
				return WrapExitError(ExitFailure, "count records", err)
			}
			stats := ArchiveStats{Records: n}
			return formatter.SuccessText(stats, fmt.Sprintf("%d record(s)\n", n))
		},
	}
}
