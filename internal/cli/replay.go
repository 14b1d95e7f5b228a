package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hearth/internal/harness"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Run a conformance scenario and print its snapshot",
		Long: `Replay executes a declarative scenario against a fresh in-memory
relay with a pinned clock and prints the resulting step snapshot.
Identical scenarios always produce identical snapshots.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			scenario, err := harness.LoadScenario(args[0])
			if err != nil {
				_ = formatter.Error(ErrCodeInput, err.Error(), nil)
				return WrapExitError(ExitCommandError, "load scenario", err)
			}
			formatter.VerboseLog("running scenario %s: %s", scenario.Name, scenario.Description)

			result, err := harness.Run(scenario)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitFailure, "scenario failed", err)
			}

			if formatter.Format == "json" {
				return formatter.Success(result)
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return WrapExitError(ExitFailure, "marshal snapshot", err)
			}
			fmt.Fprintln(formatter.Writer, string(data))
			return nil
		},
	}
}
