// filepath: internal/cli/housekeeping_command.go
package cli

import (
	"fmt"
	"time"

	"filekit/internal/housekeeping"
	"filekit/internal/logging"

	"github.com/spf13/cobra"
)

type HousekeepingOptions struct {
	StaleAfter time.Duration // overrides storage.stale_after when set
}

func NewHousekeepingCommand() *cobra.Command {
	housekeepingOptions := &HousekeepingOptions{}

	housekeepingCmd := &cobra.Command{
		Use:   "housekeeping",
		Short: "Remove orphaned files from the staging area",
		Long: `Deletes staged files older than storage.stale_after once and exits.
A running server does the same every storage.cleanup_interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHousekeeping(cmd, housekeepingOptions)
		},
	}

	housekeepingCmd.Flags().DurationVar(&housekeepingOptions.StaleAfter, "stale-after", 0, "Age at which staged files are removed, e.g. '2h'. (Default: storage.stale_after)")

	return housekeepingCmd
}

func runHousekeeping(cmd *cobra.Command, opt *HousekeepingOptions) error {
	maxAge := cfg.StaleAfter
	if opt.StaleAfter != 0 {
		maxAge = opt.StaleAfter
	}
	if maxAge <= 0 {
		return fmt.Errorf("stale-after must be positive, got %v", maxAge)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	report, err := housekeeping.RunStagingCleanup(a.fs, maxAge, time.Now())
	if err != nil {
		return err
	}
	logging.Log.Info(report.Message)
	fmt.Fprintln(cmd.OutOrStdout(), report.Message)
	return nil
}
