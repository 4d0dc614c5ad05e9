package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

var dryRun bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect posts and comments for the configured communities",
	Long: `Collects posts created within the configured date window from each
community in turn, fetches the first top-level comments of every post and
writes one CSV file per community plus a run manifest.

A community that fails is reported and skipped; the run still completes.
Invalid settings or rejected credentials abort the run before any file
is written.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().BoolVar(&dryRun, "dry-run", false, "collect without writing any files")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	if newCollector == nil {
		return errors.New("collector not configured")
	}

	ctx := cmd.Context()
	collector, err := newCollector(ctx, currentOptions())
	if err != nil {
		return startupError(err)
	}

	report, err := collector.Collect(ctx)
	if report != nil {
		renderReport(cmd.OutOrStdout(), report, isTerminal(cmd.OutOrStdout()))
	}
	if err != nil {
		return startupError(err)
	}
	return nil
}

// startupError prefixes err with its kind so the failure class is visible
// in the single line cobra prints.
func startupError(err error) error {
	return fmt.Errorf("%s: %w", domain.ErrorKind(err), err)
}
