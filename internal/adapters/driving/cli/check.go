package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify settings and credentials",
	Long: `Loads the settings and credentials, then authenticates against Reddit
and prints the account name. Nothing is collected or written.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if newCollector == nil {
		return errors.New("collector not configured")
	}

	ctx := cmd.Context()
	collector, err := newCollector(ctx, currentOptions())
	if err != nil {
		return startupError(err)
	}

	account, err := collector.Check(ctx)
	if err != nil {
		return startupError(err)
	}

	cmd.Printf("Authenticated as u/%s\n", account)
	return nil
}
