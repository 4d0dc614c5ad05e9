package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reddit-collect/internal/core/ports/driving"
	"github.com/custodia-labs/reddit-collect/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the file selections made on the command line.
type Options struct {
	// SettingsPath is the TOML settings file.
	SettingsPath string
	// CredentialsPath overrides the settings' credentials_file when set.
	CredentialsPath string
	// DryRun keeps records in memory instead of writing files.
	DryRun bool
}

// CollectorFactory builds a collector from the selected files. It is
// called after flag parsing, once per command.
type CollectorFactory func(ctx context.Context, opts Options) (driving.Collector, error)

var (
	settingsPath    string
	credentialsPath string
	verbose         bool

	newCollector CollectorFactory
)

var rootCmd = &cobra.Command{
	Use:   "reddit-collect",
	Short: "Collect Reddit posts and comments into CSV files",
	Long: `Collects posts from a list of communities within a date window,
together with the first top-level comments of each post, and writes one
CSV file per community.

What to collect is read from a TOML settings file; Reddit script-app
credentials are read from a separate file that must not be committed.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "config", "c", "collect.toml", "settings file")
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", "",
		"credentials file (overrides credentials_file in the settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress and rate limits to stderr")
}

// SetCollectorFactory wires the collector used by the collect and check
// commands.
func SetCollectorFactory(f CollectorFactory) {
	newCollector = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func currentOptions() Options {
	return Options{
		SettingsPath:    settingsPath,
		CredentialsPath: credentialsPath,
		DryRun:          dryRun,
	}
}
