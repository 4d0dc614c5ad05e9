// Command reddit-collect collects Reddit posts and comments into CSV files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/reddit-collect/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reddit-collect/internal/adapters/driven/storage/csvstore"
	"github.com/custodia-labs/reddit-collect/internal/adapters/driven/storage/manifest"
	"github.com/custodia-labs/reddit-collect/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reddit-collect/internal/adapters/driving/cli"
	"github.com/custodia-labs/reddit-collect/internal/connectors/reddit"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driving"
	"github.com/custodia-labs/reddit-collect/internal/core/services"
	"github.com/custodia-labs/reddit-collect/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetCollectorFactory(buildCollector)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// buildCollector loads settings and credentials and wires the services.
// No network request is made here.
func buildCollector(ctx context.Context, opts cli.Options) (driving.Collector, error) {
	settings, err := file.LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	credsPath := settings.CredentialsFile
	if opts.CredentialsPath != "" {
		credsPath = opts.CredentialsPath
	}
	creds, err := file.LoadCredentials(credsPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %s from %s", creds, credsPath)

	client, err := reddit.NewClient(ctx, creds, reddit.OptionsFromSettings(settings.API))
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		store := memory.NewRecordStore()
		return services.NewCollectService(client, store, store, settings.Collection), nil
	}

	dir := settings.Collection.OutputDir
	return services.NewCollectService(
		client,
		csvstore.New(dir),
		manifest.New(dir),
		settings.Collection,
	), nil
}
