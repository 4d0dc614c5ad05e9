package driving

import (
	"context"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
)

// Collector runs collection for the configured communities.
type Collector interface {
	// Collect processes every configured community in order.
	// Per-community failures are recorded on the report; only a fatal
	// failure (configuration, authentication) is returned as an error.
	Collect(ctx context.Context) (*domain.RunReport, error)

	// Check verifies the credentials and returns the account name.
	Check(ctx context.Context) (string, error)
}
