package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driving"
)

// mockCollector implements driving.Collector for testing.
type mockCollector struct {
	report     *domain.RunReport
	collectErr error
	account    string
	checkErr   error
	collected  bool
}

func (m *mockCollector) Collect(_ context.Context) (*domain.RunReport, error) {
	m.collected = true
	return m.report, m.collectErr
}

func (m *mockCollector) Check(_ context.Context) (string, error) {
	return m.account, m.checkErr
}

// setupCollectorTest installs a factory returning c (or factoryErr) and
// records the options it was called with.
func setupCollectorTest(c *mockCollector, factoryErr error) (*Options, func()) {
	oldFactory := newCollector
	got := &Options{}
	newCollector = func(_ context.Context, opts Options) (driving.Collector, error) {
		*got = opts
		if factoryErr != nil {
			return nil, factoryErr
		}
		return c, nil
	}
	return got, func() {
		newCollector = oldFactory
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleReport() *domain.RunReport {
	window, _ := domain.ParseWindow("2025-01-01", "2025-07-01")
	started := time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC)
	return &domain.RunReport{
		RunID:      "0b6d1b52-7c55-4d8e-9a55-1f3d0c1e2a77",
		Window:     window,
		StartedAt:  started,
		FinishedAt: started.Add(75 * time.Second),
		Communities: []domain.CommunityReport{
			{Community: "politics", Posts: 4, Records: 10, File: "csv_data/politics_data_2025-01-01_to_2025-07-01.csv"},
			{Community: "broken", Err: fmt.Errorf("fetch posts: %w", domain.ErrFetch)},
		},
		Manifest: "csv_data/collection_metadata_2025-01-01_to_2025-07-01.json",
	}
}

func TestCollectCmd_Use(t *testing.T) {
	assert.Equal(t, "collect", collectCmd.Use)
}

func TestCollectCmd_Long(t *testing.T) {
	long := strings.Join(strings.Fields(collectCmd.Long), " ")
	assert.Contains(t, long, "one CSV file per community")
	assert.Contains(t, long, "rejected credentials abort the run")
}

func TestCollectCmd_PrintsReport(t *testing.T) {
	c := &mockCollector{report: sampleReport()}
	opts, cleanup := setupCollectorTest(c, nil)
	defer cleanup()

	out, err := runRoot(t, "collect", "--config", "research.toml", "--credentials", "secret.json")

	require.NoError(t, err)
	assert.True(t, c.collected)
	assert.Equal(t, Options{SettingsPath: "research.toml", CredentialsPath: "secret.json"}, *opts)
	assert.Contains(t, out, "r/politics: 4 posts, 10 records")
	assert.Contains(t, out, "r/broken: FetchError")
	assert.Contains(t, out, "1 of 2 communities failed")
	assert.Contains(t, out, "Manifest: csv_data/collection_metadata_2025-01-01_to_2025-07-01.json")
}

func TestCollectCmd_StartupFailure(t *testing.T) {
	c := &mockCollector{}
	_, cleanup := setupCollectorTest(c, fmt.Errorf("%w: missing credential fields: password", domain.ErrConfiguration))
	defer cleanup()

	_, err := runRoot(t, "collect")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "ConfigurationError: ")
	assert.False(t, c.collected)
}

func TestCollectCmd_AuthenticationFailure(t *testing.T) {
	c := &mockCollector{collectErr: fmt.Errorf("verify credentials: %w", domain.ErrAuthentication)}
	_, cleanup := setupCollectorTest(c, nil)
	defer cleanup()

	out, err := runRoot(t, "collect")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AuthenticationError: ")
	assert.NotContains(t, out, "Total:")
}

func TestCollectCmd_NotConfigured(t *testing.T) {
	oldFactory := newCollector
	newCollector = nil
	defer func() { newCollector = oldFactory }()

	_, err := runRoot(t, "collect")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector not configured")
}

func TestCollectCmd_RejectsArgs(t *testing.T) {
	_, cleanup := setupCollectorTest(&mockCollector{report: sampleReport()}, nil)
	defer cleanup()

	_, err := runRoot(t, "collect", "politics")

	require.Error(t, err)
}

func TestCollectCmd_DryRun(t *testing.T) {
	c := &mockCollector{report: sampleReport()}
	opts, cleanup := setupCollectorTest(c, nil)
	defer cleanup()
	defer func() { dryRun = false }()

	_, err := runRoot(t, "collect", "--dry-run")

	require.NoError(t, err)
	assert.True(t, opts.DryRun)
}
