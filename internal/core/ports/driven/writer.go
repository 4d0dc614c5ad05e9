package driven

import "github.com/custodia-labs/reddit-collect/internal/core/domain"

// RecordWriter persists one community's records.
type RecordWriter interface {
	// Write stores records for a community and window.
	// Returns the path written. Failures wrap domain.ErrIO.
	Write(community string, window domain.Window, records []domain.Record) (string, error)
}

// ManifestWriter persists a summary of a finished run.
type ManifestWriter interface {
	// WriteManifest stores the report and returns the path written.
	WriteManifest(report *domain.RunReport, settings domain.CollectionSettings) (string, error)
}
