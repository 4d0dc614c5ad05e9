// Package domain defines the core entities of a collection run.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Post, Comment: immutable items fetched from Reddit
//   - Record: one flattened output row (post joined with at most one comment)
//   - Window: the [start, end) date range bounding extraction
//   - Settings, Credentials: process-level configuration, read once
//   - RunReport: per-community outcome of a run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
