// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RedditAPI: Lists posts and comments from Reddit
//   - RecordWriter: Persists flattened records (CSV)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ManifestWriter: Run summary persistence. Without it no manifest is written.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
