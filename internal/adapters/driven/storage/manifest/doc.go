// Package manifest records a summary of each collection run as JSON.
//
// The manifest is written next to the CSV files as
// collection_metadata_<start>_to_<end>.json and documents the run for
// later analysis: when it ran, the window and caps used, per-community
// counts or errors, and the files produced.
package manifest
