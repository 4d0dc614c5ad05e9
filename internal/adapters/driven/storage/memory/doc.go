// Package memory provides in-memory implementations of the storage ports.
//
// RecordStore keeps records and run reports in maps instead of files. It
// backs "collect --dry-run" and is safe for concurrent use.
package memory
