// Package cli implements the reddit-collect command line.
//
// Commands:
//   - collect: run a collection and print a per-community summary
//   - check: verify settings and credentials
//   - version: print the build version
//
// The collector is built lazily by a CollectorFactory set with
// SetCollectorFactory, so flags are parsed before any file is read.
// Startup failures are returned as errors prefixed with their kind;
// per-community failures appear only in the summary.
package cli
