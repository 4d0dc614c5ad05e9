// Package logger provides verbose logging for reddit-collect.
// When verbose mode is enabled via the --verbose flag, progress and
// rate-limit messages are printed to stderr so a long collection run can
// be followed. Errors are always printed. While a run is active every
// line carries the time elapsed since the run started.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
)

var (
	mu       sync.RWMutex
	verbose  bool
	output   io.Writer = os.Stderr
	runStart time.Time

	// since is replaced in tests.
	since = time.Since
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// StartRun marks the start of a collection run. Until EndRun is called,
// lines are stamped with the elapsed run time.
func StartRun(start time.Time) {
	mu.Lock()
	defer mu.Unlock()
	runStart = start
}

// EndRun stops elapsed-time stamping.
func EndRun() {
	mu.Lock()
	defer mu.Unlock()
	runStart = time.Time{}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(levelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(levelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(levelWarn, format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(levelError, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Community prints the header for the i-th of n communities (1-based).
func Community(name string, i, n int) {
	Section(fmt.Sprintf("r/%s (%d/%d)", name, i, n))
}

func logf(lvl level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && lvl != levelError {
		return
	}
	prefix := "[" + string(lvl) + "] "
	if !runStart.IsZero() {
		prefix += fmt.Sprintf("+%s ", since(runStart).Round(time.Second))
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
