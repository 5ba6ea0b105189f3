// Package output reports diagnostics-session progress to stderr. The core
// library packages return errors instead of logging; only the CLI harness
// and long-running helpers use this.
package output

import (
	"fmt"
	"os"
	"time"
)

// Progress reports session status to stderr.
type Progress struct {
	enabled bool
	verbose bool
	start   time.Time
}

// NewProgress creates a Progress reporter. Set enabled=false for --quiet mode.
func NewProgress(enabled bool) *Progress {
	return &Progress{
		enabled: enabled,
		start:   time.Now(),
	}
}

// NewVerboseProgress creates a Progress reporter with debug logging enabled.
func NewVerboseProgress(enabled, verbose bool) *Progress {
	return &Progress{
		enabled: enabled || verbose, // verbose implies enabled
		verbose: verbose,
		start:   time.Now(),
	}
}

// Log prints a progress message to stderr if enabled.
func (p *Progress) Log(format string, args ...interface{}) {
	if !p.enabled {
		return
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "[%s] %s\n", elapsed, msg)
}

// Debug prints a debug message to stderr if verbose is enabled.
func (p *Progress) Debug(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "[%s] DEBUG: %s\n", elapsed, msg)
}

// Warn prints a warning to stderr regardless of --quiet. Used for degraded
// but non-fatal conditions, e.g. resource sampling being unavailable.
func (p *Progress) Warn(format string, args ...interface{}) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "[%s] WARN: %s\n", elapsed, msg)
}
