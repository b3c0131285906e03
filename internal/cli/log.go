// Package cli implements the planforge command-line interface.
//
// This package provides commands for generating floor plans, laying them
// out again after edits, validating them against minimum room sizes,
// rendering drawings and serving the HTTP API. The CLI is built using
// cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Create and lay out a plan for a building type and country
//   - layout, validate: Re-run placement or checks on a spec file
//   - render: Write PNG, PDF, SVG, JSON, YAML or adjacency outputs
//   - resize, customize: Change room sizes from flags or interactively
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Defaults come from the config file and PLANFORGE_* environment variables
// (see package config); flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time appended, e.g.
// "generated spec rooms=5 elapsed=1.002s".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
