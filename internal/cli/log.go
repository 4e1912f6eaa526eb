// Package cli implements the dashbridge command-line interface.
//
// This package provides commands for parsing, validating and converting
// dashboard definitions, wrapping Studio JSON in the deployment envelope,
// and managing the conversion cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Decode a dashboard and summarize its contents
//   - validate: Check data source and layout references
//   - convert: Translate between legacy markup, Studio JSON and envelopes
//   - envelope: Wrap or unwrap Studio JSON without converting it
//   - cache: Manage the conversion cache
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/dashbridge/config.toml or the
// file named by --config. See [Config].
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so that converted output on stdout can be piped.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Parsed ops.xml (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
