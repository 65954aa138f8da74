// Package cli implements the packnav command-line interface.
//
// The commands render a navigator state to SVG, PNG or PDF, browse a tree
// interactively in the terminal, serve payloads and live snapshots over
// HTTP, and manage the SQLite payload store and the HTTP payload cache.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Draw the navigator, optionally zoomed along a path, to a file
//   - browse: Navigate a tree interactively in the terminal
//   - serve: Serve payloads and SVG snapshots over HTTP
//   - store: Import, list and delete payloads in a SQLite store
//   - export: Write a tree as JSON, DOT or a Graphviz SVG
//   - cache: Manage the HTTP payload cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers can report progress.
//
// # Configuration
//
// --config names a TOML file; PACKNAV_* environment variables override it
// and command flags override both. See package config.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with short
// wall-clock timestamps such as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a step took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 3 levels (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the helpers a command calls.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
