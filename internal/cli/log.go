// Package cli implements the jappaper command-line interface.
//
// The CLI creates, edits and renders practice-paper templates. Templates are
// files on disk; the templates command moves them in and out of a shared
// store, and serve exposes the same operations over HTTP. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - new: Write a template from a quick-start preset
//   - fit, layout: Inspect the computed geometry
//   - render: Generate SVG, PNG, PDF or JSON output
//   - import, generate, cell, edit: Fill grid cells with trace characters
//   - serve: Run the HTTP API
//   - templates: Manage the template store
//   - cache: Manage the render cache
//
// Pass --verbose (-v) to see cache hits, pipeline steps and API requests at
// debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled, timestamped lines to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a command step took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 2 artifact(s) (41ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx for commands and helpers further down.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
