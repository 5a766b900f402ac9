// Package cli is the squiggle command tree.
//
// Rendering commands (svg, metadata, params, png, decode, batch) work on
// seeds directly. token, serve, worker and request reach the same pipeline
// runner through the seed store, HTTP and NATS. browse is a terminal seed
// explorer; cache and config inspect local state.
//
// Diagnostics go to stderr through a charmbracelet logger held on [CLI].
// -v lowers it to debug.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command run and logs its total with a "took" field.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "took", p.elapsed())...)
}
