// Package logging carries a structured logger through a context.Context so
// the alignment and tree-building pipelines can report progress without
// threading a logger parameter through every call.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ctxKey is a distinct type to keep this package's context key from
// colliding with keys set by other packages.
type ctxKey int

const loggerKey ctxKey = 0

// New creates a logger writing to w, timestamped to the hundredth of a
// second, at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// WithLogger attaches l to ctx for retrieval by FromContext.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger attached to ctx, or log.Default() if
// none was attached.
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Progress tracks the start of a long-running operation and reports its
// elapsed time on completion.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// StartProgress begins tracking an operation logged against l.
func StartProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Done logs msg with the elapsed time since StartProgress, rounded to the
// millisecond.
func (p *Progress) Done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
