// Package diag holds the logger shared by the toolpath packages. By default
// nothing is logged; call SetLogger to see pipeline diagnostics.
package diag

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for medial, slicer, toolpath and pocket.
// Pass nil to restore silent behavior. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: pipeline sizes (samples, medial edges, branches, slices)
//   - [slog.LevelWarn]: truncated branches, unbuildable medial axis
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
