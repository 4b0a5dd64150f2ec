package cl

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/cl/raw"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message
// formatting entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for cl and its raw subpackage.
// By default no log output is produced. Pass nil to restore silence.
//
// Log levels used by cl:
//   - [slog.LevelDebug]: per-call diagnostics (arg binding, info queries)
//   - [slog.LevelInfo]: lifecycle events (library loaded, version detected)
//   - [slog.LevelWarn]: non-fatal issues (release failures)
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically and propagates it to the raw loader.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	raw.SetLogger(l)
}

// Logger returns the current logger used by cl.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
