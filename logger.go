// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/angle/egl"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
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
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for angle and its sub-packages.
// By default, angle produces no log output. Call SetLogger to enable logging.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by angle:
//   - [slog.LevelDebug]: tier attempts, surface creation and teardown
//   - [slog.LevelInfo]: display connection opened or terminated
//   - [slog.LevelWarn]: recoverable failures (resize, shared texture copy)
//   - [slog.LevelError]: failed EGL calls, with the EGL error code
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by angle.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// logEGLError logs msg together with the pending EGL error of p.
func logEGLError(p egl.Platform, msg string, args ...any) egl.Error {
	code := egl.LastError(p)
	Logger().Error("EGL: "+msg, append(args, "egl_error", code.String())...)
	return code
}
