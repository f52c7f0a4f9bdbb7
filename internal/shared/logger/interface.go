package logger

import (
	"log/slog"
	"os"
)

// Interface is the logger injected into use cases and repositories. The *w
// variants take alternating key/value pairs. The positional variants exist
// for adapters that already speak slog, such as the gorm logger bridge.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Interface

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}

// slogLogger adapts the process-wide slog logger to Interface. The embedded
// logger supplies the positional methods.
type slogLogger struct {
	*slog.Logger
}

// NewLogger returns an Interface backed by the process-wide logger.
func NewLogger() Interface {
	return &slogLogger{Logger: Get()}
}

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{Logger: l.Logger.With(args...)}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, keysAndValues...)
}

// Fatalw logs at error level and exits. Only startup wiring calls it; nothing
// on a request or worker path may.
func (l *slogLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, keysAndValues...)
	os.Exit(1)
}
