package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// levelSourceHandler attaches the source location only for the levels it was
// given. The wrapped handler must be built with AddSource off; info lines
// stay compact while warn and error still point at the call site.
type levelSourceHandler struct {
	slog.Handler
	levels map[slog.Level]bool
}

// WithSourceOnLevels wraps h so that records at the given levels carry a
// source attribute.
func WithSourceOnLevels(h slog.Handler, levels ...slog.Level) slog.Handler {
	m := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		m[level] = true
	}
	return &levelSourceHandler{Handler: h, levels: m}
}

func (h *levelSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	// r.PC is the call site captured by the slog front end.
	if h.levels[r.Level] && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}),
		})
	}
	return h.Handler.Handle(ctx, r)
}

func (h *levelSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelSourceHandler{Handler: h.Handler.WithAttrs(attrs), levels: h.levels}
}

func (h *levelSourceHandler) WithGroup(name string) slog.Handler {
	return &levelSourceHandler{Handler: h.Handler.WithGroup(name), levels: h.levels}
}
