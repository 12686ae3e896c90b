package slogx

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithContext returns ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request-scoped logger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// With extends the context logger with attrs.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithRequestID tags the context logger with the request id.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return With(ctx, slog.String("req_id", reqID))
}
