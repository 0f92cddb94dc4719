package logging

import (
	"context"
	"log/slog"
)

// contextKey keeps the logger key private to avoid collisions.
type contextKey string

const loggerKey = contextKey("logger")

// WithCtx returns a context carrying an operation-scoped logger. Callers
// embedding the engine attach a logger per operation (import run, scheduler
// pass, UI action) so every engine log line shares its fields.
func WithCtx(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromCtx retrieves the operation-scoped logger, falling back to the default
// logger when the caller attached none.
func FromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
