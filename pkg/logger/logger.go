// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger the
// HTTP middleware attached to the request, already tagged with request_id,
// so every line a handler or service writes is correlated:
//
//	log := logger.WithCtx(ctx)
//	log.Info("order placed", "order_id", id)
//	// → time=... level=INFO msg="order placed" request_id=9f0c... order_id=12
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// L is the process-wide base logger. Setup replaces it at startup.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Options selects the handler built by New.
type Options struct {
	Production bool
	Output     io.Writer
	// Extra handlers receive every record in addition to the console one.
	Extra []slog.Handler
}

// New builds a logger: JSON at INFO for production, text at DEBUG otherwise.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if opts.Production {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(opts.Extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, opts.Extra...)...)
	}
	return slog.New(handler)
}

// Setup installs log as the package and slog default logger.
func Setup(log *slog.Logger) {
	L = log
	slog.SetDefault(log)
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores a request-scoped logger in ctx.
// Called by the Logger middleware; application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
