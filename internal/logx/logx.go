// Package logx is a small, context-carried, severity-filtered logger
// used by builder and the CLI driver: build a logger at a
// severity, filter against an active threshold, and propagate it
// through context rather than a global. Backed by stdlib context +
// log/slog.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Severity mirrors core/log.Severity's level set.
type Severity int32

const (
	Verbose Severity = iota
	Debug
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "?"
	}
}

func (s Severity) slogLevel() slog.Level {
	switch {
	case s <= Verbose:
		return slog.LevelDebug - 4
	case s == Debug:
		return slog.LevelDebug
	case s == Info:
		return slog.LevelInfo
	case s == Warning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type ctxKey struct{}

// Logger wraps an *slog.Logger with the active severity threshold.
type Logger struct {
	handler   *slog.Logger
	threshold Severity
}

// New constructs a Logger writing to w, active at severities >=
// threshold.
func New(w io.Writer, threshold Severity) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: threshold.slogLevel()})
	return Logger{handler: slog.New(h), threshold: threshold}
}

// Default returns a Logger writing to stderr at Info threshold,
// matching the CLI driver's default verbosity.
func Default() Logger { return New(os.Stderr, Info) }

// With attaches l to ctx, replacing any logger already attached.
func With(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the Logger attached to ctx, or Default() if none is
// attached.
func From(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return Default()
}

// Active reports whether a message at sev would actually be emitted.
func (l Logger) Active(sev Severity) bool { return sev >= l.threshold }

// Logf emits a formatted message at the given severity if active.
func (l Logger) Logf(sev Severity, format string, args ...any) {
	if !l.Active(sev) {
		return
	}
	l.handler.Log(context.Background(), sev.slogLevel(), formatMessage(format, args...))
}

func formatMessage(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
