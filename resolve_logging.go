package behavior

import (
	"context"
	"log/slog"
	"time"
)

// ResolveEventKind identifies what happened during a resolution.
type ResolveEventKind string

const (
	// EventEvaluated fires after a behavior's value was computed.
	EventEvaluated ResolveEventKind = "evaluated"
	// EventRestart fires when a stale evaluation forces a new attempt.
	EventRestart ResolveEventKind = "restart"
	// EventResolved fires once the store is complete.
	EventResolved ResolveEventKind = "resolved"
	// EventFailed fires when the resolution aborts.
	EventFailed ResolveEventKind = "failed"
	// EventHookFailed fires when an activity hook returns an error.
	EventHookFailed ResolveEventKind = "hook_failed"
)

// ResolveLogEvent describes one step of a resolution for logging.
type ResolveLogEvent struct {
	Kind     ResolveEventKind
	Behavior string
	Attempt  int
	Pending  int
	Edges    int
	Duration time.Duration
	Err      error
}

// ResolveLogger records resolution events.
type ResolveLogger interface {
	LogResolve(ResolveLogEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveLogEvent)

// LogResolve implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolve(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolve(ResolveLogEvent) {}

// LevelTrace sits below slog.LevelDebug and carries per-behavior events.
const LevelTrace = slog.LevelDebug - 4

// SlogLogger forwards resolution events to logger. Per-behavior evaluations
// are logged at LevelTrace, restarts at debug, completions at info and
// failures at error.
func SlogLogger(logger *slog.Logger) ResolveLogger {
	if logger == nil {
		return noopResolveLogger{}
	}
	return ResolveLoggerFunc(func(event ResolveLogEvent) {
		level := slog.LevelInfo
		switch event.Kind {
		case EventEvaluated:
			level = LevelTrace
		case EventRestart:
			level = slog.LevelDebug
		case EventFailed:
			level = slog.LevelError
		case EventHookFailed:
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			slog.String("event", string(event.Kind)),
			slog.Int("attempt", event.Attempt),
			slog.Int("pending", event.Pending),
			slog.Int("edges", event.Edges),
			slog.Duration("duration", event.Duration),
		}
		if event.Behavior != "" {
			attrs = append(attrs, slog.String("behavior", event.Behavior))
		}
		if event.Err != nil {
			attrs = append(attrs, slog.String("error", event.Err.Error()))
		}
		logger.LogAttrs(context.Background(), level, "behavior resolve", attrs...)
	})
}
