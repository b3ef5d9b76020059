package logger

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Module wires slog logger for dependency injection and routes fx's own
// events through it.
var Module = fx.Options(
	fx.Provide(New),
	fx.WithLogger(NewEventLogger),
)

// NewEventLogger reports container events at debug level.
func NewEventLogger(logger *slog.Logger) fxevent.Logger {
	l := &fxevent.SlogLogger{Logger: logger}
	l.UseLogLevel(slog.LevelDebug)
	return l
}
