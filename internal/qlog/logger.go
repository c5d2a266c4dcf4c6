// Package qlog wraps github.com/rs/zerolog for the construction- and
// parse-time tracing the grammar engine emits. Unlike the teacher's
// observability package (which selects stdout/stderr/file output from a
// server's loaded config) this has exactly one sink: JSON to stderr, since
// a library has no config file to read a sink choice from.
package qlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger scoped to grammar construction and parsing.
type Logger struct {
	z zerolog.Logger
}

// New returns a Logger writing JSON-formatted events to stderr at the given
// level ("debug", "trace", "info", "warn", "error"; unknown values fall
// back to "info").
func New(level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	z := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Nop returns a Logger that discards everything; used as the default when
// the caller doesn't supply one.
func Nop() *Logger {
	return &Logger{z: zerolog.Nop()}
}

// WithFields returns a derived Logger with the given key/value pairs
// attached to every subsequent event.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	ctx := l.z.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{z: ctx.Logger()}
}

// Debug logs a construction-time event (grammar wiring, registry lookups).
func (l *Logger) Debug(msg string, fields map[string]any) {
	ev := l.z.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// Trace logs a per-parse event (the raw query).
func (l *Logger) Trace(msg string, fields map[string]any) {
	ev := l.z.Trace()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// Error logs a failed parse or a construction-time rejection.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	ev := l.z.Error().Err(err)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
