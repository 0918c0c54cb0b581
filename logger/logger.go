// Package logger wraps zerolog behind a small package-level API so the
// rest of the service never touches the zerolog globals directly.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the global logger. format is "json" or "console";
// console output is meant for development.
func Init(level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "console" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		log = zerolog.New(out).With().Timestamp().Logger()
		return
	}
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the configured zerolog.Logger for callers that want a
// child logger with extra context.
func Logger() zerolog.Logger { return log }

// With returns a child logger context.
func With() zerolog.Context { return log.With() }

// Debug starts a debug-level event.
func Debug() *zerolog.Event { return log.Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { return log.Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { return log.Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { return log.Error() }

// Fatal starts a fatal-level event; os.Exit(1) runs after Msg.
func Fatal() *zerolog.Event { return log.Fatal() }
