// Package logging builds the zerolog logger shared by every component.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05.000"

// Config selects the log level and output format.
type Config struct {
	Level   string
	Console bool
}

// New creates a logger writing to out, or stderr when out is nil. Console
// output is human readable, otherwise one JSON object per line.
func New(config Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	zerolog.ErrorFieldName = "err"

	writer := out
	if config.Console {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat}
	}
	return zerolog.New(writer).
		Level(ParseLevel(config.Level, zerolog.InfoLevel)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name, returning fallback for empty or unknown
// names.
func ParseLevel(level string, fallback zerolog.Level) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return fallback
	case "warning":
		return zerolog.WarnLevel
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return fallback
	}
	return parsed
}
