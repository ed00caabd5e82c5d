// Package logging builds the service's zerolog logger from configuration.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docanalyzer/internal/config"
)

// New creates a logger writing to stdout.
func New(cfg config.LogConfig, serviceName string) zerolog.Logger {
	return NewWithWriter(cfg, serviceName, os.Stdout)
}

// NewWithWriter creates a logger writing to out. Format "console" produces
// human-readable lines; anything else produces JSON.
func NewWithWriter(cfg config.LogConfig, serviceName string, out io.Writer) zerolog.Logger {
	var zl zerolog.Logger
	if strings.EqualFold(cfg.Format, "console") {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	} else {
		zl = zerolog.New(out)
	}

	return zl.Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
