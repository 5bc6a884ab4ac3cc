package services

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the root logger and installs it as the global zerolog
// logger. Development gets human-readable console output, everything else
// JSON lines on stdout.
func NewLogger(level, environment string) zerolog.Logger {
	return newLogger(os.Stdout, level, environment)
}

func newLogger(out io.Writer, level, environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if environment == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Str("app", "attorney-directory").Logger()
	log.Logger = logger
	return logger
}
