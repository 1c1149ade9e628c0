package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process root logger. Components derive their own logger via
// With().Str("component", ...).
func New(level, appMode string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var lg zerolog.Logger
	if appMode == "dev" {
		lg = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		lg = zerolog.New(os.Stderr)
	}

	return lg.Level(lvl).With().Timestamp().Logger()
}
