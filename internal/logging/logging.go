// Package logging configures the application log. The TUI owns the
// terminal, so log output goes to a file in the data directory; read-path
// failures are logged there and otherwise swallowed by the views.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(io.Discard)

// Setup opens the log file and installs the package logger. The returned
// close func flushes and releases the file; callers defer it in main.
func Setup(path, level string) (func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	logger = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

// L returns the application logger. Before Setup it discards everything,
// which keeps CLI subcommands and tests quiet without wiring.
func L() *zerolog.Logger {
	return &logger
}
