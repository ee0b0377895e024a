package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DebugEnabled returns true if debug mode is enabled via OPS_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("OPS_DEBUG") != ""
}

// Level returns the log level for the given verbosity
func Level(verbose bool) zerolog.Level {
	if verbose || DebugEnabled() {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// New builds a logger writing to w. Format "console" gives human readable
// output; anything else writes JSON lines.
func New(w io.Writer, format string, verbose bool) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(Level(verbose)).With().Timestamp().Logger()
}

// Setup installs the logger as the process-wide default used by Debugf
func Setup(logger zerolog.Logger) {
	log.Logger = logger
	zerolog.SetGlobalLevel(logger.GetLevel())
}

// Debugf writes a formatted debug message through the global logger
func Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
