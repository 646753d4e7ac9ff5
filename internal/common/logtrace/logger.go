// Package logtrace provides logging utilities for the application.
// It integrates with zerolog for structured logging.
package logtrace

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// InitLogger initializes the global logger on stderr at the given level.
// Console mode renders human readable lines, which is what an interactive
// terminal wants; otherwise output is JSON with Unix millisecond timestamps.
func InitLogger(level zerolog.Level, console bool) {
	initLogger(os.Stderr, level, console)
}

func initLogger(w io.Writer, level zerolog.Level, console bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: !isTerminal(w)}
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

// ParseLevel converts a level name into a zerolog level. Empty or unknown names
// yield DefaultLevel and ok=false.
func ParseLevel(name string) (zerolog.Level, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return DefaultLevel, false
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return DefaultLevel, false
	}
	return lvl, true
}

// WithSession returns a logger that tags every event with the session id.
func WithSession(sessionID string) zerolog.Logger {
	return log.With().Str("session_id", sessionID).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
