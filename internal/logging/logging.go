// Package logging initializes the global zerolog logger, adapted from the
// teacher pack's internal/logging/logging.go (bbak-mcs-mcp): a console
// writer honoring VERBOSE/LOG_LEVEL, no file sink since this core runs as a
// server/CLI rather than a long-lived desktop agent.
package logging

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global zerolog logger. level overrides the default "info"
// when non-empty; verbose forces debug regardless of level.
func Init(level string, verbose bool) {
	parsed := zerolog.InfoLevel
	if level != "" {
		if l, err := zerolog.ParseLevel(level); err == nil {
			parsed = l
		}
	}
	if verbose {
		parsed = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(parsed)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}
