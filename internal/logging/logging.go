// Package logging configures the global zerolog logger. All log output goes
// to stderr so tables and JSON on stdout stay machine-readable.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init parses levelString and installs the global logger at that level.
// Unknown or empty levels fall back to info.
func Init(levelString string) {
	level, err := zerolog.ParseLevel(levelString)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Str("service", "aws-vault-shuffle").Logger()
}
