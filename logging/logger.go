//go:build !logless

// Package logging provides ndexpr's ambient logger, grounded on a
// pkg/logger (zerolog) / pkg/core/logger (logless stub) split seen in
// robotics-stack codebases. ndexpr never logs per-element work -- only
// at container construction, at reshape, and once per assignment
// (which path it takes, and whether the destination is replaced);
// broadcasting and assignment happen far too often per second to log
// at element granularity.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
)

// Log is the package-wide logger. Build with -tags logless to swap in
// a zero-cost no-op implementation instead.
var Log = logger.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
