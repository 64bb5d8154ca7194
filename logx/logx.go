// Package logx configures the process-wide zerolog logger.
package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment represents the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment normalises v into a known environment. Unknown values fall
// back to Development.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

// Init sets log.Logger for env and returns it.
func Init(env Environment) zerolog.Logger {
	log.Logger = New(env, os.Stderr)
	return log.Logger
}

// New builds a logger writing to w: JSON at info level in production, a
// console writer at debug level otherwise.
func New(env Environment, w io.Writer) zerolog.Logger {
	if env == Production {
		return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}
