// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName is attached to every JSON log line.
const ServiceName = "loadsim"

// Init points the global logger at stderr.
func Init(level string, pretty bool) {
	InitWithWriter(level, pretty, os.Stderr)
}

// InitWithWriter points the global logger at w. An empty or unknown level
// means info. pretty switches to the human readable console format.
func InitWithWriter(level string, pretty bool, w io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	ctx := zerolog.New(out).With().Timestamp()
	if !pretty {
		ctx = ctx.Str("service", ServiceName)
	}
	log.Logger = ctx.Logger()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// ForSimulation returns a child logger whose lines carry the simulation ID
// and container code.
func ForSimulation(id, container string) zerolog.Logger {
	return log.Logger.With().
		Str("simulation_id", id).
		Str("container", container).
		Logger()
}
