package app

import (
	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/logger"
)

// InitializeLogger configures the global zerolog logger. JSON is the default;
// Pretty switches to the console writer for local runs.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
	log := logger.Logger()
	log.Debug().
		Str("level", cfg.Level).
		Bool("pretty", cfg.Pretty).
		Msg("Logger initialized")
}
