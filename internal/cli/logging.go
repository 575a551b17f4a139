package cli

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workload-planner/backend/internal/config"
)

// setupLogging configures gin and the global logger.
//
// The log format can be explicitly set. If it is not set, it defaults
// to human readable for development and JSON for release.
func setupLogging(cfg *config.Config, out io.Writer) {
	gin.SetMode(cfg.GinMode)

	output := out
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}
